package cmd

import (
	"fmt"

	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/strength"
)

// Strength rates a password with both scorers
func Strength(username string) {
	password := GetPasswordOrExit("Password to check: ")
	defer crypto.ClearBytes(password)
	pw := string(password)

	var inputs []string
	if username != "" {
		inputs = append(inputs, username)
	}

	strict := strength.Estimate(pw, inputs...)
	quick := strength.Quick(pw)

	fmt.Printf("Strict: %s (%d/%d), crack time %s\n", strict.Label, strict.Score, strict.MaxScore, strict.CrackTime)
	fmt.Printf("Quick:  %s (%d/%d)\n", quick.Label, quick.Score, quick.MaxScore)
	for _, s := range strict.Suggestions {
		fmt.Printf("  - %s\n", s)
	}
}

// Generate prints a random password
func Generate(length int) {
	pw, err := crypto.GeneratePassword(crypto.NewRandom(nil), length)
	if err != nil {
		HandleError(err)
	}
	fmt.Println(pw)
}
