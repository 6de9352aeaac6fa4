package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/strength"
)

// Register creates a new vault user
func Register(ctx context.Context, username string) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	if username == "" {
		var err error
		if username, err = ReadLine("Username: "); err != nil {
			HandleError(err)
		}
	}

	password, err := GetNewPassword("Choose a password: ")
	if err != nil {
		HandleError(err)
	}
	defer crypto.ClearBytes(password)

	fmt.Printf("Strength: %s\n", strength.Quick(string(password)).Label)

	if err := v.Register(ctx, username, string(password)); err != nil {
		HandleError(err)
	}

	fmt.Printf("User %s registered\n", username)
	fmt.Println("Run 'passvault login' to start a session")
}
