package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/illarion/passvault/internal/config"
	"github.com/illarion/passvault/internal/crypto"
)

// Add stores a credential for appName. With generate > 0 a random password
// of that length is created and printed instead of prompting.
func Add(ctx context.Context, appName, username string, generate int) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	// Fail on a missing session before prompting for anything
	if _, err := v.Current(ctx); err != nil {
		HandleError(err)
	}

	var password string
	if generate > 0 {
		generated, err := crypto.GeneratePassword(crypto.NewRandom(nil), generate)
		if err != nil {
			HandleError(err)
		}
		password = generated
	} else {
		pw := GetPasswordOrExit(fmt.Sprintf("Password for %s: ", appName))
		defer crypto.ClearBytes(pw)
		password = string(pw)
	}

	id, err := v.StoreCredential(ctx, appName, username, password)
	if err != nil {
		HandleError(err)
	}

	if app.KeySource() == config.SourceGenerated {
		fmt.Fprintln(os.Stderr, "Warning: stored with a temporary key, it will not be readable after this run")
	}

	fmt.Printf("Stored %s (%s)\n", appName, id)
	if generate > 0 {
		fmt.Printf("Generated password: %s\n", password)
	}
}
