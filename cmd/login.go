package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/illarion/passvault/internal/crypto"
)

// Login verifies the user's password and persists a session
func Login(ctx context.Context, username string) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	if username == "" {
		var err error
		if username, err = ReadLine("Username: "); err != nil {
			HandleError(err)
		}
	}

	password := GetPasswordOrExit("Password: ")
	defer crypto.ClearBytes(password)

	session, err := v.Login(ctx, username, string(password))
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Logged in as %s\n", session.Username)
}

// Logout ends the current session
func Logout(ctx context.Context) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	if err := v.Logout(ctx); err != nil {
		HandleError(err)
	}
	fmt.Println("Logged out")
}

// Whoami shows the current session
func Whoami(ctx context.Context) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	session, err := v.Current(ctx)
	if err != nil {
		HandleError(err)
	}
	fmt.Printf("%s (since %s)\n", session.Username, session.Since.Local().Format(time.RFC3339))
}
