package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/illarion/passvault/internal/vault"
)

// Get shows a credential. The password is masked unless show is set.
func Get(ctx context.Context, ref string, show bool) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	cred, err := v.GetCredential(ctx, resolveRef(ctx, v, ref))
	if err != nil {
		HandleError(err)
	}

	password := strings.Repeat("*", 8)
	if show {
		password = cred.Password
	}

	fmt.Printf("App:      %s\n", cred.AppName)
	fmt.Printf("Username: %s\n", cred.Username)
	fmt.Printf("Password: %s\n", password)
	fmt.Printf("ID:       %s\n", cred.ID)
	fmt.Printf("Updated:  %s\n", cred.UpdatedAt.Local().Format(time.RFC3339))
}

// resolveRef accepts a credential ID or an app name
func resolveRef(ctx context.Context, v *vault.Vault, ref string) string {
	creds, err := v.ListCredentials(ctx)
	if err != nil {
		HandleError(err)
	}
	for _, c := range creds {
		if c.ID == ref {
			return ref
		}
	}

	id, err := v.FindByApp(ctx, ref)
	if err != nil {
		HandleError(err)
	}
	return id
}
