package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/model"
)

// Update changes the fields of a credential. Nil fields are left as they
// are; changePassword prompts for a new password.
func Update(ctx context.Context, ref string, appName, username *string, changePassword bool) {
	app := MustOpenApp()
	defer app.Close()
	v := app.MustVault(ctx)

	id := resolveRef(ctx, v, ref)

	upd := model.CredentialUpdate{AppName: appName, Username: username}
	if changePassword {
		pw := GetPasswordOrExit("New password: ")
		defer crypto.ClearBytes(pw)
		s := string(pw)
		upd.Password = &s
	}

	if upd.Empty() {
		fmt.Println("Nothing to update")
		return
	}

	if err := v.UpdateCredential(ctx, id, upd); err != nil {
		HandleError(err)
	}
	fmt.Printf("Updated %s\n", id)
}
