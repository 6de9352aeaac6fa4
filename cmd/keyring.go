package cmd

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/keyring"
)

// KeyringSave stores the encryption secret in the OS keyring. The secret is
// taken from PASSVAULT_ENCRYPTION_SECRET, generated, or prompted for.
func KeyringSave(generate bool) {
	app := MustOpenApp()
	defer app.Close()

	if keyring.HasSecret(app.VaultID) && generate {
		fmt.Fprintln(os.Stderr, "Error: a secret is already stored; credentials encrypted with it would become unreadable")
		fmt.Fprintln(os.Stderr, "Run 'passvault keyring delete' first if that is intended")
		os.Exit(1)
	}

	secret := app.Config.EncryptionSecret
	switch {
	case generate:
		raw, err := crypto.GenerateRandom(crypto.KeySize)
		if err != nil {
			HandleError(err)
		}
		secret = hex.EncodeToString(raw)
		crypto.ClearBytes(raw)
	case secret == "":
		input, err := ReadPasswordConfirm("Encryption secret: ")
		if err != nil {
			HandleError(err)
		}
		secret = string(input)
		crypto.ClearBytes(input)
	}

	if secret == "" {
		fmt.Fprintln(os.Stderr, "Error: empty secret")
		os.Exit(1)
	}

	if err := keyring.SaveSecret(app.VaultID, secret); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Encryption secret saved to keyring")
}

// KeyringDelete removes the encryption secret from the OS keyring
func KeyringDelete() {
	app := MustOpenApp()
	defer app.Close()

	if !keyring.HasSecret(app.VaultID) {
		fmt.Println("No secret stored in keyring")
		return
	}

	if err := keyring.DeleteSecret(app.VaultID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to delete from keyring: %s\n", err)
		os.Exit(1)
	}
	fmt.Println("Encryption secret removed from keyring")
}

// KeyringStatus checks if a secret is stored in the keyring
func KeyringStatus() {
	app := MustOpenApp()
	defer app.Close()

	if keyring.HasSecret(app.VaultID) {
		fmt.Println("Encryption secret: stored in keyring")
	} else {
		fmt.Println("Encryption secret: not stored")
	}
}
