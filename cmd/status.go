package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/illarion/passvault/internal/config"
	"github.com/illarion/passvault/internal/git"
	"github.com/illarion/passvault/internal/keyring"
	"github.com/illarion/passvault/internal/storage"
)

// Status shows the vault file state. Does not need a password or a key.
func Status(_ context.Context) {
	cfg, err := config.NewConfig()
	if err != nil {
		HandleError(err)
	}
	if _, err := os.Stat(cfg.Path); err != nil {
		if os.IsNotExist(err) {
			fmt.Printf("No vault file at %s\n", cfg.Path)
			fmt.Println("Run 'passvault register' to create one")
			return
		}
		HandleError(err)
	}

	app := MustOpenApp()
	defer app.Close()

	info, err := os.Stat(app.Config.Path)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("Vault:    %s (%s)\n", app.Config.Path, formatSize(info.Size()))
	fmt.Printf("ID:       %s\n", app.VaultID)
	fmt.Printf("Mode:     %s\n", app.Config.Mode)

	if created, err := app.Store.GetCreated(); err == nil {
		fmt.Printf("Created:  %s\n", created.Local().Format(time.RFC3339))
	}
	if modified, err := app.Store.GetModified(); err == nil {
		fmt.Printf("Modified: %s\n", modified.Local().Format(time.RFC3339))
	}

	users, err := app.Store.LoadUsers()
	switch {
	case err == nil:
		fmt.Printf("Users:    %d\n", len(users))
	case errors.Is(err, storage.ErrStorageCorrupt):
		fmt.Println("Users:    unreadable (corrupt record)")
	default:
		HandleError(err)
	}

	session, err := app.Store.LoadSession()
	if err == nil && session.Valid() {
		fmt.Printf("Session:  %s\n", session.Username)
	} else {
		fmt.Println("Session:  none")
	}

	switch {
	case app.Config.EncryptionSecret != "":
		fmt.Println("Key:      PASSVAULT_ENCRYPTION_SECRET")
	case keyring.HasSecret(app.VaultID):
		fmt.Println("Key:      OS keyring")
	case app.Config.Production():
		fmt.Println("Key:      missing (required in production)")
	default:
		fmt.Println("Key:      none (a temporary key is generated per run)")
	}

	dir, file := filepath.Split(app.Config.Path)
	if dir == "" {
		dir = "."
	}
	if warning := git.Check(dir, file).Warning(); warning != "" {
		fmt.Println()
		fmt.Println(warning)
	}
}
