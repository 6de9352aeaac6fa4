package cmd

import (
	"context"
	"fmt"

	"github.com/illarion/passvault/internal/config"
	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/keyring"
	"github.com/illarion/passvault/internal/logger"
	"github.com/illarion/passvault/internal/storage"
	"github.com/illarion/passvault/internal/transfer"
	"github.com/illarion/passvault/internal/vault"
)

// App holds the components shared by commands. Commands that touch
// credentials call Vault; storage-only commands stop at OpenApp.
type App struct {
	Config  *config.Config
	Log     *logger.Logger
	Store   *storage.Storage
	VaultID string

	key    config.Key
	cipher *crypto.Cipher
	vault  *vault.Vault
}

// OpenApp loads configuration and opens the vault file, creating it if
// needed.
func OpenApp() (*App, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.LogLevel)
	cfg.WarnInsecure(log)

	store, err := storage.OpenOrCreate(cfg.Path)
	if err != nil {
		return nil, err
	}

	vaultID, err := store.GetOrCreateVaultID()
	if err != nil {
		store.Close()
		return nil, err
	}

	return &App{
		Config:  cfg,
		Log:     log.With("vault_id", vaultID),
		Store:   store,
		VaultID: vaultID,
	}, nil
}

// MustOpenApp is like OpenApp but exits on error
func MustOpenApp() *App {
	app, err := OpenApp()
	if err != nil {
		HandleError(err)
	}
	return app
}

// Vault resolves the encryption key and builds the credential vault
func (a *App) Vault(ctx context.Context) (*vault.Vault, error) {
	if a.vault != nil {
		return a.vault, nil
	}

	key, err := config.ResolveKey(a.Config, keyring.Lookup(a.VaultID), a.Log)
	if err != nil {
		return nil, err
	}

	c, err := crypto.NewCipher(key.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	v, err := vault.New(ctx, a.Store, c, vault.Options{
		KDFIterations: a.Config.KDF.Iterations,
		SaltLength:    a.Config.KDF.SaltLength,
		MinScore:      &a.Config.MinScore,
		Logger:        a.Log,
	})
	if err != nil {
		c.Destroy()
		return nil, err
	}

	a.key, a.cipher, a.vault = key, c, v
	return v, nil
}

// MustVault is like Vault but exits on error
func (a *App) MustVault(ctx context.Context) *vault.Vault {
	v, err := a.Vault(ctx)
	if err != nil {
		HandleError(err)
	}
	return v
}

// Transfer builds the export/import service over the vault
func (a *App) Transfer(ctx context.Context) *transfer.Transfer {
	v := a.MustVault(ctx)
	return transfer.New(v, a.cipher, transfer.WithLogger(a.Log))
}

// KeySource reports where the encryption key came from, once resolved
func (a *App) KeySource() config.KeySource {
	return a.key.Source
}

func (a *App) Close() {
	if a.cipher != nil {
		a.cipher.Destroy()
	}
	if a.Store != nil {
		a.Store.Close()
	}
}
