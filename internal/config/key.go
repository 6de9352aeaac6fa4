package config

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/logger"
)

var ErrMissingSecret = errors.New("PASSVAULT_ENCRYPTION_SECRET must be set in production")

// KeySource names where the process key came from
type KeySource string

const (
	SourceEnv       KeySource = "env"
	SourceKeyring   KeySource = "keyring"
	SourceGenerated KeySource = "generated"
)

const generatedKeySize = 32

// Key is the resolved process-wide encryption secret
type Key struct {
	Secret string
	Source KeySource
}

// SecretLookup returns a secret stored outside the environment, such as the
// OS keyring. ok is false when nothing is stored.
type SecretLookup func() (secret string, ok bool)

// ResolveKey establishes the process key: the configured secret first, then
// lookup, then a generated key in development mode only. In production mode
// a missing secret is ErrMissingSecret.
func ResolveKey(cfg *Config, lookup SecretLookup, log *logger.Logger) (Key, error) {
	if cfg.EncryptionSecret != "" {
		return Key{Secret: cfg.EncryptionSecret, Source: SourceEnv}, nil
	}

	if lookup != nil {
		if secret, ok := lookup(); ok && secret != "" {
			log.Debug("Config: encryption secret loaded from keyring")
			return Key{Secret: secret, Source: SourceKeyring}, nil
		}
	}

	if cfg.Production() {
		log.Error("Config: no encryption secret provided in production mode")
		return Key{}, ErrMissingSecret
	}

	raw, err := crypto.GenerateRandom(generatedKeySize)
	if err != nil {
		return Key{}, fmt.Errorf("failed to generate fallback key: %w", err)
	}
	defer crypto.ClearBytes(raw)

	log.Warn("Config: no encryption key provided, generating a temporary key; " +
		"credentials stored now cannot be decrypted after this process exits")
	return Key{Secret: hex.EncodeToString(raw), Source: SourceGenerated}, nil
}
