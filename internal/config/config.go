// Package config loads passvault settings from the environment and resolves
// the process-wide encryption key before any vault operation runs.
package config

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/logger"
	"github.com/illarion/passvault/internal/strength"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"

	MinSaltLength = 8
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config contains passvault configuration parameters.
type Config struct {
	Mode             string `env:"PASSVAULT_MODE" envDefault:"development"`
	EncryptionSecret string `env:"PASSVAULT_ENCRYPTION_SECRET"`
	Path             string `env:"PASSVAULT_PATH" envDefault:".passvault"`
	LogLevel         int    `env:"PASSVAULT_LOG_LEVEL" envDefault:"4"`
	MinScore         int    `env:"PASSVAULT_MIN_SCORE" envDefault:"3"`
	KDF              KDF    `envPrefix:"PASSVAULT_KDF_"`
}

// KDF contains password verifier parameters for new users.
type KDF struct {
	Iterations int `env:"ITERATIONS" envDefault:"210000"`
	SaltLength int `env:"SALT_LENGTH" envDefault:"16"`
}

// NewConfig loads configuration from environment variables.
func NewConfig() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeDevelopment, ModeProduction:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, c.Mode)
	}
	if c.Path == "" {
		return fmt.Errorf("%w: empty vault path", ErrInvalidConfig)
	}
	if c.KDF.Iterations < 1 {
		return fmt.Errorf("%w: kdf iterations must be positive", ErrInvalidConfig)
	}
	if c.KDF.SaltLength < MinSaltLength {
		return fmt.Errorf("%w: salt length must be at least %d", ErrInvalidConfig, MinSaltLength)
	}
	if c.MinScore < 0 || c.MinScore > strength.StrictMaxScore {
		return fmt.Errorf("%w: min score must be within 0..%d", ErrInvalidConfig, strength.StrictMaxScore)
	}
	return nil
}

// Production reports whether the missing-secret fallback is disabled
func (c *Config) Production() bool {
	return c.Mode == ModeProduction
}

// WarnInsecure logs settings that weaken the vault without making it unusable
func (c *Config) WarnInsecure(log *logger.Logger) {
	if c.KDF.Iterations < crypto.DefaultIters {
		log.Warn("Config: KDF iteration count below recommended minimum",
			"iterations", c.KDF.Iterations,
			"recommended", crypto.DefaultIters)
	}
	if c.MinScore < strength.DefaultMinScore {
		log.Warn("Config: registration accepts weak passwords",
			"min_score", c.MinScore)
	}
}
