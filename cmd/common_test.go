package cmd

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/illarion/passvault/internal/config"
	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/strength"
	"github.com/illarion/passvault/internal/transfer"
	"github.com/illarion/passvault/internal/vault"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not authenticated", vault.ErrNotAuthenticated, "passvault login"},
		{"wrapped not found", fmt.Errorf("get: %w", vault.ErrNotFound), "credential not found"},
		{"bad login", vault.ErrInvalidCredentials, "invalid username or password"},
		{"taken", vault.ErrUsernameTaken, "already taken"},
		{"import", fmt.Errorf("%w: boom", transfer.ErrInvalidImportData), "corrupted import file"},
		{"decrypt", fmt.Errorf("x: %w", crypto.ErrAuthFailed), "failed to decrypt"},
		{"missing secret", config.ErrMissingSecret, "keyring save"},
		{"other", errors.New("disk full"), "Error: disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := strings.Join(errorMessage(tt.err), "\n")
			assert.Contains(t, got, tt.want)
		})
	}
}

func TestErrorMessage_WeakPasswordSuggestions(t *testing.T) {
	_, err := strength.NewPolicy(3).Check("password")
	lines := errorMessage(err)

	assert.Contains(t, lines[0], "password too weak")
	assert.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[1], "  - "))
}

func TestGetPasswordFromEnv(t *testing.T) {
	t.Setenv(PasswordEnv, "")
	assert.Nil(t, GetPasswordFromEnv())

	t.Setenv(PasswordEnv, "hunter2")
	assert.Equal(t, []byte("hunter2"), GetPasswordFromEnv())

	pw, err := GetPassword("unused: ")
	assert.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), pw)
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 bytes", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "2.0 MB", formatSize(2*1024*1024))
}
