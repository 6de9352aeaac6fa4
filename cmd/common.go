package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/illarion/passvault/internal/config"
	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/security"
	"github.com/illarion/passvault/internal/storage"
	"github.com/illarion/passvault/internal/strength"
	"github.com/illarion/passvault/internal/transfer"
	"github.com/illarion/passvault/internal/vault"
)

// GetPassword retrieves password from environment or prompts user.
// The caller is responsible for calling crypto.ClearBytes on the result.
func GetPassword(prompt string) ([]byte, error) {
	if password := GetPasswordFromEnv(); password != nil {
		return password, nil
	}

	password, err := ReadPassword(prompt)
	if err != nil {
		return nil, err
	}
	return password, nil
}

// GetNewPassword is GetPassword with confirmation when prompting
func GetNewPassword(prompt string) ([]byte, error) {
	if password := GetPasswordFromEnv(); password != nil {
		return password, nil
	}
	return ReadPasswordConfirm(prompt)
}

// GetPasswordOrExit is like GetPassword but exits on error
func GetPasswordOrExit(prompt string) []byte {
	password, err := GetPassword(prompt)
	if err != nil {
		HandleError(err)
	}
	return password
}

// HandleError prints a friendly message for err and exits
func HandleError(err error) {
	for _, line := range errorMessage(err) {
		fmt.Fprintln(os.Stderr, line)
	}
	os.Exit(1)
}

func errorMessage(err error) []string {
	var weak *strength.WeakPasswordError

	switch {
	case errors.As(err, &weak):
		lines := []string{fmt.Sprintf("Error: password too weak (%s, score %d/%d, need %d)",
			weak.Result.Label, weak.Result.Score, weak.Result.MaxScore, weak.MinScore)}
		for _, s := range weak.Result.Suggestions {
			lines = append(lines, "  - "+s)
		}
		return lines
	case errors.Is(err, vault.ErrUsernameTaken):
		return []string{"Error: username already taken"}
	case errors.Is(err, vault.ErrInvalidUsername):
		return []string{"Error: username required"}
	case errors.Is(err, vault.ErrInvalidCredentials):
		return []string{"Error: invalid username or password"}
	case errors.Is(err, vault.ErrNotAuthenticated):
		return []string{"Error: not logged in", "Run 'passvault login' first"}
	case errors.Is(err, vault.ErrNotFound):
		return []string{"Error: credential not found", "Use 'passvault ls' to see stored credentials"}
	case errors.Is(err, vault.ErrInvalidCredential):
		return []string{fmt.Sprintf("Error: %s", err)}
	case errors.Is(err, transfer.ErrInvalidImportData):
		return []string{"Error: invalid or corrupted import file"}
	case errors.Is(err, crypto.ErrDecryptionFailed):
		return []string{"Error: failed to decrypt credential",
			"The encryption secret differs from the one used to store it"}
	case errors.Is(err, config.ErrMissingSecret):
		return []string{"Error: no encryption secret configured",
			"Set PASSVAULT_ENCRYPTION_SECRET or run 'passvault keyring save'"}
	case errors.Is(err, config.ErrInvalidConfig):
		return []string{fmt.Sprintf("Error: %s", err)}
	case errors.Is(err, storage.ErrStorageCorrupt):
		return []string{"Error: vault storage is corrupt"}
	case errors.Is(err, security.ErrPathEscapes), errors.Is(err, security.ErrAbsolutePath):
		return []string{fmt.Sprintf("Error: %s", err),
			"Export and import files must be inside the current directory"}
	default:
		return []string{fmt.Sprintf("Error: %s", err)}
	}
}

// formatSize formats a file size in human-readable form
func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
