// Package keyring keeps the vault encryption secret in the OS keyring,
// keyed by vault ID.
package keyring

import (
	"errors"

	"github.com/zalando/go-keyring"
)

const serviceName = "passvault"

// SaveSecret stores the encryption secret for vaultID
func SaveSecret(vaultID string, secret string) error {
	return keyring.Set(serviceName, vaultID, secret)
}

// GetSecret retrieves the encryption secret for vaultID
func GetSecret(vaultID string) (string, error) {
	return keyring.Get(serviceName, vaultID)
}

// DeleteSecret removes the encryption secret. Deleting a missing secret is
// not an error.
func DeleteSecret(vaultID string) error {
	err := keyring.Delete(serviceName, vaultID)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// HasSecret checks if a secret is stored for vaultID
func HasSecret(vaultID string) bool {
	_, err := keyring.Get(serviceName, vaultID)
	return err == nil
}

// Lookup returns a secret source for key resolution. A keyring that is
// unavailable counts as empty.
func Lookup(vaultID string) func() (string, bool) {
	return func() (string, bool) {
		if vaultID == "" {
			return "", false
		}
		secret, err := GetSecret(vaultID)
		if err != nil || secret == "" {
			return "", false
		}
		return secret, true
	}
}
