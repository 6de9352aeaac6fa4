package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	VerifierSize      = 32     // 256-bit verifier
	DefaultIters      = 210000 // Default PBKDF2 iterations (OWASP minimum)
	DefaultSaltLength = 16
	SaltAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// KDF derives password verifiers
type KDF struct {
	Iterations int
}

// NewKDF creates a KDF, falling back to DefaultIters for non-positive counts
func NewKDF(iterations int) *KDF {
	if iterations <= 0 {
		iterations = DefaultIters
	}
	return &KDF{Iterations: iterations}
}

// Derive computes the hex verifier for password and salt. Identical inputs
// always produce the same verifier.
func (k *KDF) Derive(password []byte, salt string) string {
	key := pbkdf2.Key(password, []byte(salt), k.Iterations, VerifierSize, sha256.New)
	defer ClearBytes(key)
	return hex.EncodeToString(key)
}

// Verify recomputes the verifier and compares it with expected in constant time
func (k *KDF) Verify(password []byte, salt, expected string) bool {
	return VerifierEqual(k.Derive(password, salt), expected)
}

// VerifierEqual compares two hex verifiers on their decoded bytes
func VerifierEqual(a, b string) bool {
	ab, err := hex.DecodeString(a)
	if err != nil {
		return false
	}
	bb, err := hex.DecodeString(b)
	if err != nil {
		return false
	}
	return ConstantTimeCompare(ab, bb)
}

// GenerateSalt draws length characters from SaltAlphabet
func GenerateSalt(rnd *Random, length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid salt length %d", length)
	}
	salt, err := rnd.String(length, SaltAlphabet)
	if err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
