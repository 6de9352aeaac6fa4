package crypto

import (
	"fmt"
	"strings"
)

const (
	DefaultPasswordLength = 16
	MinPasswordLength     = 4

	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	PasswordAlphabet = lowerChars + upperChars + digitChars + symbolChars

	maxGenerateAttempts = 100
)

// GeneratePassword returns a random password of the given length containing
// at least one lowercase, uppercase, digit and symbol character.
func GeneratePassword(rnd *Random, length int) (string, error) {
	if length < MinPasswordLength {
		return "", fmt.Errorf("password length must be at least %d", MinPasswordLength)
	}

	for range maxGenerateAttempts {
		pw, err := rnd.String(length, PasswordAlphabet)
		if err != nil {
			return "", err
		}
		if hasAllClasses(pw) {
			return pw, nil
		}
	}
	return "", fmt.Errorf("failed to generate password after %d attempts", maxGenerateAttempts)
}

func hasAllClasses(pw string) bool {
	return strings.ContainsAny(pw, lowerChars) &&
		strings.ContainsAny(pw, upperChars) &&
		strings.ContainsAny(pw, digitChars) &&
		strings.ContainsAny(pw, symbolChars)
}
