package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePassword(t *testing.T) {
	for _, length := range []int{MinPasswordLength, DefaultPasswordLength, 64} {
		pw, err := GeneratePassword(NewRandom(nil), length)
		require.NoError(t, err)
		assert.Len(t, pw, length)
		assert.True(t, hasAllClasses(pw), "password %q misses a character class", pw)
		for _, r := range pw {
			assert.True(t, strings.ContainsRune(PasswordAlphabet, r))
		}
	}
}

func TestGeneratePassword_TooShort(t *testing.T) {
	_, err := GeneratePassword(NewRandom(nil), MinPasswordLength-1)
	assert.Error(t, err)
}

func TestGeneratePassword_DegenerateSource(t *testing.T) {
	// A constant source can never cover every class
	_, err := GeneratePassword(NewRandom(zeroReader{}), 12)
	assert.Error(t, err)
}

func TestRandom_Intn(t *testing.T) {
	r := NewRandom(nil)
	for range 100 {
		v, err := r.Intn(10)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 10)
	}

	_, err := r.Intn(0)
	assert.Error(t, err)

	_, err = r.String(4, "")
	assert.ErrorIs(t, err, ErrEmptyAlphabet)
}
