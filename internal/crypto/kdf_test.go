package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKDF_Deterministic(t *testing.T) {
	kdf := NewKDF(1000)

	a := kdf.Derive([]byte("correct horse"), "salt1234salt1234")
	b := kdf.Derive([]byte("correct horse"), "salt1234salt1234")
	assert.Equal(t, a, b)
	assert.Len(t, a, VerifierSize*2)

	assert.NotEqual(t, a, kdf.Derive([]byte("correct horse"), "othersaltothersa"))
	assert.NotEqual(t, a, kdf.Derive([]byte("correct horsE"), "salt1234salt1234"))
	assert.NotEqual(t, a, NewKDF(1001).Derive([]byte("correct horse"), "salt1234salt1234"))
}

func TestNewKDF_DefaultIterations(t *testing.T) {
	assert.Equal(t, DefaultIters, NewKDF(0).Iterations)
	assert.Equal(t, DefaultIters, NewKDF(-5).Iterations)
	assert.Equal(t, 42, NewKDF(42).Iterations)
}

func TestKDF_Verify(t *testing.T) {
	kdf := NewKDF(1000)
	verifier := kdf.Derive([]byte("pw"), "salt")

	assert.True(t, kdf.Verify([]byte("pw"), "salt", verifier))
	assert.False(t, kdf.Verify([]byte("pw2"), "salt", verifier))
	assert.False(t, kdf.Verify([]byte("pw"), "salt", "not-hex"))
}

func TestGenerateSalt(t *testing.T) {
	salt, err := GenerateSalt(NewRandom(nil), DefaultSaltLength)
	require.NoError(t, err)
	assert.Len(t, salt, DefaultSaltLength)
	for _, r := range salt {
		assert.True(t, strings.ContainsRune(SaltAlphabet, r), "unexpected salt char %q", r)
	}

	other, err := GenerateSalt(NewRandom(nil), DefaultSaltLength)
	require.NoError(t, err)
	assert.NotEqual(t, salt, other)
}

func TestGenerateSalt_DeterministicSource(t *testing.T) {
	salt, err := GenerateSalt(NewRandom(zeroReader{}), 8)
	require.NoError(t, err)
	assert.Equal(t, "AAAAAAAA", salt)
}

func TestGenerateSalt_Errors(t *testing.T) {
	_, err := GenerateSalt(NewRandom(nil), 0)
	assert.Error(t, err)

	_, err = GenerateSalt(NewRandom(failingReader{}), 16)
	assert.Error(t, err)
}
