package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var ErrEmptyAlphabet = errors.New("empty alphabet")

// Random draws values from a cryptographically secure reader
type Random struct {
	r io.Reader
}

// NewRandom wraps r. A nil reader means crypto/rand.Reader.
func NewRandom(r io.Reader) *Random {
	if r == nil {
		r = rand.Reader
	}
	return &Random{r: r}
}

// Bytes returns n random bytes
func (r *Random) Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r.r, b); err != nil {
		return nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return b, nil
}

// Intn returns a uniform value in [0, n)
func (r *Random) Intn(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("invalid bound %d", n)
	}
	v, err := rand.Int(r.r, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random number: %w", err)
	}
	return int(v.Int64()), nil
}

// String returns length characters drawn uniformly from alphabet
func (r *Random) String(length int, alphabet string) (string, error) {
	if alphabet == "" {
		return "", ErrEmptyAlphabet
	}
	chars := []rune(alphabet)
	out := make([]rune, length)
	for i := range out {
		idx, err := r.Intn(len(chars))
		if err != nil {
			return "", err
		}
		out[i] = chars[idx]
	}
	return string(out), nil
}

// GenerateRandom generates n random bytes from crypto/rand
func GenerateRandom(n int) ([]byte, error) {
	return NewRandom(nil).Bytes(n)
}
