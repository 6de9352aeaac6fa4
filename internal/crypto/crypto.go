package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	KeySize   = 32 // AES-256 key size
	SaltSize  = 16 // HKDF salt size per ciphertext
	NonceSize = 12 // GCM nonce size
	TagSize   = 16 // GCM authentication tag size

	formatVersion byte = 1
	headerSize         = 1 + SaltSize + NonceSize
	hkdfInfo           = "passvault aes-256-gcm v1"
)

var (
	ErrDecryptionFailed  = errors.New("decryption failed")
	ErrInvalidCiphertext = fmt.Errorf("%w: invalid ciphertext", ErrDecryptionFailed)
	ErrAuthFailed        = fmt.Errorf("%w: authentication failed", ErrDecryptionFailed)
	ErrEmptySecret       = errors.New("encryption secret is empty")
)

// Cipher encrypts strings under a single process-wide secret
type Cipher struct {
	secret []byte
	rnd    *Random
}

// NewCipher creates a cipher bound to secret, drawing salts and nonces from crypto/rand
func NewCipher(secret string) (*Cipher, error) {
	return NewCipherWithRandom(secret, nil)
}

// NewCipherWithRandom is NewCipher with an explicit random source
func NewCipherWithRandom(secret string, rnd *Random) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if rnd == nil {
		rnd = NewRandom(nil)
	}
	return &Cipher{
		secret: []byte(secret),
		rnd:    rnd,
	}, nil
}

// Encrypt encrypts plaintext and returns a base64 ciphertext
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	return seal(c.rnd, c.secret, []byte(plaintext))
}

// Decrypt reverses Encrypt. Any malformed input or key mismatch yields an
// error matching ErrDecryptionFailed.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	plaintext, err := open(c.secret, ciphertext)
	if err != nil {
		return "", err
	}
	defer ClearBytes(plaintext)
	return string(plaintext), nil
}

// Destroy clears the cipher's secret from memory
func (c *Cipher) Destroy() {
	ClearBytes(c.secret)
}

// EncryptString encrypts plaintext under key
func EncryptString(plaintext, key string) (string, error) {
	if key == "" {
		return "", ErrEmptySecret
	}
	return seal(NewRandom(nil), []byte(key), []byte(plaintext))
}

// DecryptString decrypts a ciphertext produced by EncryptString or Cipher.Encrypt
func DecryptString(ciphertext, key string) (string, error) {
	if key == "" {
		return "", ErrEmptySecret
	}
	plaintext, err := open([]byte(key), ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func seal(rnd *Random, secret, plaintext []byte) (string, error) {
	header, err := rnd.Bytes(headerSize)
	if err != nil {
		return "", err
	}
	header[0] = formatVersion
	salt := header[1 : 1+SaltSize]
	nonce := header[1+SaltSize:]

	gcm, err := newGCM(secret, salt)
	if err != nil {
		return "", err
	}

	// Layout: version | salt | nonce | ciphertext+tag
	out := make([]byte, headerSize, headerSize+len(plaintext)+TagSize)
	copy(out, header)
	out = gcm.Seal(out, nonce, plaintext, header[:1])
	return base64.StdEncoding.EncodeToString(out), nil
}

func open(secret []byte, encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCiphertext
	}
	if len(data) < headerSize+TagSize || data[0] != formatVersion {
		return nil, ErrInvalidCiphertext
	}
	salt := data[1 : 1+SaltSize]
	nonce := data[1+SaltSize : headerSize]

	gcm, err := newGCM(secret, salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, data[headerSize:], data[:1])
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}

func newGCM(secret, salt []byte) (cipher.AEAD, error) {
	key := make([]byte, KeySize)
	defer ClearBytes(key)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, salt, []byte(hkdfInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ConstantTimeCompare performs a constant-time comparison of two byte slices
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
