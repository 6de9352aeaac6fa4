// Package crypto provides cryptographic operations for passvault.
//
// Credential secrets are encrypted with AES-256-GCM:
//   - 32-byte key derived from the process secret via HKDF-SHA256
//   - 16-byte random HKDF salt and 12-byte random nonce per ciphertext
//   - Authenticated encryption prevents tampering and detects a wrong key
//
// Ciphertexts are self-contained base64 strings, so an export blob can be
// decrypted by any vault configured with the same secret.
//
// User passwords are never encrypted, only verified. The verifier is
// PBKDF2-HMAC-SHA256 over the password and a per-user salt drawn from
// [A-Za-z0-9], 210,000 iterations by default (OWASP minimum recommendation).
//
// All randomness comes from crypto/rand through Random, which tests may
// replace with a deterministic reader.
package crypto
