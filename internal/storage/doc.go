// Package storage provides the BBolt database interface for passvault.
//
// Database structure uses two buckets:
//   - config: format version, timestamps and the vault ID (unencrypted)
//   - records: the JSON user collection ("users") and the JSON session
//     reference ("session")
//
// Credential secrets inside the user collection are already ciphertext when
// they reach this package; storage never sees plaintext passwords.
//
// Malformed records are reported as ErrStorageCorrupt so the caller can
// decide to recover by treating them as empty.
//
// BBolt provides ACID transactions, file locking, and corruption detection.
package storage
