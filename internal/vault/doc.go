// Package vault provides the passvault credential vault.
//
// Vault operations include:
//   - Register / Login / Logout: user accounts verified by a PBKDF2 verifier
//   - StoreCredential: encrypt and upsert by case-insensitive app name
//   - UpdateCredential / DeleteCredential: by credential ID
//   - GetCredential: decrypt a single credential
//   - ListCredentials / Search: metadata only, nothing is decrypted
//
// The user collection is the single source of truth. The session holds only
// a reference (user ID) into it, so every mutation writes one place. Each
// mutating call reads the whole collection, changes it in memory and writes
// it back under one mutex; the BBolt file lock serialises separate processes.
package vault
