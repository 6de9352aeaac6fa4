package model

import (
	"strings"
	"time"
)

// Credential is a stored application login. Secret is always ciphertext.
type Credential struct {
	ID        string    `json:"id"`
	AppName   string    `json:"appName"`
	Username  string    `json:"username"`
	Secret    string    `json:"secret"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MatchesApp reports whether the credential belongs to appName, ignoring case
func (c Credential) MatchesApp(appName string) bool {
	return strings.EqualFold(c.AppName, appName)
}

// Info returns the credential's metadata without its secret
func (c Credential) Info() CredentialInfo {
	return CredentialInfo{
		ID:        c.ID,
		AppName:   c.AppName,
		Username:  c.Username,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// CredentialInfo is the listing view of a credential
type CredentialInfo struct {
	ID        string    `json:"id"`
	AppName   string    `json:"appName"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DecryptedCredential is a credential with its plaintext password. It is
// returned for single-record access and export only.
type DecryptedCredential struct {
	CredentialInfo
	Password string `json:"password"`
}

// CredentialUpdate is a partial update. A nil field leaves the stored value
// unchanged; a non-nil field overwrites it, even with an empty string.
type CredentialUpdate struct {
	AppName  *string
	Username *string
	Password *string
}

// Empty reports whether the update changes nothing
func (u CredentialUpdate) Empty() bool {
	return u.AppName == nil && u.Username == nil && u.Password == nil
}
