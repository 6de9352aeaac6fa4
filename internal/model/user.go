// Package model defines the records persisted by passvault.
package model

import (
	"encoding/json"
	"time"
)

// User is a registered vault user. The password itself is never stored,
// only its verifier.
type User struct {
	ID                string         `json:"id"`
	Username          string         `json:"username"`
	PasswordVerifier  string         `json:"passwordVerifier"`
	Salt              string         `json:"salt"`
	Iterations        int            `json:"iterations"`
	StoredCredentials CredentialList `json:"storedCredentials"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// CredentialList decodes leniently: a missing, null or malformed list is
// treated as empty instead of failing the whole user record.
type CredentialList []Credential

// UnmarshalJSON implements json.Unmarshaler
func (l *CredentialList) UnmarshalJSON(data []byte) error {
	var creds []Credential
	if err := json.Unmarshal(data, &creds); err != nil {
		*l = CredentialList{}
		return nil
	}
	if creds == nil {
		creds = []Credential{}
	}
	*l = creds
	return nil
}

// FindCredential returns the index of the credential with id, or -1
func (u *User) FindCredential(id string) int {
	for i := range u.StoredCredentials {
		if u.StoredCredentials[i].ID == id {
			return i
		}
	}
	return -1
}

// Session references the logged-in user. The user record itself lives only
// in the user collection.
type Session struct {
	UserID   string    `json:"userId"`
	Username string    `json:"username"`
	Since    time.Time `json:"since"`
}

// Valid reports whether s refers to a user
func (s Session) Valid() bool {
	return s.UserID != ""
}
