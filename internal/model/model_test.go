package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_LenientCredentials(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"missing", `{"id":"u1","username":"alice"}`, 0},
		{"null", `{"id":"u1","username":"alice","storedCredentials":null}`, 0},
		{"wrong type", `{"id":"u1","username":"alice","storedCredentials":{"github":"x"}}`, 0},
		{"string", `{"id":"u1","username":"alice","storedCredentials":"garbage"}`, 0},
		{"valid", `{"id":"u1","username":"alice","storedCredentials":[{"id":"c1","appName":"github"}]}`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u User
			require.NoError(t, json.Unmarshal([]byte(tt.json), &u))
			assert.Equal(t, "alice", u.Username)
			assert.Len(t, u.StoredCredentials, tt.want)
		})
	}
}

func TestUser_FindCredential(t *testing.T) {
	u := User{StoredCredentials: CredentialList{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, u.FindCredential("b"))
	assert.Equal(t, -1, u.FindCredential("c"))
}

func TestCredential_MatchesApp(t *testing.T) {
	c := Credential{AppName: "GitHub"}
	assert.True(t, c.MatchesApp("github"))
	assert.True(t, c.MatchesApp("GITHUB"))
	assert.False(t, c.MatchesApp("gitlab"))
}

func TestCredential_InfoHasNoSecret(t *testing.T) {
	c := Credential{ID: "1", AppName: "app", Username: "u", Secret: "ciphertext"}
	data, err := json.Marshal(c.Info())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "ciphertext")
}

func TestCredentialUpdate_Empty(t *testing.T) {
	assert.True(t, CredentialUpdate{}.Empty())
	empty := ""
	assert.False(t, CredentialUpdate{Username: &empty}.Empty())
}
