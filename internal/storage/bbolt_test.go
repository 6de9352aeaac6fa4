package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/illarion/passvault/internal/model"
	bolt "go.etcd.io/bbolt"
)

func openTestDB(t *testing.T) (*Storage, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.passvault")

	db, err := OpenOrCreate(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	return db, dbPath
}

func TestOpenAndInitialize(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.passvault")

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	initialized, err := db.IsInitialized()
	if err != nil {
		t.Fatalf("Failed to check initialization: %v", err)
	}
	if initialized {
		t.Error("Fresh database should not be initialized")
	}

	if err := db.Initialize(); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	initialized, err = db.IsInitialized()
	if err != nil {
		t.Fatalf("Failed to check initialization: %v", err)
	}
	if !initialized {
		t.Error("Database should be initialized")
	}

	if _, err := db.GetCreated(); err != nil {
		t.Errorf("Created timestamp missing: %v", err)
	}
	if id, err := db.GetVaultID(); err != nil || id == "" {
		t.Errorf("Vault ID missing: %q %v", id, err)
	}
}

func TestUsersRoundTrip(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	users, err := db.LoadUsers()
	if err != nil {
		t.Fatalf("Failed to load users: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("Expected empty collection, got %d", len(users))
	}

	want := []model.User{{
		ID:               "u1",
		Username:         "alice",
		PasswordVerifier: "abcd",
		Salt:             "salt",
		Iterations:       1000,
		StoredCredentials: model.CredentialList{
			{ID: "c1", AppName: "github", Username: "alice@example.com", Secret: "ciphertext"},
		},
	}}
	if err := db.SaveUsers(want); err != nil {
		t.Fatalf("Failed to save users: %v", err)
	}

	got, err := db.LoadUsers()
	if err != nil {
		t.Fatalf("Failed to load users: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Fatalf("Unexpected users: %+v", got)
	}
	if len(got[0].StoredCredentials) != 1 || got[0].StoredCredentials[0].Secret != "ciphertext" {
		t.Errorf("Credentials not persisted: %+v", got[0].StoredCredentials)
	}
}

func TestCorruptRecords(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	err := db.db.Update(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if err := records.Put(UsersKey, []byte("{not json")); err != nil {
			return err
		}
		return records.Put(SessionKey, []byte("[1,2"))
	})
	if err != nil {
		t.Fatalf("Failed to write corrupt records: %v", err)
	}

	users, err := db.LoadUsers()
	if !errors.Is(err, ErrStorageCorrupt) {
		t.Errorf("Expected ErrStorageCorrupt, got %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("Expected empty collection alongside error, got %v", users)
	}

	session, err := db.LoadSession()
	if !errors.Is(err, ErrStorageCorrupt) {
		t.Errorf("Expected ErrStorageCorrupt, got %v", err)
	}
	if session.Valid() {
		t.Error("Corrupt session should be zero")
	}
}

func TestSessionOperations(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	session, err := db.LoadSession()
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if session.Valid() {
		t.Fatal("Expected no session")
	}

	want := model.Session{UserID: "u1", Username: "alice", Since: time.Now().UTC().Truncate(time.Second)}
	if err := db.SaveSession(want); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	got, err := db.LoadSession()
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if got.UserID != want.UserID || got.Username != want.Username || !got.Since.Equal(want.Since) {
		t.Errorf("Session mismatch: got %+v, want %+v", got, want)
	}

	if err := db.ClearSession(); err != nil {
		t.Fatalf("Failed to clear session: %v", err)
	}
	// Clearing twice is fine
	if err := db.ClearSession(); err != nil {
		t.Fatalf("Failed to clear session twice: %v", err)
	}

	got, err = db.LoadSession()
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}
	if got.Valid() {
		t.Error("Session should be cleared")
	}
}

func TestModifiedTimestamp(t *testing.T) {
	db, _ := openTestDB(t)
	defer db.Close()

	before, err := db.GetModified()
	if err != nil {
		t.Fatalf("Failed to get modified: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if err := db.SaveUsers([]model.User{}); err != nil {
		t.Fatalf("Failed to save users: %v", err)
	}

	after, err := db.GetModified()
	if err != nil {
		t.Fatalf("Failed to get modified: %v", err)
	}
	if !after.After(before) {
		t.Errorf("Modified time not updated: before %v, after %v", before, after)
	}
}

func TestPersistenceAndCompact(t *testing.T) {
	db, dbPath := openTestDB(t)

	vaultID, err := db.GetOrCreateVaultID()
	if err != nil {
		t.Fatalf("Failed to get vault ID: %v", err)
	}

	if err := db.SaveUsers([]model.User{{ID: "u1", Username: "alice"}}); err != nil {
		t.Fatalf("Failed to save users: %v", err)
	}
	if err := db.SaveSession(model.Session{UserID: "u1", Username: "alice"}); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if err := db.Compact(); err != nil {
		t.Fatalf("Failed to compact: %v", err)
	}
	db.Close()

	// Reopen and verify
	db2, err := OpenOrCreate(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer db2.Close()

	id, err := db2.GetOrCreateVaultID()
	if err != nil || id != vaultID {
		t.Errorf("Vault ID changed: got %q, want %q (%v)", id, vaultID, err)
	}

	users, err := db2.LoadUsers()
	if err != nil || len(users) != 1 {
		t.Fatalf("Users not persisted: %v %v", users, err)
	}

	session, err := db2.LoadSession()
	if err != nil || session.UserID != "u1" {
		t.Errorf("Session not persisted: %+v %v", session, err)
	}
}
