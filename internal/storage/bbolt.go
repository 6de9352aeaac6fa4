package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/illarion/passvault/internal/model"
	bolt "go.etcd.io/bbolt"
)

const (
	FilePermSecure = 0600
	formatVersion  = "1"
	openTimeout    = 2 * time.Second
)

// Bucket names
var (
	ConfigBucket  = []byte("config")  // Version, timestamps, vault ID - unencrypted
	RecordsBucket = []byte("records") // User collection and session reference
)

// Config keys
var (
	ConfigVersion  = []byte("version")
	ConfigCreated  = []byte("created")
	ConfigModified = []byte("modified")
	ConfigVaultID  = []byte("vault_id")
)

// Record keys
var (
	UsersKey   = []byte("users")
	SessionKey = []byte("session")
)

var (
	ErrStorageCorrupt = errors.New("storage record corrupt")
	ErrNotInitialized = errors.New("storage not initialized")
)

// Storage provides BBolt-based storage for passvault
type Storage struct {
	db *bolt.DB
}

// Open opens or creates a passvault database. The file lock is held until
// Close, so a second process fails after a short timeout instead of racing.
func Open(path string) (*Storage, error) {
	db, err := bolt.Open(path, FilePermSecure, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &Storage{db: db}, nil
}

// OpenOrCreate opens the database at path and initializes it if needed
func OpenOrCreate(path string) (*Storage, error) {
	s, err := Open(path)
	if err != nil {
		return nil, err
	}

	initialized, err := s.IsInitialized()
	if err != nil {
		s.Close()
		return nil, err
	}
	if !initialized {
		if err := s.Initialize(); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}
	return s, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Path returns the database file path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Initialize creates the bucket structure for a new vault
func (s *Storage) Initialize() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{ConfigBucket, RecordsBucket} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}

		config := tx.Bucket(ConfigBucket)
		if err := config.Put(ConfigVersion, []byte(formatVersion)); err != nil {
			return err
		}

		created, _ := time.Now().MarshalBinary()
		if err := config.Put(ConfigCreated, created); err != nil {
			return err
		}
		if err := config.Put(ConfigModified, created); err != nil {
			return err
		}

		return config.Put(ConfigVaultID, []byte(uuid.NewString()))
	})
}

// IsInitialized checks if the database has been initialized
func (s *Storage) IsInitialized() (bool, error) {
	var initialized bool
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config != nil && config.Get(ConfigVersion) != nil && tx.Bucket(RecordsBucket) != nil {
			initialized = true
		}
		return nil
	})
	return initialized, err
}

// GetCreated retrieves the creation timestamp
func (s *Storage) GetCreated() (time.Time, error) {
	return s.getTime(ConfigCreated)
}

// GetModified retrieves the last modified timestamp
func (s *Storage) GetModified() (time.Time, error) {
	return s.getTime(ConfigModified)
}

func (s *Storage) getTime(key []byte) (time.Time, error) {
	var t time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(key)
		if data == nil {
			return fmt.Errorf("%s not found", key)
		}
		return t.UnmarshalBinary(data)
	})
	return t, err
}

// GetVaultID retrieves the vault ID from the config bucket
func (s *Storage) GetVaultID() (string, error) {
	var vaultID string
	err := s.db.View(func(tx *bolt.Tx) error {
		config := tx.Bucket(ConfigBucket)
		if config == nil {
			return ErrNotInitialized
		}
		data := config.Get(ConfigVaultID)
		if data == nil {
			return fmt.Errorf("vault_id not found")
		}
		vaultID = string(data)
		return nil
	})
	return vaultID, err
}

// GetOrCreateVaultID retrieves the existing vault ID or generates a new one
func (s *Storage) GetOrCreateVaultID() (string, error) {
	vaultID, err := s.GetVaultID()
	if err == nil {
		return vaultID, nil
	}

	vaultID = uuid.NewString()
	err = s.db.Update(func(tx *bolt.Tx) error {
		config, err := tx.CreateBucketIfNotExists(ConfigBucket)
		if err != nil {
			return err
		}
		return config.Put(ConfigVaultID, []byte(vaultID))
	})
	if err != nil {
		return "", err
	}

	return vaultID, nil
}

// LoadUsers returns the full user collection. An absent record is an empty
// collection; a malformed one is ErrStorageCorrupt.
func (s *Storage) LoadUsers() ([]model.User, error) {
	users := []model.User{}
	err := s.db.View(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if records == nil {
			return nil
		}
		data := records.Get(UsersKey)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &users); err != nil {
			return fmt.Errorf("%w: users: %v", ErrStorageCorrupt, err)
		}
		return nil
	})
	if err != nil {
		return []model.User{}, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// SaveUsers replaces the full user collection
func (s *Storage) SaveUsers(users []model.User) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to marshal users: %w", err)
	}
	return s.put(UsersKey, data)
}

// LoadSession returns the persisted session reference, or a zero Session
// when none is stored.
func (s *Storage) LoadSession() (model.Session, error) {
	var session model.Session
	err := s.db.View(func(tx *bolt.Tx) error {
		records := tx.Bucket(RecordsBucket)
		if records == nil {
			return nil
		}
		data := records.Get(SessionKey)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &session); err != nil {
			return fmt.Errorf("%w: session: %v", ErrStorageCorrupt, err)
		}
		return nil
	})
	if err != nil {
		return model.Session{}, err
	}
	return session, nil
}

// SaveSession persists the session reference
func (s *Storage) SaveSession(session model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	return s.put(SessionKey, data)
}

// ClearSession removes the session reference
func (s *Storage) ClearSession() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		records, err := tx.CreateBucketIfNotExists(RecordsBucket)
		if err != nil {
			return err
		}
		if err := records.Delete(SessionKey); err != nil {
			return err
		}
		return touch(tx)
	})
}

func (s *Storage) put(key, value []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		records, err := tx.CreateBucketIfNotExists(RecordsBucket)
		if err != nil {
			return err
		}
		if err := records.Put(key, value); err != nil {
			return err
		}
		return touch(tx)
	})
}

// touch updates the last modified timestamp inside tx
func touch(tx *bolt.Tx) error {
	config, err := tx.CreateBucketIfNotExists(ConfigBucket)
	if err != nil {
		return err
	}
	modified, _ := time.Now().MarshalBinary()
	return config.Put(ConfigModified, modified)
}

// Compact creates a compacted copy of the database, removing unused space.
// Every credential write rewrites the whole user collection, so the file
// grows until compacted.
func (s *Storage) Compact() error {
	srcPath := s.db.Path()
	tmpPath := srcPath + ".compact"

	dst, err := bolt.Open(tmpPath, FilePermSecure, nil)
	if err != nil {
		return fmt.Errorf("failed to create compact database: %w", err)
	}

	err = s.db.View(func(srcTx *bolt.Tx) error {
		return dst.Update(func(dstTx *bolt.Tx) error {
			return srcTx.ForEach(func(name []byte, srcBucket *bolt.Bucket) error {
				dstBucket, err := dstTx.CreateBucketIfNotExists(name)
				if err != nil {
					return err
				}
				return srcBucket.ForEach(func(k, v []byte) error {
					return dstBucket.Put(k, v)
				})
			})
		})
	})

	if err != nil {
		dst.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to copy data: %w", err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close compact database: %w", err)
	}

	if err := s.db.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close source database: %w", err)
	}

	// Atomic replace
	backupPath := srcPath + ".backup"
	if err := os.Rename(srcPath, backupPath); err != nil {
		return fmt.Errorf("failed to backup original: %w", err)
	}
	if err := os.Rename(tmpPath, srcPath); err != nil {
		os.Rename(backupPath, srcPath) // rollback
		return fmt.Errorf("failed to replace database: %w", err)
	}
	os.Remove(backupPath)

	s.db, err = bolt.Open(srcPath, FilePermSecure, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("failed to reopen database: %w", err)
	}

	return nil
}
