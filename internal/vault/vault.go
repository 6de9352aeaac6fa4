package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/illarion/passvault/internal/crypto"
	"github.com/illarion/passvault/internal/logger"
	"github.com/illarion/passvault/internal/model"
	"github.com/illarion/passvault/internal/storage"
	"github.com/illarion/passvault/internal/strength"
)

// Store persists the user collection and the session reference
type Store interface {
	LoadUsers() ([]model.User, error)
	SaveUsers(users []model.User) error
	LoadSession() (model.Session, error)
	SaveSession(session model.Session) error
	ClearSession() error
}

// Cipher encrypts credential secrets under the process key
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Options tune a Vault. Zero values select defaults.
type Options struct {
	KDFIterations int
	SaltLength    int
	// MinScore is the strict strength threshold for registration. Nil
	// selects strength.DefaultMinScore; point at 0 to accept any non-empty password.
	MinScore      *int
	Random        *crypto.Random
	Logger        *logger.Logger
	Now           func() time.Time
}

// Vault is the credential vault. Construct it once at startup and share it.
type Vault struct {
	mu sync.Mutex

	store  Store
	cipher Cipher
	policy strength.Policy
	rnd    *crypto.Random
	log    *logger.Logger
	now    func() time.Time

	kdfIterations int
	saltLength    int

	session model.Session
}

// New creates a vault over store and restores a persisted session if its
// user still exists.
func New(ctx context.Context, store Store, cipher Cipher, opts Options) (*Vault, error) {
	if store == nil || cipher == nil {
		return nil, errors.New("vault requires a store and a cipher")
	}

	v := &Vault{
		store:         store,
		cipher:        cipher,
		policy:        strength.NewPolicy(strength.DefaultMinScore),
		rnd:           opts.Random,
		log:           opts.Logger,
		now:           opts.Now,
		kdfIterations: opts.KDFIterations,
		saltLength:    opts.SaltLength,
	}
	if opts.MinScore != nil {
		v.policy = strength.NewPolicy(*opts.MinScore)
	}
	if v.rnd == nil {
		v.rnd = crypto.NewRandom(nil)
	}
	if v.log == nil {
		v.log = logger.Nop()
	}
	if v.now == nil {
		v.now = time.Now
	}
	if v.kdfIterations <= 0 {
		v.kdfIterations = crypto.DefaultIters
	}
	if v.saltLength <= 0 {
		v.saltLength = crypto.DefaultSaltLength
	}

	if err := v.restoreSession(ctx); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *Vault) restoreSession(ctx context.Context) error {
	session, err := v.store.LoadSession()
	if err != nil {
		if !errors.Is(err, storage.ErrStorageCorrupt) {
			return fmt.Errorf("failed to load session: %w", err)
		}
		v.log.WarnContext(ctx, "Vault: discarding corrupt session record", "error", err.Error())
		return v.store.ClearSession()
	}
	if !session.Valid() {
		return nil
	}

	users, err := v.loadUsers(ctx)
	if err != nil {
		return err
	}
	idx := findUserByID(users, session.UserID)
	if idx < 0 {
		v.log.WarnContext(ctx, "Vault: session refers to unknown user, clearing",
			"user_id", session.UserID)
		return v.store.ClearSession()
	}

	session.Username = users[idx].Username
	v.session = session
	return nil
}

// loadUsers reads the collection, recovering a corrupt record as empty
func (v *Vault) loadUsers(ctx context.Context) ([]model.User, error) {
	users, err := v.store.LoadUsers()
	if err != nil {
		if errors.Is(err, storage.ErrStorageCorrupt) {
			v.log.WarnContext(ctx, "Vault: user collection corrupt, treating as empty",
				"error", err.Error())
			return []model.User{}, nil
		}
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

// Register creates a user. The password must pass the strict strength
// policy before the username is checked for uniqueness.
func (v *Vault) Register(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidUsername
	}

	if _, err := v.policy.Check(password, username); err != nil {
		v.log.InfoContext(ctx, "Vault: registration rejected weak password", "username", username)
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	users, err := v.loadUsers(ctx)
	if err != nil {
		return err
	}
	if findUserByName(users, username) >= 0 {
		v.log.InfoContext(ctx, "Vault: username already taken", "username", username)
		return ErrUsernameTaken
	}

	salt, err := crypto.GenerateSalt(v.rnd, v.saltLength)
	if err != nil {
		return err
	}

	kdf := crypto.NewKDF(v.kdfIterations)
	pw := []byte(password)
	defer crypto.ClearBytes(pw)

	users = append(users, model.User{
		ID:                uuid.NewString(),
		Username:          username,
		PasswordVerifier:  kdf.Derive(pw, salt),
		Salt:              salt,
		Iterations:        kdf.Iterations,
		StoredCredentials: model.CredentialList{},
		CreatedAt:         v.now().UTC(),
	})

	if err := v.store.SaveUsers(users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	v.log.InfoContext(ctx, "Vault: user registered", "username", username)
	return nil
}

// Login verifies the password and establishes the session
func (v *Vault) Login(ctx context.Context, username, password string) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}

	username = strings.TrimSpace(username)
	pw := []byte(password)
	defer crypto.ClearBytes(pw)

	v.mu.Lock()
	defer v.mu.Unlock()

	users, err := v.loadUsers(ctx)
	if err != nil {
		return model.Session{}, err
	}

	idx := findUserByName(users, username)
	if idx < 0 {
		// Spend the same derivation time as a real attempt
		crypto.NewKDF(v.kdfIterations).Derive(pw, "passvault-unknown-user")
		v.log.InfoContext(ctx, "Vault: login failed", "username", username)
		return model.Session{}, ErrInvalidCredentials
	}

	user := users[idx]
	if !crypto.NewKDF(user.Iterations).Verify(pw, user.Salt, user.PasswordVerifier) {
		v.log.InfoContext(ctx, "Vault: login failed", "username", username)
		return model.Session{}, ErrInvalidCredentials
	}

	session := model.Session{
		UserID:   user.ID,
		Username: user.Username,
		Since:    v.now().UTC(),
	}
	if err := v.store.SaveSession(session); err != nil {
		return model.Session{}, fmt.Errorf("failed to save session: %w", err)
	}
	v.session = session

	v.log.InfoContext(ctx, "Vault: user logged in", "username", username)
	return session, nil
}

// Logout clears the session. Calling it without a session is a no-op.
func (v *Vault) Logout(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.session.Valid() {
		v.log.InfoContext(ctx, "Vault: user logged out", "username", v.session.Username)
	}
	v.session = model.Session{}

	if err := v.store.ClearSession(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Current returns the active session
func (v *Vault) Current(ctx context.Context) (model.Session, error) {
	if err := ctx.Err(); err != nil {
		return model.Session{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.session.Valid() {
		return model.Session{}, ErrNotAuthenticated
	}
	return v.session, nil
}

// readUser returns a copy of the session user's record
func (v *Vault) readUser(ctx context.Context) (model.User, error) {
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	users, idx, err := v.sessionUser(ctx)
	if err != nil {
		return model.User{}, err
	}
	return users[idx], nil
}

// mutateUser runs fn on the session user's record and saves the collection
// if fn succeeds. Must not be called with v.mu held.
func (v *Vault) mutateUser(ctx context.Context, fn func(u *model.User) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	users, idx, err := v.sessionUser(ctx)
	if err != nil {
		return err
	}

	if err := fn(&users[idx]); err != nil {
		return err
	}

	if err := v.store.SaveUsers(users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}

// sessionUser loads the collection and locates the session user. Caller
// holds v.mu.
func (v *Vault) sessionUser(ctx context.Context) ([]model.User, int, error) {
	if !v.session.Valid() {
		return nil, -1, ErrNotAuthenticated
	}

	users, err := v.loadUsers(ctx)
	if err != nil {
		return nil, -1, err
	}

	idx := findUserByID(users, v.session.UserID)
	if idx < 0 {
		v.log.WarnContext(ctx, "Vault: session user vanished, clearing session",
			"user_id", v.session.UserID)
		v.session = model.Session{}
		if err := v.store.ClearSession(); err != nil {
			v.log.WarnContext(ctx, "Vault: failed to clear session", "error", err.Error())
		}
		return nil, -1, ErrNotAuthenticated
	}
	if users[idx].StoredCredentials == nil {
		users[idx].StoredCredentials = model.CredentialList{}
	}
	return users, idx, nil
}

func findUserByName(users []model.User, username string) int {
	for i := range users {
		if users[i].Username == username {
			return i
		}
	}
	return -1
}

func findUserByID(users []model.User, id string) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}
