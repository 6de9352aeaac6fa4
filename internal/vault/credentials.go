package vault

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/illarion/passvault/internal/model"
)

// StoreCredential encrypts password and stores it under appName. An existing
// credential for the same app (case-insensitive) is replaced in place and
// keeps its ID. Returns the credential ID.
func (v *Vault) StoreCredential(ctx context.Context, appName, username, password string) (string, error) {
	if _, err := v.Current(ctx); err != nil {
		return "", err
	}

	appName = strings.TrimSpace(appName)
	username = strings.TrimSpace(username)
	if appName == "" {
		return "", fmt.Errorf("%w: app name required", ErrInvalidCredential)
	}
	if password == "" {
		return "", fmt.Errorf("%w: password required", ErrInvalidCredential)
	}

	secret, err := v.cipher.Encrypt(password)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt credential: %w", err)
	}

	var id string
	err = v.mutateUser(ctx, func(u *model.User) error {
		now := v.now().UTC()
		for i := range u.StoredCredentials {
			c := &u.StoredCredentials[i]
			if !c.MatchesApp(appName) {
				continue
			}
			c.AppName = appName
			c.Username = username
			c.Secret = secret
			c.UpdatedAt = now
			id = c.ID
			return nil
		}

		id = uuid.NewString()
		u.StoredCredentials = append(u.StoredCredentials, model.Credential{
			ID:        id,
			AppName:   appName,
			Username:  username,
			Secret:    secret,
			CreatedAt: now,
			UpdatedAt: now,
		})
		return nil
	})
	if err != nil {
		return "", err
	}

	v.log.InfoContext(ctx, "Vault: credential stored", "app", appName, "id", id)
	return id, nil
}

// UpdateCredential applies a partial update to the credential with id
func (v *Vault) UpdateCredential(ctx context.Context, id string, upd model.CredentialUpdate) error {
	if _, err := v.Current(ctx); err != nil {
		return err
	}

	var appName, username string
	if upd.AppName != nil {
		appName = strings.TrimSpace(*upd.AppName)
		if appName == "" {
			return fmt.Errorf("%w: app name required", ErrInvalidCredential)
		}
	}
	if upd.Username != nil {
		username = strings.TrimSpace(*upd.Username)
	}

	var secret string
	if upd.Password != nil {
		if *upd.Password == "" {
			return fmt.Errorf("%w: password required", ErrInvalidCredential)
		}
		var err error
		if secret, err = v.cipher.Encrypt(*upd.Password); err != nil {
			return fmt.Errorf("failed to encrypt credential: %w", err)
		}
	}

	err := v.mutateUser(ctx, func(u *model.User) error {
		idx := u.FindCredential(id)
		if idx < 0 {
			return ErrNotFound
		}

		c := &u.StoredCredentials[idx]
		if upd.AppName != nil {
			c.AppName = appName
		}
		if upd.Username != nil {
			c.Username = username
		}
		if upd.Password != nil {
			c.Secret = secret
		}
		if !upd.Empty() {
			c.UpdatedAt = v.now().UTC()
		}
		return nil
	})
	if err != nil {
		return err
	}

	v.log.InfoContext(ctx, "Vault: credential updated", "id", id)
	return nil
}

// DeleteCredential removes the credential with id
func (v *Vault) DeleteCredential(ctx context.Context, id string) error {
	err := v.mutateUser(ctx, func(u *model.User) error {
		idx := u.FindCredential(id)
		if idx < 0 {
			return ErrNotFound
		}
		u.StoredCredentials = append(u.StoredCredentials[:idx], u.StoredCredentials[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	v.log.InfoContext(ctx, "Vault: credential deleted", "id", id)
	return nil
}

// GetCredential returns the credential with id and its decrypted password
func (v *Vault) GetCredential(ctx context.Context, id string) (model.DecryptedCredential, error) {
	user, err := v.readUser(ctx)
	if err != nil {
		return model.DecryptedCredential{}, err
	}

	idx := user.FindCredential(id)
	if idx < 0 {
		return model.DecryptedCredential{}, ErrNotFound
	}
	return v.decrypt(user.StoredCredentials[idx])
}

// FindByApp returns the ID of the credential stored for appName
// (case-insensitive).
func (v *Vault) FindByApp(ctx context.Context, appName string) (string, error) {
	user, err := v.readUser(ctx)
	if err != nil {
		return "", err
	}

	appName = strings.TrimSpace(appName)
	for _, c := range user.StoredCredentials {
		if c.MatchesApp(appName) {
			return c.ID, nil
		}
	}
	return "", ErrNotFound
}

// ListCredentials returns the metadata of every credential in stored order
func (v *Vault) ListCredentials(ctx context.Context) ([]model.CredentialInfo, error) {
	return v.Search(ctx, "")
}

// Search returns credentials whose app name or username contains query,
// ignoring case. An empty query matches everything. Nothing is decrypted.
func (v *Vault) Search(ctx context.Context, query string) ([]model.CredentialInfo, error) {
	user, err := v.readUser(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	result := make([]model.CredentialInfo, 0, len(user.StoredCredentials))
	for _, c := range user.StoredCredentials {
		if query == "" ||
			strings.Contains(strings.ToLower(c.AppName), query) ||
			strings.Contains(strings.ToLower(c.Username), query) {
			result = append(result, c.Info())
		}
	}
	return result, nil
}

// RevealAll decrypts every credential of the session user. Any decryption
// failure aborts the whole call.
func (v *Vault) RevealAll(ctx context.Context) ([]model.DecryptedCredential, error) {
	user, err := v.readUser(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.DecryptedCredential, 0, len(user.StoredCredentials))
	for _, c := range user.StoredCredentials {
		dc, err := v.decrypt(c)
		if err != nil {
			return nil, err
		}
		result = append(result, dc)
	}
	return result, nil
}

func (v *Vault) decrypt(c model.Credential) (model.DecryptedCredential, error) {
	password, err := v.cipher.Decrypt(c.Secret)
	if err != nil {
		return model.DecryptedCredential{}, fmt.Errorf("failed to decrypt credential %s: %w", c.ID, err)
	}
	return model.DecryptedCredential{CredentialInfo: c.Info(), Password: password}, nil
}
