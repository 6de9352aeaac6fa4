// Package transfer exports and imports a user's credentials as a single
// encrypted envelope.
package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/illarion/passvault/internal/logger"
	"github.com/illarion/passvault/internal/model"
	"github.com/illarion/passvault/internal/vault"
	"github.com/sergi/go-diff/diffmatchpatch"
)

var ErrInvalidImportData = errors.New("invalid or corrupted import data")

// Cipher seals the envelope
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Envelope is the plaintext structure inside an export blob
type Envelope struct {
	Timestamp   string  `json:"timestamp"`
	Credentials []Entry `json:"credentials"`
}

// Entry is one exported credential with its plaintext password
type Entry struct {
	ID       string `json:"id,omitempty"`
	AppName  string `json:"appName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Transfer moves credentials in and out of a vault
type Transfer struct {
	vault  *vault.Vault
	cipher Cipher
	log    *logger.Logger
	now    func() time.Time
}

type Option func(*Transfer)

func WithLogger(log *logger.Logger) Option {
	return func(t *Transfer) {
		if log != nil {
			t.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(t *Transfer) {
		if now != nil {
			t.now = now
		}
	}
}

func New(v *vault.Vault, c Cipher, opts ...Option) *Transfer {
	t := &Transfer{
		vault:  v,
		cipher: c,
		log:    logger.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Export decrypts every credential of the session user and seals them into
// one encrypted envelope.
func (t *Transfer) Export(ctx context.Context) (string, error) {
	creds, err := t.vault.RevealAll(ctx)
	if err != nil {
		return "", err
	}

	env := Envelope{
		Timestamp:   t.now().UTC().Format(time.RFC3339),
		Credentials: make([]Entry, 0, len(creds)),
	}
	for _, c := range creds {
		env.Credentials = append(env.Credentials, Entry{
			ID:       c.ID,
			AppName:  c.AppName,
			Username: c.Username,
			Password: c.Password,
		})
	}

	data, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("failed to encode export: %w", err)
	}

	blob, err := t.cipher.Encrypt(string(data))
	if err != nil {
		return "", fmt.Errorf("failed to encrypt export: %w", err)
	}

	t.log.InfoContext(ctx, "Transfer: exported credentials", "count", len(env.Credentials))
	return blob, nil
}

// Import stores every credential in blob for the session user. Entries the
// vault rejects as invalid are skipped. Any other error aborts the import
// and is returned with the number of credentials stored before it.
func (t *Transfer) Import(ctx context.Context, blob string) (int, error) {
	if _, err := t.vault.Current(ctx); err != nil {
		return 0, err
	}

	env, err := t.open(blob)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, e := range env.Credentials {
		if _, err := t.vault.StoreCredential(ctx, e.AppName, e.Username, e.Password); err != nil {
			if errors.Is(err, vault.ErrInvalidCredential) {
				t.log.WarnContext(ctx, "Transfer: skipping invalid entry", "app", e.AppName)
				continue
			}
			return count, err
		}
		count++
	}

	t.log.InfoContext(ctx, "Transfer: imported credentials",
		"count", count, "exported_at", env.Timestamp)
	return count, nil
}

// Preview returns a line diff of the credential listing before and after
// importing blob. Passwords never appear; entries whose password would be
// replaced are marked "(updated)". Returns "" when the import changes nothing.
func (t *Transfer) Preview(ctx context.Context, blob string) (string, error) {
	current, err := t.vault.ListCredentials(ctx)
	if err != nil {
		return "", err
	}

	env, err := t.open(blob)
	if err != nil {
		return "", err
	}

	before := listing(current, nil)
	after := listing(simulate(current, env.Credentials))
	if before == after {
		return "", nil
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out strings.Builder
	out.WriteString("--- vault\n")
	out.WriteString("+++ vault after import\n")
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
		}
	}
	return out.String(), nil
}

func (t *Transfer) open(blob string) (Envelope, error) {
	plaintext, err := t.cipher.Decrypt(strings.TrimSpace(blob))
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidImportData, err)
	}

	var env Envelope
	if err := json.Unmarshal([]byte(plaintext), &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %w", ErrInvalidImportData, err)
	}
	if env.Credentials == nil {
		return Envelope{}, fmt.Errorf("%w: missing credentials", ErrInvalidImportData)
	}
	return env, nil
}

// simulate applies entries to a copy of current with the vault's upsert
// rules and reports which positions were overwritten.
func simulate(current []model.CredentialInfo, entries []Entry) ([]model.CredentialInfo, map[int]bool) {
	out := append([]model.CredentialInfo(nil), current...)
	updated := make(map[int]bool)

	for _, e := range entries {
		app := strings.TrimSpace(e.AppName)
		if app == "" || e.Password == "" {
			continue
		}
		user := strings.TrimSpace(e.Username)

		found := false
		for i := range out {
			if strings.EqualFold(out[i].AppName, app) {
				out[i].AppName = app
				out[i].Username = user
				if i < len(current) {
					updated[i] = true
				}
				found = true
				break
			}
		}
		if !found {
			out = append(out, model.CredentialInfo{AppName: app, Username: user})
		}
	}
	return out, updated
}

func listing(creds []model.CredentialInfo, updated map[int]bool) string {
	var b strings.Builder
	for i, c := range creds {
		b.WriteString(c.AppName)
		b.WriteByte('\t')
		b.WriteString(c.Username)
		if updated[i] {
			b.WriteString("\t(updated)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
