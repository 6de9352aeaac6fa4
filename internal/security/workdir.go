// Package security confines export and import files to the working
// directory.
package security

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SecretFileMode is the permission for every file passvault writes
const SecretFileMode os.FileMode = 0600

var (
	ErrPathEscapes  = errors.New("path escapes working directory")
	ErrAbsolutePath = errors.New("absolute paths are not allowed")
	ErrEmptyPath    = errors.New("empty path not allowed")
)

// WorkDir performs file operations that cannot leave dir. Paths are checked
// lexically and then opened through os.Root, which also refuses symlinks
// pointing outside.
type WorkDir struct {
	root *os.Root
	path string
}

// Open confines file access to dir
func Open(dir string) (*WorkDir, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open working directory: %w", err)
	}

	return &WorkDir{root: root, path: absPath}, nil
}

func (w *WorkDir) Close() error {
	if w.root != nil {
		return w.root.Close()
	}
	return nil
}

// Path returns the absolute working directory
func (w *WorkDir) Path() string {
	return w.path
}

// Clean validates a user-supplied path and returns it relative to the
// working directory.
func (w *WorkDir) Clean(userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}
	if filepath.IsAbs(userPath) {
		return "", fmt.Errorf("%w: %s", ErrAbsolutePath, userPath)
	}

	cleanPath := filepath.Clean(userPath)
	if !filepath.IsLocal(cleanPath) {
		return "", fmt.Errorf("%w: %s", ErrPathEscapes, userPath)
	}
	return cleanPath, nil
}

// ReadFile reads a file inside the working directory
func (w *WorkDir) ReadFile(path string) ([]byte, error) {
	clean, err := w.Clean(path)
	if err != nil {
		return nil, err
	}
	f, err := w.root.Open(clean)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// WriteFile writes data with SecretFileMode, creating parent directories.
// An existing file is replaced and its mode tightened.
func (w *WorkDir) WriteFile(path string, data []byte) error {
	clean, err := w.Clean(path)
	if err != nil {
		return err
	}

	if err := w.mkdirAll(filepath.Dir(clean)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := w.root.OpenFile(clean, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, SecretFileMode)
	if err != nil {
		return err
	}
	if err := f.Chmod(SecretFileMode); err != nil {
		f.Close()
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// mkdirAll creates dir and its parents inside the root
func (w *WorkDir) mkdirAll(dir string) error {
	if dir == "." {
		return nil
	}

	current := ""
	for _, part := range strings.Split(dir, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		if err := w.root.Mkdir(current, 0700); err != nil && !errors.Is(err, fs.ErrExist) {
			return err
		}
	}
	return nil
}

// Exists reports whether path names an existing file
func (w *WorkDir) Exists(path string) bool {
	clean, err := w.Clean(path)
	if err != nil {
		return false
	}
	_, err = w.root.Stat(clean)
	return err == nil
}
