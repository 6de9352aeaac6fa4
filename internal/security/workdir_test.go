package security

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func openTestWorkDir(t *testing.T) (*WorkDir, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := Open(dir)
	if err != nil {
		t.Fatalf("Failed to open work dir: %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w, dir
}

func TestWorkDir_Clean(t *testing.T) {
	w, _ := openTestWorkDir(t)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"simple file", "export.pv", "export.pv", nil},
		{"subdirectory", "backups/export.pv", filepath.FromSlash("backups/export.pv"), nil},
		{"dot slash", "./export.pv", "export.pv", nil},
		{"dot segments", "a/./b/../export.pv", filepath.FromSlash("a/export.pv"), nil},

		{"parent directory", "../export.pv", "", ErrPathEscapes},
		{"nested parent", "a/../../export.pv", "", ErrPathEscapes},
		{"absolute path", "/etc/passwd", "", ErrAbsolutePath},
		{"empty path", "", "", ErrEmptyPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.Clean(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Expected %v for %q, got %v", tt.wantErr, tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWorkDir_WriteAndRead(t *testing.T) {
	w, dir := openTestWorkDir(t)

	if err := w.WriteFile("backups/export.pv", []byte("blob")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	data, err := w.ReadFile("backups/export.pv")
	if err != nil {
		t.Fatalf("Failed to read: %v", err)
	}
	if string(data) != "blob" {
		t.Errorf("Got %q, want %q", data, "blob")
	}

	if !w.Exists("backups/export.pv") {
		t.Error("Exists should report written file")
	}
	if w.Exists("missing.pv") {
		t.Error("Exists should not report missing file")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dir, "backups", "export.pv"))
		if err != nil {
			t.Fatalf("Failed to stat: %v", err)
		}
		if info.Mode().Perm() != SecretFileMode {
			t.Errorf("Mode = %v, want %v", info.Mode().Perm(), SecretFileMode)
		}
	}
}

func TestWorkDir_TightensExistingMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not enforced on windows")
	}
	w, dir := openTestWorkDir(t)

	path := filepath.Join(dir, "export.pv")
	if err := os.WriteFile(path, []byte("old"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	if err := w.WriteFile("export.pv", []byte("new")); err != nil {
		t.Fatalf("Failed to write: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Failed to stat: %v", err)
	}
	if info.Mode().Perm() != SecretFileMode {
		t.Errorf("Mode = %v, want %v", info.Mode().Perm(), SecretFileMode)
	}
}

func TestWorkDir_RejectsEscapes(t *testing.T) {
	w, dir := openTestWorkDir(t)

	if err := w.WriteFile("../outside.pv", []byte("x")); !errors.Is(err, ErrPathEscapes) {
		t.Errorf("Expected ErrPathEscapes, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "outside.pv")); err == nil {
		t.Error("File was written outside the working directory")
	}

	if _, err := w.ReadFile("/etc/passwd"); !errors.Is(err, ErrAbsolutePath) {
		t.Errorf("Expected ErrAbsolutePath, got %v", err)
	}
}

func TestWorkDir_RejectsSymlinkEscape(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	w, dir := openTestWorkDir(t)

	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(dir, "link")); err != nil {
		t.Fatalf("Failed to create symlink: %v", err)
	}

	if err := w.WriteFile("link/export.pv", []byte("x")); err == nil {
		t.Error("Expected write through escaping symlink to fail")
	}
	if _, err := os.Stat(filepath.Join(outside, "export.pv")); err == nil {
		t.Error("File was written through symlink")
	}
}
