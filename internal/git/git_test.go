package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-q")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v: %s", err, out)
	}
	return dir
}

func TestExposure_Warning(t *testing.T) {
	tests := []struct {
		name    string
		e       Exposure
		want    string
		exposed bool
	}{
		{"outside repo", Exposure{Path: "export.pv"}, "", false},
		{"ignored", Exposure{Path: "export.pv", IsRepo: true, Ignored: true}, "", false},
		{"not ignored", Exposure{Path: "export.pv", IsRepo: true}, ".gitignore", true},
		{"tracked", Exposure{Path: "export.pv", IsRepo: true, Tracked: true, Ignored: true}, "git rm --cached", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.e.Warning()
			if tt.want == "" && got != "" {
				t.Errorf("Expected no warning, got %q", got)
			}
			if tt.want != "" && !strings.Contains(got, tt.want) {
				t.Errorf("Warning %q should mention %q", got, tt.want)
			}
			if tt.e.Exposed() != tt.exposed {
				t.Errorf("Exposed() = %v, want %v", tt.e.Exposed(), tt.exposed)
			}
		})
	}
}

func TestCheck_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	e := Check(t.TempDir(), "export.pv")
	if e.IsRepo {
		t.Skip("temp dir is inside a git repository")
	}
	if e.Exposed() {
		t.Error("File outside a repository should not be exposed")
	}
}

func TestCheck_IgnoredFile(t *testing.T) {
	dir := initRepo(t)

	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.pv\n"), 0644); err != nil {
		t.Fatalf("Failed to write .gitignore: %v", err)
	}

	e := Check(dir, "export.pv")
	if !e.IsRepo {
		t.Fatal("Expected repository")
	}
	if !e.Ignored || e.Exposed() {
		t.Errorf("Expected ignored, unexposed file: %+v", e)
	}

	e = Check(dir, "notes.txt")
	if !e.Exposed() {
		t.Errorf("Expected unignored file to be exposed: %+v", e)
	}
}
