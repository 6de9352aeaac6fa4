package git

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Exposure is the git status of one file
type Exposure struct {
	Path    string
	IsRepo  bool
	Tracked bool
	Ignored bool
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	err := cmd.Run()
	return err == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()
	if err != nil {
		return false
	}
	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir
	// exit code 0 means ignored
	return cmd.Run() == nil
}

// Check reports how path, relative to workDir, relates to git
func Check(workDir, path string) Exposure {
	e := Exposure{Path: filepath.ToSlash(path)}
	if !IsGitRepo(workDir) {
		return e
	}
	e.IsRepo = true
	e.Tracked = IsTracked(workDir, path)
	e.Ignored = IsIgnored(workDir, path)
	return e
}

// Exposed reports whether the file could be committed
func (e Exposure) Exposed() bool {
	return e.IsRepo && (e.Tracked || !e.Ignored)
}

// Warning returns a user-facing warning, or "" when the file is safe
func (e Exposure) Warning() string {
	switch {
	case !e.IsRepo:
		return ""
	case e.Tracked:
		return fmt.Sprintf("warning: %s is tracked by git (run: git rm --cached %s)", e.Path, e.Path)
	case !e.Ignored:
		return fmt.Sprintf("warning: %s is not in .gitignore (add it to .gitignore)", e.Path)
	}
	return ""
}
