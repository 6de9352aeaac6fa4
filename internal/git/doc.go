// Package git reports whether passvault files are exposed to git.
//
// Checks performed:
//   - Whether a file sits inside a git work tree
//   - Whether it is tracked by git (should not be)
//   - Whether it is covered by .gitignore (should be)
//
// Used for export files and the vault file itself.
package git
