// Package project locates the tree an audit operates on.
package project

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// FindRoot returns the root of the tree to audit, preferring ERRCODES_ROOT
// if set, then the enclosing git repository, then the working directory.
func FindRoot() (string, error) {
	if dir := os.Getenv("ERRCODES_ROOT"); dir != "" {
		return dir, nil
	}
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err == nil {
		return strings.TrimSpace(string(out)), nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("locating audit root: %w", err)
	}
	return cwd, nil
}

// ScanRoot resolves the directory the walk starts from: the configured
// prefix under the root when it exists, otherwise the root itself.
func ScanRoot(root, prefix string) string {
	if prefix == "" {
		return root
	}
	sub := filepath.Join(root, filepath.FromSlash(prefix))
	if info, err := os.Stat(sub); err == nil && info.IsDir() {
		return sub
	}
	return root
}
