// Package workspace provides the read-only project access primitives the
// agent tools are built on: a path sandbox that confines every operation to a
// project root, a filesystem reader, a content search, and a git diff client.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a path resolves outside the project root,
// including through symlinks.
var ErrOutsideRoot = errors.New("path resolves outside the project root")

// ResolveWithinRoot resolves path relative to root and verifies the result
// stays inside root after symlink resolution. It returns the absolute,
// symlink-resolved path.
func ResolveWithinRoot(path, root string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}
	resolvedRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolve root %s: %w", root, err)
	}

	candidate := path
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(absRoot, candidate)
	}
	candidate = filepath.Clean(candidate)

	resolved, err := evalSymlinksPartial(candidate)
	if err != nil {
		return "", err
	}

	if !within(resolved, resolvedRoot) {
		return "", fmt.Errorf("%s: %w", path, ErrOutsideRoot)
	}
	return resolved, nil
}

// evalSymlinksPartial resolves symlinks in the longest existing prefix of
// path, then rejoins the non-existing remainder. This keeps the escape check
// meaningful for paths whose final components do not exist yet.
func evalSymlinksPartial(path string) (string, error) {
	remainder := ""
	current := path
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			return filepath.Join(resolved, remainder), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("resolve %s: %w", path, err)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return filepath.Join(current, remainder), nil
		}
		remainder = filepath.Join(filepath.Base(current), remainder)
		current = parent
	}
}

func within(path, root string) bool {
	if path == root {
		return true
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}
