package workspace

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
)

// DirEntry is a single directory listing entry.
type DirEntry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"is_dir"`
}

// FS reads files and directories inside a sandboxed project root.
type FS struct {
	Root string
}

// NewFS creates a sandboxed filesystem reader rooted at root.
func NewFS(root string) *FS {
	return &FS{Root: root}
}

// ReadFile returns the contents of a project-relative file.
func (f *FS) ReadFile(path string) (string, error) {
	resolved, err := ResolveWithinRoot(path, f.Root)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// ListDirectory returns the entries of a project-relative directory, sorted
// by name, each tagged as file or directory.
func (f *FS) ListDirectory(path string) ([]DirEntry, error) {
	resolved, err := ResolveWithinRoot(path, f.Root)
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(resolved)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	result := make([]DirEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, DirEntry{Name: entry.Name(), IsDir: entry.IsDir()})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Search looks for a regex pattern under a project-relative path (the whole
// root when path is empty). It shells out to ripgrep when available and falls
// back to grep.
func (f *FS) Search(ctx context.Context, pattern, path string) (string, error) {
	target := f.Root
	if path != "" {
		resolved, err := ResolveWithinRoot(path, f.Root)
		if err != nil {
			return "", err
		}
		target = resolved
	}

	tool := "grep"
	args := []string{"-rn", pattern, target}
	if rgPath, err := exec.LookPath("rg"); err == nil {
		tool = rgPath
		args = []string{"--line-number", "--no-heading", pattern, target}
	}

	cmd := exec.CommandContext(ctx, tool, args...)
	cmd.Dir = f.Root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		// Both rg and grep exit 1 when nothing matches; any other failure,
		// such as an invalid pattern, must reach the caller.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("search %q: %s", pattern, msg)
	}
	return stdout.String(), nil
}
