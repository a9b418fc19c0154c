package workspace

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Git runs read-only git operations against a project root.
type Git struct {
	Root string
}

// NewGit creates a git client for the repository at root.
func NewGit(root string) *Git {
	return &Git{Root: root}
}

// Diff returns the working-tree diff as unified diff text, optionally scoped
// to one project-relative file.
func (g *Git) Diff(ctx context.Context, path string) (string, error) {
	args := []string{"diff"}
	if path != "" {
		resolved, err := ResolveWithinRoot(path, g.Root)
		if err != nil {
			return "", err
		}
		args = append(args, "--", resolved)
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Root
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git diff: %s", msg)
	}
	return stdout.String(), nil
}

// Branch returns the current branch name, or an empty string when the root is
// not a git repository.
func (g *Git) Branch(ctx context.Context) string {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = g.Root
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return ""
	}
	return strings.TrimSpace(stdout.String())
}
