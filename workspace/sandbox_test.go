package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestResolveWithinRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "file.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative inside", "sub/file.txt", false},
		{"root itself", ".", false},
		{"nonexistent inside", "sub/new.txt", false},
		{"dotdot escape", "../outside.txt", true},
		{"nested dotdot escape", "sub/../../outside.txt", true},
		{"absolute outside", "/etc/passwd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveWithinRoot(tt.path, root)
			if tt.wantErr {
				if !errors.Is(err, ErrOutsideRoot) {
					t.Errorf("expected ErrOutsideRoot, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveWithinRootDotDotThatStaysInside(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "a", "b"), 0o755); err != nil {
		t.Fatal(err)
	}
	resolved, err := ResolveWithinRoot("a/b/../../a", root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(resolved) != "a" {
		t.Errorf("unexpected resolution: %s", resolved)
	}
}

func TestResolveWithinRootSymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("s"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if _, err := ResolveWithinRoot("link/secret.txt", root); !errors.Is(err, ErrOutsideRoot) {
		t.Errorf("expected ErrOutsideRoot through symlink, got %v", err)
	}
}

func TestResolveWithinRootSymlinkInside(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "real"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "alias")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	if _, err := ResolveWithinRoot("alias", root); err != nil {
		t.Errorf("internal symlink must resolve: %v", err)
	}
}
