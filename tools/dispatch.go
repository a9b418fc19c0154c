package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jgardner/helmsman/workspace"
)

// FileSystem is the filesystem collaborator the dispatcher reads through.
type FileSystem interface {
	ReadFile(path string) (string, error)
	ListDirectory(path string) ([]workspace.DirEntry, error)
	Search(ctx context.Context, pattern, path string) (string, error)
}

// DiffSource is the git collaborator the dispatcher inspects diffs through.
type DiffSource interface {
	Diff(ctx context.Context, path string) (string, error)
}

// Dispatcher executes tool invocations against a sandboxed project root. It
// never returns an error: every failure is rendered as a descriptive result
// string the model can read and react to.
type Dispatcher struct {
	allowed Set
	fs      FileSystem
	git     DiffSource
	limits  map[Name]int
	log     *zap.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithFileSystem overrides the filesystem collaborator.
func WithFileSystem(fs FileSystem) DispatcherOption {
	return func(d *Dispatcher) { d.fs = fs }
}

// WithDiffSource overrides the git collaborator.
func WithDiffSource(git DiffSource) DispatcherOption {
	return func(d *Dispatcher) { d.git = git }
}

// WithOutputLimits overrides per-tool output character limits.
func WithOutputLimits(limits map[Name]int) DispatcherOption {
	return func(d *Dispatcher) { d.limits = limits }
}

// WithLogger sets the dispatcher's logger.
func WithLogger(log *zap.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.log = log }
}

// NewDispatcher creates a dispatcher for the given project root, exposing
// only the allowed subset of tools.
func NewDispatcher(projectRoot string, allowed Set, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		allowed: allowed,
		fs:      workspace.NewFS(projectRoot),
		git:     workspace.NewGit(projectRoot),
		limits:  DefaultOutputLimits,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Allowed returns the tool subset this dispatcher exposes.
func (d *Dispatcher) Allowed() Set {
	return d.allowed
}

// Dispatch executes a named tool with the given raw input and returns its
// result as a string. Failures of any kind become descriptive strings, never
// errors, so the loop always has a value to feed back to the model.
func (d *Dispatcher) Dispatch(ctx context.Context, name Name, input json.RawMessage) string {
	out, err := d.execute(ctx, name, input)
	if err != nil {
		d.log.Debug("tool failed",
			zap.String("tool", string(name)),
			zap.Error(err),
		)
		return fmt.Sprintf("Error executing %s: %v", name, err)
	}
	return Truncate(out, name, d.limits)
}

func (d *Dispatcher) execute(ctx context.Context, name Name, input json.RawMessage) (string, error) {
	if !d.allowed.Contains(name) {
		return "", fmt.Errorf("tool is not available in this run")
	}

	args, err := ParseInput(input)
	if err != nil {
		return "", err
	}

	switch name {
	case ReadFile:
		path, ok := StringArg(args, "path")
		if !ok || path == "" {
			return "", fmt.Errorf("path is required")
		}
		return d.fs.ReadFile(path)

	case ListFiles:
		path, _ := StringArg(args, "path")
		if path == "" {
			path = "."
		}
		entries, err := d.fs.ListDirectory(path)
		if err != nil {
			return "", err
		}
		return formatEntries(entries), nil

	case PatternSearch:
		pattern, ok := StringArg(args, "pattern")
		if !ok || pattern == "" {
			return "", fmt.Errorf("pattern is required")
		}
		path, _ := StringArg(args, "path")
		out, err := d.fs.Search(ctx, pattern, path)
		if err != nil {
			return "", err
		}
		if out == "" {
			return "No matches found.", nil
		}
		return out, nil

	case GitDiff:
		path, _ := StringArg(args, "path")
		out, err := d.git.Diff(ctx, path)
		if err != nil {
			return "", err
		}
		if out == "" {
			return "No changes in the working tree.", nil
		}
		return out, nil

	default:
		return "", fmt.Errorf("unknown tool")
	}
}

func formatEntries(entries []workspace.DirEntry) string {
	if len(entries) == 0 {
		return "Directory is empty."
	}
	out := ""
	for _, e := range entries {
		tag := "file"
		if e.IsDir {
			tag = "dir"
		}
		out += fmt.Sprintf("[%s] %s\n", tag, e.Name)
	}
	return out
}
