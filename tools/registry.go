// Package tools declares the fixed set of read-only tools the agent may call
// and dispatches invocations against a sandboxed project root. The tool set
// is a closed enum: adding or removing a tool is a compile-time change, and
// the dispatcher's switch over it is exhaustive.
package tools

import (
	"encoding/json"
	"fmt"

	"github.com/jgardner/helmsman/llm"
)

// Name identifies a tool. The set is closed; Dispatch matches exhaustively
// over these values.
type Name string

const (
	ReadFile      Name = "read_file"
	ListFiles     Name = "list_files"
	PatternSearch Name = "pattern_search"
	GitDiff       Name = "git_diff"
)

// All lists every tool in declaration order.
var All = []Name{ReadFile, ListFiles, PatternSearch, GitDiff}

// Set is the subset of tools a run exposes to the model.
type Set map[Name]bool

// NewSet builds a Set from the given names.
func NewSet(names ...Name) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Contains reports whether name is in the set.
func (s Set) Contains(name Name) bool {
	return s[name]
}

// definitions holds the static, read-only metadata for each tool.
var definitions = map[Name]llm.ToolDefinition{
	ReadFile: {
		Name:        string(ReadFile),
		Description: "Read a file from the project. The path is relative to the project root.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Project-relative path of the file to read.",
				},
			},
			"required": []string{"path"},
		},
	},
	ListFiles: {
		Name:        string(ListFiles),
		Description: "List the entries of a project directory. Each entry is tagged as a file or a directory.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Project-relative directory to list. Defaults to the project root.",
				},
			},
			"required": []string{},
		},
	},
	PatternSearch: {
		Name:        string(PatternSearch),
		Description: "Search file contents for a regex pattern. Returns matching lines with file paths and line numbers.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"pattern": map[string]any{
					"type":        "string",
					"description": "Regex pattern to search for.",
				},
				"path": map[string]any{
					"type":        "string",
					"description": "Project-relative file or directory to scope the search to.",
				},
			},
			"required": []string{"pattern"},
		},
	},
	GitDiff: {
		Name:        string(GitDiff),
		Description: "Return the working-tree git diff as unified diff text, optionally scoped to one file.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path": map[string]any{
					"type":        "string",
					"description": "Project-relative file to scope the diff to.",
				},
			},
			"required": []string{},
		},
	},
}

// Declarations returns the tool definitions for the given subset, in the
// order of All, for sending to the model.
func Declarations(set Set) []llm.ToolDefinition {
	defs := make([]llm.ToolDefinition, 0, len(set))
	for _, name := range All {
		if set.Contains(name) {
			defs = append(defs, definitions[name])
		}
	}
	return defs
}

// ParseInput unmarshals a tool invocation's raw input into a map.
func ParseInput(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid tool input: %w", err)
	}
	return args, nil
}

// StringArg extracts a string argument from parsed tool input.
func StringArg(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
