package tools

import (
	"encoding/json"
	"testing"
)

func TestDeclarationsSubsetAndOrder(t *testing.T) {
	set := NewSet(GitDiff, ReadFile)
	defs := Declarations(set)

	if len(defs) != 2 {
		t.Fatalf("expected 2 declarations, got %d", len(defs))
	}
	// Declarations follow the fixed order of All, not insertion order.
	if defs[0].Name != string(ReadFile) || defs[1].Name != string(GitDiff) {
		t.Errorf("unexpected order: %s, %s", defs[0].Name, defs[1].Name)
	}
}

func TestDeclarationsHaveSchemas(t *testing.T) {
	for _, def := range Declarations(NewSet(All...)) {
		if def.Description == "" {
			t.Errorf("%s: missing description", def.Name)
		}
		if def.Parameters["type"] != "object" {
			t.Errorf("%s: parameters must be a JSON-schema object", def.Name)
		}
		if _, ok := def.Parameters["properties"]; !ok {
			t.Errorf("%s: missing properties", def.Name)
		}
		if _, ok := def.Parameters["required"].([]string); !ok {
			t.Errorf("%s: missing required list", def.Name)
		}
	}
}

func TestSetContains(t *testing.T) {
	set := NewSet(ReadFile, ListFiles)
	if !set.Contains(ReadFile) || !set.Contains(ListFiles) {
		t.Error("expected members to be contained")
	}
	if set.Contains(GitDiff) {
		t.Error("git_diff is not a member")
	}
}

func TestParseInput(t *testing.T) {
	args, err := ParseInput(json.RawMessage(`{"path": "a.go", "n": 3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path, ok := StringArg(args, "path"); !ok || path != "a.go" {
		t.Errorf("path = %q, ok = %v", path, ok)
	}
	if _, ok := StringArg(args, "n"); ok {
		t.Error("non-string argument must not satisfy StringArg")
	}
	if _, ok := StringArg(args, "absent"); ok {
		t.Error("missing argument must not satisfy StringArg")
	}
}

func TestParseInputEmpty(t *testing.T) {
	args, err := ParseInput(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(args) != 0 {
		t.Errorf("expected empty map, got %v", args)
	}
}
