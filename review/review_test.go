package review

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgardner/helmsman/extract"
	"github.com/jgardner/helmsman/llm"
	"github.com/jgardner/helmsman/runloop"
	"github.com/jgardner/helmsman/tools"
)

func TestSchemaJSON(t *testing.T) {
	schema := SchemaJSON()
	assert.Contains(t, schema, `"comments"`)
	assert.Contains(t, schema, `"severity"`)
	assert.NotContains(t, schema, "$ref")
}

func TestBuildPrompt(t *testing.T) {
	in := Inputs{TaskTitle: "Add caching", TaskBody: "Cache lookups."}
	prompt := in.BuildPrompt()
	assert.Contains(t, prompt, `"Add caching"`)
	assert.Contains(t, prompt, "Cache lookups.")
	assert.Contains(t, prompt, "diff")
}

func TestBuildPromptWithoutTask(t *testing.T) {
	prompt := Inputs{}.BuildPrompt()
	assert.Contains(t, prompt, "working-tree changes")
	assert.NotContains(t, prompt, "Task context")
	assert.NotContains(t, prompt, "on branch")
}

func TestBuildPromptNamesBranch(t *testing.T) {
	prompt := Inputs{Branch: "feature/caching", TaskTitle: "Add caching"}.BuildPrompt()
	assert.Contains(t, prompt, `on branch "feature/caching"`)
	assert.Contains(t, prompt, `"Add caching"`)
}

func TestFromRawText(t *testing.T) {
	r := FromRawText("looks fine overall")
	assert.Equal(t, "looks fine overall", r.Feedback)
	assert.Empty(t, r.Summary)
	assert.Empty(t, r.Comments)
}

func TestCommentValidation(t *testing.T) {
	var r Review
	err := extract.Into(`{"summary": "s", "comments": [{"path": "a.go", "line": 10, "severity": "major", "body": "b"}]}`, &r)
	require.NoError(t, err)

	var se *extract.SchemaError
	err = extract.Into(`{"comments": [{"path": "a.go", "line": 10, "body": ""}]}`, &r)
	require.ErrorAs(t, err, &se, "a comment needs a body")

	err = extract.Into(`{"comments": [{"path": "a.go", "line": -1, "body": "b"}]}`, &r)
	require.ErrorAs(t, err, &se, "line numbers cannot be negative")

	err = extract.Into(`{"comments": [{"path": "a.go", "line": 1, "severity": "blocker", "body": "b"}]}`, &r)
	require.ErrorAs(t, err, &se, "severity is a closed enum")
}

func TestNewRunConfig(t *testing.T) {
	client := llm.CompleterFunc(func(_ context.Context, _ llm.Request) (*llm.Response, error) {
		return &llm.Response{}, nil
	})
	cfg := NewRunConfig(Inputs{ProjectRoot: t.TempDir()}, client, runloop.Callbacks[Review]{})

	assert.Equal(t, extract.FallbackRawText, cfg.Policy)
	require.NotNil(t, cfg.Fallback)
	assert.Equal(t, "raw", cfg.Fallback("raw").Feedback)
	assert.Empty(t, cfg.Milestones)
	assert.True(t, cfg.Dispatcher.Allowed().Contains(tools.GitDiff), "review needs the diff tool")
}

func TestNewRunConfigFillsBranchFromRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	root := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = root
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("one\n"), 0o644))
	run("add", ".")
	run("commit", "-m", "initial")

	client := llm.CompleterFunc(func(_ context.Context, _ llm.Request) (*llm.Response, error) {
		return &llm.Response{}, nil
	})
	cfg := NewRunConfig(Inputs{ProjectRoot: root}, client, runloop.Callbacks[Review]{})
	assert.Contains(t, cfg.BuildPrompt(), "on branch")
}

func TestReviewEndToEndRawTextFallback(t *testing.T) {
	// A reviewer that answers in prose still yields a usable result.
	client := llm.CompleterFunc(func(_ context.Context, _ llm.Request) (*llm.Response, error) {
		return &llm.Response{
			StopReason: llm.StopEndTurn,
			Blocks:     []llm.ContentBlock{llm.TextBlock("Ship it, just rename the helper.")},
		}, nil
	})

	var completed []Review
	cfg := NewRunConfig(Inputs{ProjectRoot: t.TempDir()}, client, runloop.Callbacks[Review]{
		OnComplete: func(r Review) { completed = append(completed, r) },
		OnError:    func(msg string) { t.Errorf("unexpected OnError: %s", msg) },
	})
	runloop.Run(context.Background(), cfg)

	require.Len(t, completed, 1)
	assert.Equal(t, "Ship it, just rename the helper.", completed[0].Feedback)
	assert.Empty(t, completed[0].Comments)
}
