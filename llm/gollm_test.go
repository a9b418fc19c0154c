package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseEmbeddedToolCalls(t *testing.T) {
	text := `Let me look at that file. [{"name": "read_file", "arguments": {"path": "main.go"}}]`
	calls, remainder := parseEmbeddedToolCalls(text)

	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Kind != BlockToolUse || calls[0].ToolUse.Name != "read_file" {
		t.Errorf("unexpected call: %+v", calls[0])
	}
	if remainder != "Let me look at that file." {
		t.Errorf("remainder = %q", remainder)
	}
}

func TestParseEmbeddedToolCallsPlainText(t *testing.T) {
	calls, remainder := parseEmbeddedToolCalls("just a normal answer")
	if len(calls) != 0 {
		t.Errorf("expected no calls, got %v", calls)
	}
	if remainder != "just a normal answer" {
		t.Errorf("remainder = %q", remainder)
	}
}

func TestParseEmbeddedToolCallsMalformedJSON(t *testing.T) {
	text := `[{"name": "read_file", "arguments": {broken`
	calls, remainder := parseEmbeddedToolCalls(text)
	if len(calls) != 0 {
		t.Errorf("expected no calls from malformed JSON, got %v", calls)
	}
	if remainder != text {
		t.Errorf("malformed input must pass through unchanged, got %q", remainder)
	}
}

func TestGollmTranslateError(t *testing.T) {
	c := &GollmClient{provider: "openai"}

	tests := []struct {
		msg      string
		wantType string
	}{
		{"API error: 401 unauthorized", "*llm.AuthenticationError"},
		{"invalid api key provided", "*llm.AuthenticationError"},
		{"403 forbidden", "*llm.AccessDeniedError"},
		{"rate limit exceeded, retry later", "*llm.RateLimitError"},
		{"prompt exceeds context length", "*llm.ContextLengthError"},
		{"500 internal server error", "*llm.ServerError"},
		{"request timeout after 30s", "*llm.RequestTimeoutError"},
		{"connection refused", "*llm.NetworkError"},
	}

	for _, tt := range tests {
		got := c.translateError(errors.New(tt.msg))
		if typeName := fmt.Sprintf("%T", got); typeName != tt.wantType {
			t.Errorf("translateError(%q) = %s, want %s", tt.msg, typeName, tt.wantType)
		}
	}
}

func TestEstimateTokens(t *testing.T) {
	req := Request{Messages: []Message{UserMessage("a message of forty characters in length.")}}
	if got := estimateTokens(req); got != 10 {
		t.Errorf("estimateTokens = %d, want 10", got)
	}
	if got := estimateTokens(Request{}); got != 10 {
		t.Errorf("empty request floor = %d, want 10", got)
	}
}
