package llm

import "testing"

func TestLookupModel(t *testing.T) {
	tests := []struct {
		id       string
		wantID   string
		wantNil  bool
		provider string
	}{
		{"claude-sonnet-4-5", "claude-sonnet-4-5", false, "anthropic"},
		{"sonnet", "claude-sonnet-4-5", false, "anthropic"},
		{"opus", "claude-opus-4-6", false, "anthropic"},
		{"gpt5", "gpt-5.2", false, "openai"},
		{"unknown-model", "", true, ""},
	}

	for _, tt := range tests {
		m := LookupModel(tt.id)
		if tt.wantNil {
			if m != nil {
				t.Errorf("LookupModel(%q): expected nil, got %+v", tt.id, m)
			}
			continue
		}
		if m == nil {
			t.Errorf("LookupModel(%q): expected a match", tt.id)
			continue
		}
		if m.ID != tt.wantID || m.Provider != tt.provider {
			t.Errorf("LookupModel(%q) = %s/%s, want %s/%s", tt.id, m.ID, m.Provider, tt.wantID, tt.provider)
		}
	}
}

func TestDefaultMaxTokens(t *testing.T) {
	if got := DefaultMaxTokens("claude-opus-4-6"); got != 32768 {
		t.Errorf("known model: got %d", got)
	}
	if got := DefaultMaxTokens("made-up"); got != 8192 {
		t.Errorf("unknown model fallback: got %d", got)
	}
}
