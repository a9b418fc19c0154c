package llm

// ModelInfo describes a known model in the catalog.
type ModelInfo struct {
	ID            string
	Provider      string
	ContextWindow int
	MaxOutput     int
	Aliases       []string
}

// Models is the built-in model catalog.
var Models = []ModelInfo{
	{
		ID: "claude-opus-4-6", Provider: "anthropic",
		ContextWindow: 200000, MaxOutput: 32768,
		Aliases: []string{"opus", "claude-opus"},
	},
	{
		ID: "claude-sonnet-4-5", Provider: "anthropic",
		ContextWindow: 200000, MaxOutput: 16384,
		Aliases: []string{"sonnet", "claude-sonnet"},
	},
	{
		ID: "gpt-5.2", Provider: "openai",
		ContextWindow: 1047576, MaxOutput: 32768,
		Aliases: []string{"gpt5"},
	},
	{
		ID: "gpt-5.2-mini", Provider: "openai",
		ContextWindow: 1047576, MaxOutput: 16384,
		Aliases: []string{"gpt5-mini"},
	},
}

// LookupModel returns the catalog entry for a model id or alias, or nil when
// the model is unknown.
func LookupModel(id string) *ModelInfo {
	for i := range Models {
		m := &Models[i]
		if m.ID == id {
			return m
		}
		for _, alias := range m.Aliases {
			if alias == id {
				return m
			}
		}
	}
	return nil
}

// DefaultMaxTokens returns the catalog's max output for the model, or a
// conservative default when the model is unknown.
func DefaultMaxTokens(id string) int {
	if m := LookupModel(id); m != nil {
		return m.MaxOutput
	}
	return 8192
}
