package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/teilomillet/gollm"
)

// GollmClient implements Completer on top of gollm, covering the providers
// the Anthropic adapter does not (OpenAI-compatible endpoints). gollm speaks
// flattened prompts rather than structured content blocks, so tool results
// are rendered inline and tool calls are recovered from the response text.
//
// Per-request model and token overrides go through gollm's client-level
// SetOption, so a mutex serializes the option window and the generate call
// that reads it. Concurrent runs sharing one GollmClient are safe but take
// turns; use separate clients when parallel throughput matters.
type GollmClient struct {
	provider string
	llm      gollm.LLM
	model    string

	mu sync.Mutex
}

// NewGollm creates a gollm-backed Completer for the given provider. An empty
// apiKey lets gollm read it from the environment.
func NewGollm(provider, apiKey, model string) (*GollmClient, error) {
	if model == "" {
		switch provider {
		case "openai":
			model = "gpt-5.2-mini"
		default:
			model = "gpt-5.2-mini"
		}
	}

	opts := []gollm.ConfigOption{
		gollm.SetProvider(provider),
		gollm.SetModel(model),
		gollm.SetMaxRetries(0),
		gollm.SetLogLevel(gollm.LogLevelWarn),
	}
	if apiKey != "" {
		opts = append(opts, gollm.SetAPIKey(apiKey))
	}

	backend, err := gollm.NewLLM(opts...)
	if err != nil {
		return nil, &ConfigurationError{ClientError: ClientError{
			Message: fmt.Sprintf("create gollm client for provider %s", provider),
			Cause:   err,
		}}
	}

	return &GollmClient{provider: provider, llm: backend, model: model}, nil
}

// Complete implements Completer.
func (c *GollmClient) Complete(ctx context.Context, req Request) (*Response, error) {
	prompt := c.translateRequest(req)

	c.mu.Lock()
	if req.Model != "" {
		c.llm.SetOption("model", req.Model)
	}
	if req.MaxTokens > 0 {
		c.llm.SetOption("max_tokens", req.MaxTokens)
	}
	text, err := c.llm.Generate(ctx, prompt)
	c.mu.Unlock()
	if err != nil {
		return nil, c.translateError(err)
	}

	return c.buildResponse(req, text), nil
}

// translateRequest flattens structured messages into a gollm Prompt.
func (c *GollmClient) translateRequest(req Request) *gollm.Prompt {
	var parts []string
	for _, msg := range req.Messages {
		for _, b := range msg.Blocks {
			switch b.Kind {
			case BlockText:
				if msg.Role == RoleAssistant {
					parts = append(parts, "[Assistant]: "+b.Text)
				} else {
					parts = append(parts, b.Text)
				}
			case BlockToolUse:
				args, _ := json.Marshal(json.RawMessage(b.ToolUse.Input))
				parts = append(parts, fmt.Sprintf("[Assistant called %s(%s)]", b.ToolUse.Name, args))
			case BlockToolResult:
				prefix := "[Tool Result]"
				if b.ToolResult.IsError {
					prefix = "[Tool Error]"
				}
				parts = append(parts, prefix+": "+b.ToolResult.Content)
			}
		}
	}

	promptText := strings.Join(parts, "\n")
	if promptText == "" {
		promptText = "Hello"
	}

	promptOpts := []gollm.PromptOption{}
	if req.System != "" {
		promptOpts = append(promptOpts, gollm.WithSystemPrompt(req.System, gollm.CacheTypeEphemeral))
	}
	if req.MaxTokens > 0 {
		promptOpts = append(promptOpts, gollm.WithMaxLength(req.MaxTokens))
	}
	if len(req.Tools) > 0 {
		tools := make([]gollm.Tool, 0, len(req.Tools))
		for _, t := range req.Tools {
			tools = append(tools, gollm.Tool{
				Type: "function",
				Function: gollm.Function{
					Name:        t.Name,
					Description: t.Description,
					Parameters:  t.Parameters,
				},
			})
		}
		promptOpts = append(promptOpts, gollm.WithTools(tools))
		promptOpts = append(promptOpts, gollm.WithToolChoice("auto"))
	}

	return gollm.NewPrompt(promptText, promptOpts...)
}

// buildResponse constructs a Response from generated text, recovering any
// tool calls gollm embedded in the output.
func (c *GollmClient) buildResponse(req Request, text string) *Response {
	model := req.Model
	if model == "" {
		model = c.model
	}

	var blocks []ContentBlock
	calls, remainder := parseEmbeddedToolCalls(text)
	if remainder != "" {
		blocks = append(blocks, TextBlock(remainder))
	}
	for _, call := range calls {
		blocks = append(blocks, call)
	}
	if len(blocks) == 0 {
		blocks = []ContentBlock{TextBlock(text)}
	}

	stop := StopEndTurn
	if len(calls) > 0 {
		stop = StopToolUse
	}

	return &Response{
		ID:         "resp_" + uuid.New().String()[:8],
		Model:      model,
		StopReason: stop,
		Blocks:     blocks,
		Usage: Usage{
			InputTokens:  estimateTokens(req),
			OutputTokens: len(text) / 4,
		},
	}
}

// parseEmbeddedToolCalls detects the JSON tool-call arrays gollm may return
// inline and splits them from the surrounding text.
func parseEmbeddedToolCalls(text string) ([]ContentBlock, string) {
	start := strings.Index(text, `[{"name"`)
	if start == -1 {
		return nil, text
	}

	var rawCalls []struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal([]byte(text[start:]), &rawCalls); err != nil {
		return nil, text
	}

	var calls []ContentBlock
	for _, rc := range rawCalls {
		calls = append(calls, ToolUse("call_"+uuid.New().String()[:8], rc.Name, rc.Arguments))
	}
	return calls, strings.TrimSpace(text[:start])
}

// translateError converts a gollm error into the llm error hierarchy.
func (c *GollmClient) translateError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	msgLower := strings.ToLower(msg)

	pe := ProviderError{
		ClientError: ClientError{Message: msg, Cause: err},
		Provider:    c.provider,
	}

	switch {
	case strings.Contains(msgLower, "401") || strings.Contains(msgLower, "unauthorized") || strings.Contains(msgLower, "invalid api key"):
		pe.StatusCode = 401
		return &AuthenticationError{ProviderError: pe}
	case strings.Contains(msgLower, "403") || strings.Contains(msgLower, "forbidden"):
		pe.StatusCode = 403
		return &AccessDeniedError{ProviderError: pe}
	case strings.Contains(msgLower, "429") || strings.Contains(msgLower, "rate limit"):
		pe.StatusCode = 429
		pe.Temporary = true
		return &RateLimitError{ProviderError: pe}
	case strings.Contains(msgLower, "context length") || strings.Contains(msgLower, "too many tokens"):
		pe.StatusCode = 413
		return &ContextLengthError{ProviderError: pe}
	case strings.Contains(msgLower, "500") || strings.Contains(msgLower, "internal server"):
		pe.StatusCode = 500
		pe.Temporary = true
		return &ServerError{ProviderError: pe}
	case strings.Contains(msgLower, "timeout"):
		return &RequestTimeoutError{ClientError: pe.ClientError}
	default:
		return &NetworkError{ClientError: pe.ClientError}
	}
}

// estimateTokens provides a rough token count from request text; gollm does
// not expose provider usage.
func estimateTokens(req Request) int {
	total := 0
	for _, msg := range req.Messages {
		for _, b := range msg.Blocks {
			if b.Kind == BlockText {
				total += len(b.Text) / 4
			}
		}
	}
	if total == 0 {
		total = 10
	}
	return total
}
