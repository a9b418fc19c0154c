package llm

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicClient implements Completer against the Anthropic Messages API.
// Tool invocations and results map directly onto the API's tool_use and
// tool_result content blocks, preserving invocation ids.
type AnthropicClient struct {
	client anthropic.Client
	model  anthropic.Model
}

// NewAnthropic creates an Anthropic-backed Completer. The model acts as a
// default; a Request's Model field overrides it per call.
func NewAnthropic(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// Complete implements Completer.
func (c *AnthropicClient) Complete(ctx context.Context, req Request) (*Response, error) {
	params, err := c.buildParams(req)
	if err != nil {
		return nil, &ConfigurationError{ClientError: ClientError{Message: "build request", Cause: err}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, classifyAnthropicError(err)
	}
	if resp == nil || len(resp.Content) == 0 {
		return nil, &ServerError{ProviderError: ProviderError{
			ClientError: ClientError{Message: "empty response from Anthropic API"},
			Provider:    "anthropic",
			Temporary:   true,
		}}
	}

	blocks := make([]ContentBlock, 0, len(resp.Content))
	for i := range resp.Content {
		block := &resp.Content[i]
		switch block.Type {
		case "text":
			blocks = append(blocks, TextBlock(block.AsText().Text))
		case "tool_use":
			tu := block.AsToolUse()
			blocks = append(blocks, ToolUse(tu.ID, tu.Name, json.RawMessage(tu.Input)))
		}
	}

	return &Response{
		ID:         resp.ID,
		Model:      string(resp.Model),
		StopReason: StopReason(resp.StopReason),
		Blocks:     blocks,
		Usage: Usage{
			InputTokens:  int(resp.Usage.InputTokens),
			OutputTokens: int(resp.Usage.OutputTokens),
		},
	}, nil
}

func (c *AnthropicClient) buildParams(req Request) (anthropic.MessageNewParams, error) {
	messages := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		parts := make([]anthropic.ContentBlockParamUnion, 0, len(m.Blocks))
		for _, b := range m.Blocks {
			switch b.Kind {
			case BlockText:
				parts = append(parts, anthropic.NewTextBlock(b.Text))
			case BlockToolUse:
				var part anthropic.ContentBlockParamUnion
				part.OfToolUse = &anthropic.ToolUseBlockParam{
					ID:    b.ToolUse.ID,
					Name:  b.ToolUse.Name,
					Input: b.ToolUse.Input,
				}
				parts = append(parts, part)
			case BlockToolResult:
				var part anthropic.ContentBlockParamUnion
				part.OfToolResult = &anthropic.ToolResultBlockParam{
					ToolUseID: b.ToolResult.ToolUseID,
					IsError:   anthropic.Bool(b.ToolResult.IsError),
					Content: []anthropic.ToolResultBlockParamContentUnion{
						{OfText: &anthropic.TextBlockParam{Text: b.ToolResult.Content, Type: "text"}},
					},
				}
				parts = append(parts, part)
			}
		}

		role := anthropic.MessageParamRoleUser
		if m.Role == RoleAssistant {
			role = anthropic.MessageParamRoleAssistant
		}
		messages = append(messages, anthropic.MessageParam{Role: role, Content: parts})
	}

	model := c.model
	if req.Model != "" {
		model = anthropic.Model(req.Model)
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens(string(model))
	}

	params := anthropic.MessageNewParams{
		Model:     model,
		Messages:  messages,
		MaxTokens: int64(maxTokens),
	}

	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System, Type: "text"}}
	}

	if len(req.Tools) > 0 {
		tools := make([]anthropic.ToolUnionParam, 0, len(req.Tools))
		for _, td := range req.Tools {
			schema := anthropic.ToolInputSchemaParam{Type: "object"}
			if props, ok := td.Parameters["properties"]; ok {
				schema.Properties = props
			}
			if required, ok := td.Parameters["required"].([]string); ok {
				schema.Required = required
			}
			tools = append(tools, anthropic.ToolUnionParamOfTool(schema, td.Name))
		}
		params.Tools = tools
		params.ToolChoice = anthropic.ToolChoiceUnionParam{
			OfAuto: &anthropic.ToolChoiceAutoParam{},
		}
	}

	return params, nil
}

// classifyAnthropicError maps SDK errors to the llm error hierarchy.
func classifyAnthropicError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &RequestTimeoutError{ClientError: ClientError{Message: "request timed out", Cause: err}}
	}
	if errors.Is(err, context.Canceled) {
		return &NetworkError{ClientError: ClientError{Message: "request canceled", Cause: err}}
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return FromStatusCode(apiErr.StatusCode, err.Error(), "anthropic")
	}

	return &NetworkError{ClientError: ClientError{Message: "anthropic request failed", Cause: err}}
}
