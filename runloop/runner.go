package runloop

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jgardner/helmsman/extract"
	"github.com/jgardner/helmsman/llm"
	"github.com/jgardner/helmsman/tools"
)

// Run executes one agent run to completion. The terminal outcome is
// delivered exclusively through cfg.Callbacks: exactly one of OnComplete or
// OnError fires, and Run itself never panics out and has no return value.
// Cancelling ctx resolves the run through OnError at the next turn boundary.
func Run[T any](ctx context.Context, cfg Config[T]) {
	r := newRun(cfg)
	defer func() {
		// A panic anywhere below is reported through OnError like any
		// other failure; the callback contract holds regardless.
		if p := recover(); p != nil {
			r.fail(fmt.Sprintf("internal error: %v", p))
		}
	}()
	r.loop(ctx)
}

type run[T any] struct {
	id         string
	cfg        Config[T]
	log        *zap.Logger
	done       bool
	toolCalls  int
	milestones int
	signatures []string
}

func newRun[T any](cfg Config[T]) *run[T] {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New().String()[:8]
	return &run[T]{
		id:  id,
		cfg: cfg,
		log: log.With(zap.String("run_id", id)),
	}
}

func (r *run[T]) loop(ctx context.Context) {
	maxTurns := r.cfg.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	loopWindow := r.cfg.LoopWindow
	if loopWindow <= 0 {
		loopWindow = DefaultLoopWindow
	}

	history := []llm.Message{llm.UserMessage(r.cfg.BuildPrompt())}
	decls := tools.Declarations(r.cfg.Dispatcher.Allowed())

	for turn := 1; turn <= maxTurns; turn++ {
		select {
		case <-ctx.Done():
			r.fail(fmt.Sprintf("run canceled: %v", ctx.Err()))
			return
		default:
		}

		resp, err := r.cfg.Client.Complete(ctx, llm.Request{
			Model:     r.cfg.Model,
			System:    r.cfg.SystemPrompt,
			Messages:  history,
			Tools:     decls,
			MaxTokens: r.cfg.MaxTokens,
		})
		if err != nil {
			r.log.Warn("model call failed",
				zap.Int("turn", turn),
				zap.Bool("temporary", llm.IsTemporary(err)),
				zap.Error(err),
			)
			r.fail(err.Error())
			return
		}

		uses := resp.ToolUses()
		if len(uses) == 0 {
			r.log.Debug("terminal turn", zap.Int("turn", turn))
			r.finalize(resp.Text())
			return
		}

		// Dispatch sequentially, in the order requested, so result blocks
		// pair with invocation ids deterministically.
		results := make([]llm.ContentBlock, 0, len(uses))
		for _, use := range uses {
			r.toolCalls++
			r.phaseUpdate()

			args, parseErr := tools.ParseInput(use.Input)
			if parseErr != nil {
				args = map[string]any{}
			}
			if cb := r.cfg.Callbacks.OnProgress; cb != nil {
				cb(Describe(tools.Name(use.Name), args))
			}

			out := r.cfg.Dispatcher.Dispatch(ctx, tools.Name(use.Name), use.Input)
			results = append(results, llm.ToolResult(use.ID, out, false))
			r.signatures = append(r.signatures, callSignature(use.Name, use.Input))

			r.log.Debug("tool dispatched",
				zap.Int("turn", turn),
				zap.String("tool", use.Name),
				zap.Int("result_chars", len(out)),
			)
		}

		userBlocks := results
		if ShouldNudge(maxTurns - turn) {
			userBlocks = append(userBlocks, llm.TextBlock(NudgeText()))
		}
		if r.cfg.DetectLoops && isRepeating(r.signatures, loopWindow) {
			r.log.Debug("repeating tool calls detected", zap.Int("window", loopWindow))
			userBlocks = append(userBlocks, llm.TextBlock(loopSteerText))
		}

		history = append(history,
			llm.AssistantBlocks(resp.Blocks...),
			llm.UserBlocks(userBlocks...),
		)
	}

	r.fail(fmt.Sprintf("exceeded maximum turns (%d) without a final answer", maxTurns))
}

// finalize extracts and validates the structured result from the terminal
// response text.
func (r *run[T]) finalize(text string) {
	raw, ok := extract.JSON(text)
	if !ok {
		if r.cfg.Policy == extract.FallbackRawText && r.cfg.Fallback != nil {
			r.log.Debug("no JSON in terminal response, falling back to raw text")
			r.complete(r.cfg.Fallback(text))
			return
		}
		r.fail(extract.ErrNoJSON.Error())
		return
	}

	var result T
	if err := json.Unmarshal(raw, &result); err != nil {
		r.fail((&extract.SchemaError{Cause: err}).Error())
		return
	}
	if err := extract.Validate(&result); err != nil {
		r.fail(err.Error())
		return
	}
	r.complete(result)
}

// phaseUpdate fires the next milestone when the cumulative tool-call count
// reaches it.
func (r *run[T]) phaseUpdate() {
	cb := r.cfg.Callbacks.OnPhaseUpdate
	if cb == nil {
		return
	}
	for r.milestones < len(r.cfg.Milestones) {
		m := r.cfg.Milestones[r.milestones]
		if r.toolCalls < m.AfterToolCalls {
			return
		}
		r.milestones++
		cb(m.Phase, m.Percent)
	}
}

func (r *run[T]) complete(result T) {
	if r.done {
		return
	}
	r.done = true
	r.log.Info("run complete", zap.Int("tool_calls", r.toolCalls))
	if cb := r.cfg.Callbacks.OnComplete; cb != nil {
		cb(result)
	}
}

func (r *run[T]) fail(message string) {
	if r.done {
		return
	}
	r.done = true
	r.log.Info("run failed", zap.String("reason", message), zap.Int("tool_calls", r.toolCalls))
	if cb := r.cfg.Callbacks.OnError; cb != nil {
		cb(message)
	}
}
