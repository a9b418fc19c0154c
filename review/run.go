package review

import (
	"context"

	"go.uber.org/zap"

	"github.com/jgardner/helmsman/extract"
	"github.com/jgardner/helmsman/llm"
	"github.com/jgardner/helmsman/runloop"
	"github.com/jgardner/helmsman/tools"
	"github.com/jgardner/helmsman/workspace"
)

// Tools is the read-only subset a review run exposes to the model. Unlike
// planning, it includes diff inspection.
var Tools = tools.NewSet(tools.ReadFile, tools.ListFiles, tools.PatternSearch, tools.GitDiff)

// Option adjusts a review run config.
type Option func(*runloop.Config[Review])

// WithModel overrides the model for the run.
func WithModel(model string) Option {
	return func(cfg *runloop.Config[Review]) { cfg.Model = model }
}

// WithMaxTurns overrides the turn budget.
func WithMaxTurns(n int) Option {
	return func(cfg *runloop.Config[Review]) { cfg.MaxTurns = n }
}

// WithLogger sets the run's logger.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *runloop.Config[Review]) { cfg.Logger = log }
}

// NewRunConfig assembles the run configuration for a review run. Review
// degrades gracefully: a terminal response without parseable JSON becomes a
// minimal passing result carrying the raw text as free-form feedback.
func NewRunConfig(in Inputs, client llm.Completer, cb runloop.Callbacks[Review], opts ...Option) runloop.Config[Review] {
	if in.Branch == "" {
		in.Branch = workspace.NewGit(in.ProjectRoot).Branch(context.Background())
	}
	cfg := runloop.Config[Review]{
		SystemPrompt: SystemPrompt(),
		BuildPrompt:  in.BuildPrompt,
		Client:       client,
		Dispatcher:   tools.NewDispatcher(in.ProjectRoot, Tools),
		MaxTurns:     runloop.DefaultMaxTurns,
		Policy:       extract.FallbackRawText,
		Fallback:     FromRawText,
		DetectLoops:  true,
		Callbacks:    cb,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
