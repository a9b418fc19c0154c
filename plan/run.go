package plan

import (
	"go.uber.org/zap"

	"github.com/jgardner/helmsman/extract"
	"github.com/jgardner/helmsman/llm"
	"github.com/jgardner/helmsman/runloop"
	"github.com/jgardner/helmsman/tools"
)

// Tools is the read-only subset a planning run exposes to the model.
var Tools = tools.NewSet(tools.ReadFile, tools.ListFiles, tools.PatternSearch)

// Milestones drive the coarse UI progress indicator: phase updates fire at
// the first, fifth, and tenth tool call.
var Milestones = []runloop.Milestone{
	{AfterToolCalls: 1, Phase: "exploring", Percent: 25},
	{AfterToolCalls: 5, Phase: "analyzing", Percent: 50},
	{AfterToolCalls: 10, Phase: "drafting", Percent: 75},
}

// Option adjusts a planning run config.
type Option func(*runloop.Config[Plan])

// WithModel overrides the model for the run.
func WithModel(model string) Option {
	return func(cfg *runloop.Config[Plan]) { cfg.Model = model }
}

// WithMaxTurns overrides the turn budget.
func WithMaxTurns(n int) Option {
	return func(cfg *runloop.Config[Plan]) { cfg.MaxTurns = n }
}

// WithLogger sets the run's logger.
func WithLogger(log *zap.Logger) Option {
	return func(cfg *runloop.Config[Plan]) { cfg.Logger = log }
}

// NewRunConfig assembles the run configuration for a planning run. Planning
// fails closed: a terminal response without parseable JSON is a run failure.
func NewRunConfig(in Inputs, client llm.Completer, cb runloop.Callbacks[Plan], opts ...Option) runloop.Config[Plan] {
	cfg := runloop.Config[Plan]{
		SystemPrompt: SystemPrompt(),
		BuildPrompt:  in.BuildPrompt,
		Client:       client,
		Dispatcher:   tools.NewDispatcher(in.ProjectRoot, Tools),
		MaxTurns:     runloop.DefaultMaxTurns,
		Policy:       extract.FailClosed,
		Milestones:   Milestones,
		DetectLoops:  true,
		Callbacks:    cb,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
