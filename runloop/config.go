package runloop

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jgardner/helmsman/extract"
	"github.com/jgardner/helmsman/llm"
	"github.com/jgardner/helmsman/tools"
)

// Callbacks is the bundle through which a run delivers every observable
// outcome. OnComplete and OnError are mutually exclusive and each fires at
// most once; OnProgress fires zero or more times; OnPhaseUpdate is optional
// and only wired by call sites that surface a coarse progress indicator.
type Callbacks[T any] struct {
	OnProgress    func(Event)
	OnPhaseUpdate func(phase string, percent int)
	OnComplete    func(T)
	OnError       func(message string)
}

// Milestone maps a cumulative tool-call count to a phase update.
type Milestone struct {
	AfterToolCalls int
	Phase          string
	Percent        int
}

// Config is the immutable per-run configuration. Construct one per
// invocation; Run never mutates it.
type Config[T any] struct {
	// SystemPrompt is sent with every model call.
	SystemPrompt string
	// BuildPrompt produces the initial user message from task inputs.
	BuildPrompt func() string

	// Client is the injected model dependency.
	Client llm.Completer
	// Dispatcher executes tool invocations; its allowed set is also what
	// gets declared to the model.
	Dispatcher *tools.Dispatcher

	// Model overrides the client's default model when non-empty.
	Model string
	// MaxTurns caps model round-trips. Zero means DefaultMaxTurns.
	MaxTurns int
	// MaxTokens caps output tokens per model call. Zero defers to the
	// model catalog.
	MaxTokens int

	// Policy names what happens when the terminal response contains no
	// parseable JSON. Fallback must be set when Policy is FallbackRawText.
	Policy   extract.Policy
	Fallback func(rawText string) T

	// Milestones drive OnPhaseUpdate at fixed tool-call counts.
	Milestones []Milestone

	// DetectLoops injects a steering line when recent tool calls repeat.
	DetectLoops bool
	// LoopWindow is the number of recent tool calls inspected. Zero means
	// DefaultLoopWindow.
	LoopWindow int

	Logger *zap.Logger

	Callbacks Callbacks[T]
}

const (
	// DefaultMaxTurns bounds a run when the config leaves MaxTurns zero.
	DefaultMaxTurns = 20
	// DefaultLoopWindow is the tool-call window inspected for repetition.
	DefaultLoopWindow = 10
)

// Defaults holds tunable run settings loaded from a YAML file.
type Defaults struct {
	Model      string         `yaml:"model"`
	MaxTurns   int            `yaml:"max_turns"`
	MaxTokens  int            `yaml:"max_tokens"`
	LoopWindow int            `yaml:"loop_window"`
	ToolLimits map[string]int `yaml:"tool_output_limits,omitempty"`
}

// DefaultDefaults returns the built-in run settings.
func DefaultDefaults() Defaults {
	return Defaults{
		Model:      "claude-sonnet-4-5",
		MaxTurns:   DefaultMaxTurns,
		MaxTokens:  8192,
		LoopWindow: DefaultLoopWindow,
	}
}

// LoadDefaults reads run settings from a YAML file, filling unset fields
// from the built-ins.
func LoadDefaults(path string) (Defaults, error) {
	d := DefaultDefaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("load defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return DefaultDefaults(), fmt.Errorf("parse defaults %s: %w", path, err)
	}
	if d.MaxTurns <= 0 {
		d.MaxTurns = DefaultMaxTurns
	}
	if d.LoopWindow <= 0 {
		d.LoopWindow = DefaultLoopWindow
	}
	return d, nil
}
