package runloop

import (
	"fmt"
	"sync"

	"github.com/jgardner/helmsman/tools"
)

// Event is a human-readable progress line for one tool invocation. Events
// are constructed fresh per invocation, handed to the caller's callback, and
// not retained.
type Event struct {
	Message  string `json:"message"`
	ToolName string `json:"tool_name,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

// Describe maps a tool invocation to a present-tense progress line. It is
// pure and is called immediately before the tool executes, so the consumer
// observes "about to do X" rather than "did X". Unknown tool names fall back
// to a generic description.
func Describe(name tools.Name, input map[string]any) Event {
	ev := Event{ToolName: string(name)}
	switch name {
	case tools.ReadFile:
		path, _ := tools.StringArg(input, "path")
		ev.Message = fmt.Sprintf("Reading %s...", path)
		ev.FilePath = path
	case tools.ListFiles:
		path, _ := tools.StringArg(input, "path")
		if path == "" {
			path = "."
		}
		ev.Message = fmt.Sprintf("Listing files in %s...", path)
		ev.FilePath = path
	case tools.PatternSearch:
		pattern, _ := tools.StringArg(input, "pattern")
		ev.Message = fmt.Sprintf("Searching for %q...", pattern)
	case tools.GitDiff:
		path, _ := tools.StringArg(input, "path")
		if path == "" {
			ev.Message = "Inspecting working-tree changes..."
		} else {
			ev.Message = fmt.Sprintf("Inspecting changes to %s...", path)
			ev.FilePath = path
		}
	default:
		ev.Message = fmt.Sprintf("Using %s...", name)
	}
	return ev
}

// ProgressBuffer decouples a slow progress consumer from the run: the run
// pushes events through Callback without blocking, and the consumer drains
// Events at its own pace. When the buffer is full, events are dropped rather
// than stalling tool execution.
type ProgressBuffer struct {
	ch     chan Event
	closed bool
	mu     sync.Mutex
}

// NewProgressBuffer creates a buffer holding up to size events.
func NewProgressBuffer(size int) *ProgressBuffer {
	if size <= 0 {
		size = 64
	}
	return &ProgressBuffer{ch: make(chan Event, size)}
}

// Callback returns the function to wire into Callbacks.OnProgress.
func (b *ProgressBuffer) Callback() func(Event) {
	return func(ev Event) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.closed {
			return
		}
		select {
		case b.ch <- ev:
		default:
			// Buffer full; drop rather than stall the run.
		}
	}
}

// Events returns the read-only event channel.
func (b *ProgressBuffer) Events() <-chan Event {
	return b.ch
}

// Close closes the event channel. Safe to call multiple times.
func (b *ProgressBuffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.closed {
		b.closed = true
		close(b.ch)
	}
}
