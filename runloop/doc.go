// Package runloop implements the bounded, tool-augmented conversational loop
// that drives a model to a structured result.
//
// A run alternates model calls with sequential dispatch of the read-only
// tools the model requests, streaming a human-readable progress line before
// each tool executes. A turn budget caps the loop; when two or fewer turns
// remain a wind-down directive is appended to the next user message steering
// the model toward its final answer. A terminal turn (no tool use) ends the
// loop: the response text is searched for an embedded JSON object, validated
// against the call site's schema, and delivered through the OnComplete
// callback. Every failure path resolves through exactly one OnError call;
// Run never panics out and never returns a value the caller must unwrap.
//
// # Quick Start
//
//	dispatcher := tools.NewDispatcher(projectRoot, tools.NewSet(tools.ReadFile, tools.ListFiles))
//	runloop.Run(ctx, runloop.Config[myResult]{
//	    SystemPrompt: systemPrompt,
//	    BuildPrompt:  func() string { return taskPrompt },
//	    Client:       client,
//	    Dispatcher:   dispatcher,
//	    MaxTurns:     20,
//	    Callbacks: runloop.Callbacks[myResult]{
//	        OnProgress: func(ev runloop.Event) { fmt.Println(ev.Message) },
//	        OnComplete: func(r myResult) { ... },
//	        OnError:    func(msg string) { ... },
//	    },
//	})
package runloop
