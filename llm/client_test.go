package llm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func stubCompleter(text string) Completer {
	return CompleterFunc(func(_ context.Context, _ Request) (*Response, error) {
		return &Response{
			StopReason: StopEndTurn,
			Blocks:     []ContentBlock{TextBlock(text)},
		}, nil
	})
}

func TestChainOrder(t *testing.T) {
	var trace []string
	mark := func(name string) Middleware {
		return func(ctx context.Context, req Request, next func(context.Context, Request) (*Response, error)) (*Response, error) {
			trace = append(trace, name+" before")
			resp, err := next(ctx, req)
			trace = append(trace, name+" after")
			return resp, err
		}
	}

	client := Chain(stubCompleter("ok"), mark("outer"), mark("inner"))
	resp, err := client.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "ok" {
		t.Errorf("unexpected text: %q", resp.Text())
	}

	want := []string{"outer before", "inner before", "inner after", "outer after"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v", trace)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("trace[%d] = %q, want %q", i, trace[i], want[i])
		}
	}
}

func TestChainNoMiddleware(t *testing.T) {
	client := Chain(stubCompleter("passthrough"))
	resp, err := client.Complete(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "passthrough" {
		t.Errorf("unexpected text: %q", resp.Text())
	}
}

func TestWithLoggingPassesThrough(t *testing.T) {
	client := Chain(stubCompleter("logged"), WithLogging(zap.NewNop()))
	resp, err := client.Complete(context.Background(), Request{Model: "claude-sonnet-4-5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "logged" {
		t.Errorf("unexpected text: %q", resp.Text())
	}
}

func TestWithLoggingPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	failing := CompleterFunc(func(_ context.Context, _ Request) (*Response, error) {
		return nil, boom
	})

	_, err := Chain(failing, WithLogging(zap.NewNop())).Complete(context.Background(), Request{})
	if !errors.Is(err, boom) {
		t.Errorf("expected original error, got %v", err)
	}
}
