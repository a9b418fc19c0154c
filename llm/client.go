package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Completer is the single dependency the agent loop has on a model provider.
// Implementations must be safe for concurrent use: independent runs share one
// client instance.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Response, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, req Request) (*Response, error)

func (f CompleterFunc) Complete(ctx context.Context, req Request) (*Response, error) {
	return f(ctx, req)
}

// Middleware wraps a completion call. It receives the request and a next
// function that calls the downstream handler.
type Middleware func(ctx context.Context, req Request, next func(context.Context, Request) (*Response, error)) (*Response, error)

// Chain applies middleware around base. The first middleware listed runs
// first.
func Chain(base Completer, mw ...Middleware) Completer {
	handler := func(ctx context.Context, r Request) (*Response, error) {
		return base.Complete(ctx, r)
	}
	for i := len(mw) - 1; i >= 0; i-- {
		m := mw[i]
		next := handler
		handler = func(ctx context.Context, r Request) (*Response, error) {
			return m(ctx, r, next)
		}
	}
	return CompleterFunc(handler)
}

// WithLogging returns middleware that logs each completion with its model,
// duration, stop reason, and token usage.
func WithLogging(log *zap.Logger) Middleware {
	return func(ctx context.Context, req Request, next func(context.Context, Request) (*Response, error)) (*Response, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		fields := []zap.Field{
			zap.String("model", req.Model),
			zap.Int("messages", len(req.Messages)),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			fields = append(fields, zap.Bool("temporary", IsTemporary(err)), zap.Error(err))
			log.Warn("completion failed", fields...)
			return nil, err
		}
		fields = append(fields,
			zap.String("stop_reason", string(resp.StopReason)),
			zap.Int("input_tokens", resp.Usage.InputTokens),
			zap.Int("output_tokens", resp.Usage.OutputTokens),
		)
		log.Debug("completion", fields...)
		return resp, nil
	}
}
