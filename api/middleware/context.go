package middleware

import (
	"context"

	"github.com/angelmondragon/storefront-backend/pkg/session"
)

type contextKey string

const ctxSession contextKey = "session"

// SessionFromContext returns the request session installed by Session, or nil.
func SessionFromContext(ctx context.Context) *session.Session {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxSession).(*session.Session); ok {
		return v
	}
	return nil
}

// WithSession injects the request session into the context.
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSession, sess)
}

// requestTrace is shared by the outer middlewares and filled in as the
// request moves inward, so panics recovered at the edge still carry the
// visitor session.
type requestTrace struct {
	requestID string
	session   *session.Session
}

const ctxTrace contextKey = "trace"

func withTrace(ctx context.Context, trace *requestTrace) context.Context {
	return context.WithValue(ctx, ctxTrace, trace)
}

func traceFromContext(ctx context.Context) *requestTrace {
	if ctx == nil {
		return nil
	}
	trace, _ := ctx.Value(ctxTrace).(*requestTrace)
	return trace
}

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	if trace := traceFromContext(ctx); trace != nil {
		return trace.requestID
	}
	return ""
}
