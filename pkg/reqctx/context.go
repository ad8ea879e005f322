// Package reqctx carries per-request values (request metadata and the
// authenticated admin's claims) through context.Context.
package reqctx

import (
	"context"
	"log/slog"
	"time"
)

type ctxKey int

const (
	keyRequestMeta ctxKey = iota
	keyClaims
)

// RequestMeta holds per-request metadata set by HTTP middleware.
type RequestMeta struct {
	RequestID   string
	ClientIP    string
	UserAgent   string
	RequestedAt time.Time
}

func WithRequestMeta(ctx context.Context, meta *RequestMeta) context.Context {
	return context.WithValue(ctx, keyRequestMeta, meta)
}

// RequestMetaFromContext returns nil, false if no metadata was attached.
func RequestMetaFromContext(ctx context.Context) (*RequestMeta, bool) {
	meta, ok := ctx.Value(keyRequestMeta).(*RequestMeta)
	return meta, ok && meta != nil
}

// RequestIDFromContext returns "" outside of a request.
func RequestIDFromContext(ctx context.Context) string {
	meta, ok := RequestMetaFromContext(ctx)
	if !ok {
		return ""
	}
	return meta.RequestID
}

// Logger returns the default logger annotated with the request id, if any.
func Logger(ctx context.Context) *slog.Logger {
	if rid := RequestIDFromContext(ctx); rid != "" {
		return slog.Default().With("request_id", rid)
	}
	return slog.Default()
}
