package log

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// ContextWithRequestID stores the Lambda request ID in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the Lambda request ID from context if present.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

// WithLogger stores l in ctx so downstream packages pick up its fields.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return l.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, falling back to the base logger
// enriched with the request ID.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		b := Base()
		return &b
	}
	l := zerolog.Ctx(ctx)
	if l.GetLevel() != zerolog.Disabled {
		return l
	}
	b := Base()
	if rid := RequestIDFromContext(ctx); rid != "" {
		b = b.With().Str(FieldRequestID, rid).Logger()
	}
	return &b
}

// WithComponentFromContext returns the context logger annotated with component.
func WithComponentFromContext(ctx context.Context, component string) zerolog.Logger {
	l := FromContext(ctx)
	return l.With().Str(FieldComponent, component).Logger()
}
