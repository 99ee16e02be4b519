package logx

import (
	"context"

	"pkt.systems/pslog"
)

type contextKey int

const jobKey contextKey = iota

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithJob annotates the logger with the job label if present.
func WithJob(ctx context.Context, label string) pslog.Logger {
	log := pslog.Ctx(ctx)
	if label != "" {
		if current, ok := ctx.Value(jobKey).(string); ok && current == label {
			return log
		}
		log = log.With("job", label)
	}
	return log
}

// ContextWithJob stores the job marker on the context for log de-duplication.
func ContextWithJob(ctx context.Context, label string) context.Context {
	if ctx == nil || label == "" {
		return ctx
	}
	return context.WithValue(ctx, jobKey, label)
}

// ContextWithJobLogger attaches the logger and job marker to the context.
func ContextWithJobLogger(ctx context.Context, log pslog.Logger, label string) context.Context {
	ctx = pslog.ContextWithLogger(ctx, log)
	return ContextWithJob(ctx, label)
}
