package llm

import "context"

type ctxKeyUnit struct{}

// WithUnit labels requests made with ctx, e.g. "jobs.py:load".
func WithUnit(ctx context.Context, unit string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKeyUnit{}, unit)
}

// UnitFrom returns the label stored in the context.
func UnitFrom(ctx context.Context) string {
	if v := ctx.Value(ctxKeyUnit{}); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "unknown"
}
