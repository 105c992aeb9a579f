package llm

import (
	"context"
	"log"
	"time"

	llmclient "codescribe/internal/llm/client"
)

// WithLogging logs request size, latency and errors. Provide a custom
// logger or nil to use log.Default().
func WithLogging(logger *log.Logger) Middleware {
	if logger == nil {
		logger = log.Default()
	}
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		return &logging{passthrough: passthrough{next}, log: logger}
	}
}

type logging struct {
	passthrough
	log *log.Logger
}

func (l *logging) Complete(ctx context.Context, p llmclient.Prompt) (string, error) {
	unit := UnitFrom(ctx)
	l.log.Printf("LLM request (%s) -> %s: %d bytes, ~%d tokens", unit, l.next.Name(), len(p.System)+len(p.User), l.next.CountTokens(p.User))
	start := time.Now()
	out, err := l.next.Complete(ctx, p)
	if err != nil {
		l.log.Printf("LLM error (%s): %v", unit, err)
		return out, err
	}
	l.log.Printf("LLM response (%s): %d bytes in %s", unit, len(out), time.Since(start).Round(time.Millisecond))
	if rl, ok := rateLimitSource(l.next); ok {
		if h, ok := rl.LastRateLimitHeaders(); ok && h.LimitRequests > 0 {
			l.log.Printf("LLM quota (%s): %d/%d requests left", unit, h.RemainingRequests, h.LimitRequests)
		}
	}
	return out, nil
}
