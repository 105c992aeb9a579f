package llm

import (
	"context"
	"fmt"
	"sync"
	"time"

	llmclient "codescribe/internal/llm/client"
)

// limiter hands out request slots at a fixed interval with up to burst
// slots banked. Callers reserve a slot up front and sleep until it is due.
type limiter struct {
	interval time.Duration
	burst    float64
	now      func() time.Time

	mu     sync.Mutex
	tokens float64
	last   time.Time
}

func newLimiter(rps float64, burst int) *limiter {
	if burst <= 0 {
		burst = 1
	}
	interval := time.Duration(float64(time.Second) / rps)
	if interval <= 0 {
		interval = time.Nanosecond
	}
	return &limiter{
		interval: interval,
		burst:    float64(burst),
		now:      time.Now,
		tokens:   float64(burst),
	}
}

// reserve takes one slot and returns how long to wait before using it.
// tokens goes negative while reservations are queued.
func (l *limiter) reserve() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if !l.last.IsZero() {
		l.tokens += float64(now.Sub(l.last)) / float64(l.interval)
		if l.tokens > l.burst {
			l.tokens = l.burst
		}
	}
	l.last = now
	l.tokens--
	if l.tokens >= 0 {
		return 0
	}
	return time.Duration(-l.tokens * float64(l.interval))
}

func (l *limiter) release() {
	l.mu.Lock()
	l.tokens++
	l.mu.Unlock()
}

// Wait blocks until the caller's slot is due. A canceled wait gives the
// slot back.
func (l *limiter) Wait(ctx context.Context) error {
	delay := l.reserve()
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		l.release()
		return fmt.Errorf("rate limit wait (%s): %w", UnitFrom(ctx), ctx.Err())
	}
}

// RateLimit throttles Complete calls to rps with the given burst.
// rps <= 0 disables it.
func RateLimit(rps float64, burst int) Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		if rps <= 0 {
			return next
		}
		return &rateLimited{passthrough: passthrough{next}, lim: newLimiter(rps, burst)}
	}
}

type rateLimited struct {
	passthrough
	lim *limiter
}

func (c *rateLimited) Complete(ctx context.Context, p llmclient.Prompt) (string, error) {
	if err := c.lim.Wait(ctx); err != nil {
		return "", err
	}
	return c.next.Complete(ctx, p)
}
