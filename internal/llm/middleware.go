package llm

import (
	llmclient "codescribe/internal/llm/client"
)

// Middleware decorates an LLMClient to inject cross-cutting concerns
// (logging, caching, rate limiting).
type Middleware func(llmclient.LLMClient) llmclient.LLMClient

// Wrap applies middlewares in left-to-right order.
// Example: Wrap(inner, A, B) => A(B(inner))
func Wrap(inner llmclient.LLMClient, mws ...Middleware) llmclient.LLMClient {
	out := inner
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		out = mws[i](out)
	}
	return out
}

// passthrough forwards the non-request methods to next.
type passthrough struct {
	next llmclient.LLMClient
}

func (p passthrough) Name() string                { return p.next.Name() }
func (p passthrough) Close() error                { return p.next.Close() }
func (p passthrough) CountTokens(text string) int { return p.next.CountTokens(text) }
func (p passthrough) TokenCapacity() int          { return p.next.TokenCapacity() }

// Unwrap exposes the decorated client.
func (p passthrough) Unwrap() llmclient.LLMClient { return p.next }

// rateLimitSource walks the middleware chain to the first client that
// reports provider rate-limit headers.
func rateLimitSource(c llmclient.LLMClient) (llmclient.RateLimitHeaderAwareClient, bool) {
	for c != nil {
		if rl, ok := c.(llmclient.RateLimitHeaderAwareClient); ok {
			return rl, true
		}
		u, ok := c.(interface{ Unwrap() llmclient.LLMClient })
		if !ok {
			return nil, false
		}
		c = u.Unwrap()
	}
	return nil, false
}
