package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"

	llmclient "codescribe/internal/llm/client"
)

// WithCache memoizes replies by (client name, system, user). Identical
// snippets seen again in the same process are answered without a request.
// size <= 0 disables the cache.
func WithCache(size int) Middleware {
	return func(next llmclient.LLMClient) llmclient.LLMClient {
		if size <= 0 {
			return next
		}
		c, err := lru.New[string, string](size)
		if err != nil {
			return next
		}
		return &cached{passthrough: passthrough{next}, cache: c}
	}
}

type cached struct {
	passthrough
	cache *lru.Cache[string, string]
}

func (c *cached) Complete(ctx context.Context, p llmclient.Prompt) (string, error) {
	key := c.key(p)
	if out, ok := c.cache.Get(key); ok {
		return out, nil
	}
	out, err := c.next.Complete(ctx, p)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, out)
	return out, nil
}

func (c *cached) key(p llmclient.Prompt) string {
	h := sha256.New()
	h.Write([]byte(c.next.Name()))
	h.Write([]byte{0})
	h.Write([]byte(p.System))
	h.Write([]byte{0})
	h.Write([]byte(p.User))
	return hex.EncodeToString(h.Sum(nil))
}
