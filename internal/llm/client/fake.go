package llmclient

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeClient answers deterministically without network access. It is used
// by tests and by `--provider fake` for dry wiring checks.
type FakeClient struct {
	tokenCap int

	mu      sync.Mutex
	prompts []Prompt
	// Reply, when set, overrides the default echo reply.
	Reply func(p Prompt) (string, error)
}

func NewFakeClient(tokenCap int) *FakeClient {
	if tokenCap <= 0 {
		tokenCap = 4096
	}
	return &FakeClient{tokenCap: tokenCap}
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }
func (f *FakeClient) CountTokens(text string) int {
	if len(text) == 0 {
		return 0
	}
	return len(text) / 4
}
func (f *FakeClient) TokenCapacity() int { return f.tokenCap }

func (f *FakeClient) Complete(ctx context.Context, p Prompt) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, p)
	reply := f.Reply
	f.mu.Unlock()
	if reply != nil {
		return reply(p)
	}
	first := p.User
	if i := strings.IndexByte(first, '\n'); i >= 0 {
		first = first[:i]
	}
	return fmt.Sprintf("# fake reply (%d lines)\n# %s\n", strings.Count(p.User, "\n")+1, first), nil
}

// Prompts returns a copy of every prompt received so far.
func (f *FakeClient) Prompts() []Prompt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Prompt(nil), f.prompts...)
}
