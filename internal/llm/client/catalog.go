package llmclient

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Config selects and parameterizes a provider. APIKey is passed as-is;
// resolving it from the environment is the caller's job.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	TokenCap int
}

type ClientFactory func(ctx context.Context, cfg Config) (LLMClient, error)

type providerEntry struct {
	defaultModel string
	factory      ClientFactory
}

var providers = map[string]providerEntry{
	"openai": {
		defaultModel: "gpt-4o-mini",
		factory: func(_ context.Context, cfg Config) (LLMClient, error) {
			return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.TokenCap)
		},
	},
	"groq": {
		defaultModel: "llama-3.3-70b-versatile",
		factory: func(_ context.Context, cfg Config) (LLMClient, error) {
			base := cfg.BaseURL
			if base == "" {
				base = groqBaseURL
			}
			return NewOpenAIClient(cfg.APIKey, cfg.Model, base, cfg.TokenCap)
		},
	},
	"gemini": {
		defaultModel: "gemini-2.5-flash",
		factory: func(ctx context.Context, cfg Config) (LLMClient, error) {
			return NewGeminiClient(ctx, cfg.APIKey, cfg.Model, cfg.TokenCap)
		},
	},
	"fake": {
		defaultModel: "fake",
		factory: func(_ context.Context, cfg Config) (LLMClient, error) {
			return NewFakeClient(cfg.TokenCap), nil
		},
	},
}

// Providers lists the registered provider names.
func Providers() []string {
	out := make([]string, 0, len(providers))
	for name := range providers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// DefaultModel returns the model used when Config.Model is empty.
func DefaultModel(provider string) string {
	return providers[normalizeProvider(provider)].defaultModel
}

// New builds the client for cfg.Provider.
func New(ctx context.Context, cfg Config) (LLMClient, error) {
	name := normalizeProvider(cfg.Provider)
	p, ok := providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider %q (known: %s)", cfg.Provider, strings.Join(Providers(), ", "))
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = p.defaultModel
	}
	return p.factory(ctx, cfg)
}

func normalizeProvider(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return "openai"
	}
	return p
}
