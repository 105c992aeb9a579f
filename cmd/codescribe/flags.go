package main

import (
	"github.com/spf13/cobra"

	"codescribe/internal/config"
)

// jobFlags are shared by run and watch.
type jobFlags struct {
	provider        string
	model           string
	baseURL         string
	out             string
	instruction     string
	system          string
	include         []string
	exclude         []string
	boundary        string
	skipUnsupported bool
	gitIgnore       bool
	dryRun          bool
	rps             float64
	burst           int
	cacheSize       int
}

func (f *jobFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.provider, "provider", "", "text-generation provider (openai, gemini, groq, fake)")
	fs.StringVar(&f.model, "model", "", "model id (provider default when empty)")
	fs.StringVar(&f.baseURL, "base-url", "", "API base URL for OpenAI-compatible providers")
	fs.StringVarP(&f.out, "out", "o", "", "output directory (default "+config.DefaultOutDir+")")
	fs.StringVarP(&f.instruction, "instruction", "i", "", "instruction placed before each code unit")
	fs.StringVar(&f.system, "system", "", "system message sent with every request")
	fs.StringSliceVar(&f.include, "include", nil, "glob of directory entries to include (repeatable)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "glob of directory entries to exclude (repeatable)")
	fs.StringVar(&f.boundary, "boundary", "", "function end detection: node or descendants")
	fs.BoolVar(&f.skipUnsupported, "skip-unsupported", false, "skip directory entries with unsupported extensions")
	fs.BoolVar(&f.gitIgnore, "gitignore", false, "skip directory entries matched by that directory's .gitignore")
	fs.BoolVar(&f.dryRun, "dry-run", false, "segment and log without calling the model or writing output")
	fs.Float64Var(&f.rps, "rps", 0, "max requests per second (0 disables)")
	fs.IntVar(&f.burst, "burst", 0, "rate limiter burst size")
	fs.IntVar(&f.cacheSize, "cache-size", 0, "reply cache entries (0 disables when set explicitly)")
}

// apply overrides cfg with every flag the user set explicitly.
func (f *jobFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	fs := cmd.Flags()
	if fs.Changed("provider") {
		cfg.Provider = f.provider
	}
	if fs.Changed("model") {
		cfg.Model = f.model
	}
	if fs.Changed("base-url") {
		cfg.BaseURL = f.baseURL
	}
	if fs.Changed("out") {
		cfg.Output.Dir = f.out
	}
	if fs.Changed("instruction") {
		cfg.Instruction = f.instruction
	}
	if fs.Changed("system") {
		cfg.System = f.system
	}
	if fs.Changed("include") {
		cfg.Include = f.include
	}
	if fs.Changed("exclude") {
		cfg.Exclude = f.exclude
	}
	if fs.Changed("boundary") {
		cfg.Boundary = f.boundary
	}
	if fs.Changed("skip-unsupported") {
		cfg.SkipUnsupported = f.skipUnsupported
	}
	if fs.Changed("gitignore") {
		cfg.GitIgnore = f.gitIgnore
	}
	if fs.Changed("rps") {
		cfg.RateLimit.RPS = f.rps
	}
	if fs.Changed("burst") {
		cfg.RateLimit.Burst = f.burst
	}
	if fs.Changed("cache-size") {
		cfg.CacheSize = f.cacheSize
	}
}
