package main

import (
	"context"
	"fmt"
	"log"

	"codescribe/internal/config"
	"codescribe/internal/job"
	"codescribe/internal/llm"
	llmclient "codescribe/internal/llm/client"
	"codescribe/internal/output"
	"codescribe/internal/scan"
)

// app holds everything a run needs, built once from the resolved config.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	client llmclient.LLMClient
	runner *job.Runner
}

func newApp(ctx context.Context, cfg *config.Config, dryRun bool) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lg := newLogger(cfg)
	a := &app{cfg: cfg, logger: lg}
	a.runner = &job.Runner{
		System:   cfg.System,
		Template: job.Template{Instruction: cfg.Instruction},
		Boundary: cfg.SegmentBoundary(),
		Logger:   lg,
		Verbose:  cfg.Verbose,
		DryRun:   dryRun,
	}
	if dryRun {
		return a, nil
	}

	inner, err := llmclient.New(ctx, cfg.LLM())
	if err != nil {
		return nil, fmt.Errorf("llm client: %w", err)
	}
	a.client = llm.Wrap(inner,
		llm.WithLogging(lg),
		llm.WithCache(cfg.CacheSize),
		llm.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	)
	sink, err := output.NewSink(cfg.OutputSink())
	if err != nil {
		_ = a.client.Close()
		return nil, fmt.Errorf("output: %w", err)
	}
	a.runner.Client = a.client
	a.runner.Sink = sink
	return a, nil
}

func (a *app) Close() error {
	if a.client == nil {
		return nil
	}
	return a.client.Close()
}

// inputs prefers command-line arguments over the configured inputs.
func (a *app) inputs(args []string) ([]string, error) {
	in := args
	if len(in) == 0 {
		in = a.cfg.Inputs
	}
	if len(in) == 0 {
		return nil, fmt.Errorf("no inputs given")
	}
	return in, nil
}

func (a *app) files(inputs []string) ([]string, error) {
	return scan.Expand(inputs, a.cfg.ListOptions())
}

func (a *app) run(ctx context.Context, files []string) error {
	rep, err := a.runner.Run(ctx, files)
	a.logger.Printf("processed %d files, %d units", rep.Files, rep.Units)
	return err
}
