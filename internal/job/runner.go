// Package job drives a run: segment each input, ask the model about every
// unit, and write the replies to the output sink. Files and requests are
// processed strictly one at a time.
package job

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"codescribe/internal/llm"
	llmclient "codescribe/internal/llm/client"
	"codescribe/internal/output"
	"codescribe/internal/segment"
)

// WholeFileUnit names the single request made for line-mode files.
const WholeFileUnit = "<file>"

// Suggestion is one model reply.
type Suggestion struct {
	Source string `json:"source"`
	Unit   string `json:"unit"`
	Text   string `json:"text"`
}

// Report summarizes a run.
type Report struct {
	Files       int          `json:"files"`
	Units       int          `json:"units"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

type Runner struct {
	Client   llmclient.LLMClient
	Sink     output.Sink
	System   string
	Template Template
	Boundary segment.Boundary
	Logger   *log.Logger
	// Verbose also logs every extracted snippet.
	Verbose bool
	// DryRun segments and logs but neither clears outputs nor calls the model.
	DryRun bool
}

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

// Run processes files in order and stops at the first error.
func (r *Runner) Run(ctx context.Context, files []string) (Report, error) {
	if !r.DryRun && (r.Client == nil || r.Sink == nil) {
		return Report{}, fmt.Errorf("job: client and sink are required")
	}
	var rep Report
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		out, err := r.RunFile(ctx, f)
		rep.Suggestions = append(rep.Suggestions, out...)
		rep.Units += len(out)
		if err != nil {
			return rep, err
		}
		rep.Files++
	}
	return rep, nil
}

// RunFile handles a single input file.
func (r *Runner) RunFile(ctx context.Context, path string) ([]Suggestion, error) {
	lg := r.logger()
	seg, err := segment.SegmentFile(ctx, path, segment.WithBoundary(r.Boundary))
	if err != nil {
		return nil, err
	}
	name := filepath.Base(path)

	switch seg.Mode {
	case segment.ModeAST:
		lg.Printf("Functions found in %s: %d", path, len(seg.Functions))
	default:
		lg.Printf("Whole file %s: %d lines", path, len(seg.Lines))
	}
	if r.DryRun {
		for _, fn := range seg.Functions {
			r.logUnit(fn)
		}
		return nil, nil
	}

	if err := r.Sink.Clear(ctx, name); err != nil {
		return nil, fmt.Errorf("clear %s: %w", r.Sink.Location(name), err)
	}

	var out []Suggestion
	ask := func(unit, code string) error {
		uctx := llm.WithUnit(ctx, name+":"+unit)
		text, err := r.Client.Complete(uctx, llmclient.Prompt{
			System: r.System,
			User:   r.Template.Render(code),
		})
		if err != nil {
			return fmt.Errorf("%s (%s): %w", path, unit, err)
		}
		if err := r.Sink.Append(ctx, name, text); err != nil {
			return fmt.Errorf("append %s: %w", r.Sink.Location(name), err)
		}
		out = append(out, Suggestion{Source: path, Unit: unit, Text: text})
		lg.Println(strings.Repeat("=", 40))
		return nil
	}

	if seg.Mode == segment.ModeAST {
		for _, fn := range seg.Functions {
			r.logUnit(fn)
			if err := ask(fn.Name, fn.Code); err != nil {
				return out, err
			}
		}
	} else if err := ask(WholeFileUnit, seg.Whole()); err != nil {
		return out, err
	}
	lg.Printf("wrote %d replies -> %s", len(out), r.Sink.Location(name))
	return out, nil
}

func (r *Runner) logUnit(fn segment.FunctionRecord) {
	lg := r.logger()
	lg.Printf("Function: %s (lines %d-%d)", fn.Name, fn.StartLine+1, fn.EndLine+1)
	if r.Verbose {
		lg.Printf("Code:\n%s", fn.Code)
	}
}
