// Package segment splits source files into function-level snippets.
//
// Python sources are parsed with tree-sitter and every function definition
// becomes a FunctionRecord. TypeScript sources are not parsed: the file's
// lines are returned as a single opaque unit.
package segment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects how a file is segmented.
type Mode int

const (
	// ModeAST parses the content and extracts one record per function.
	ModeAST Mode = iota + 1
	// ModeLines performs no structural analysis and returns the file's lines.
	ModeLines
)

func (m Mode) String() string {
	switch m {
	case ModeAST:
		return "ast"
	case ModeLines:
		return "lines"
	default:
		return "unknown"
	}
}

// FunctionRecord is a single extracted function.
// StartLine and EndLine are 0-indexed and inclusive.
type FunctionRecord struct {
	Name      string `json:"name"`
	Code      string `json:"code"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// Segments is the outcome of segmenting one file.
type Segments struct {
	Path      string           `json:"path,omitempty"`
	Mode      Mode             `json:"-"`
	ModeName  string           `json:"mode"`
	Functions []FunctionRecord `json:"functions"`
	Lines     []string         `json:"lines,omitempty"`
}

// Whole returns the text handed downstream in line mode.
func (s Segments) Whole() string {
	return strings.Join(s.Lines, "\n")
}

var modeByExt = map[string]Mode{
	".py":  ModeAST,
	".ts":  ModeLines,
	".tsx": ModeLines,
}

// ModeForPath maps a file extension to its segmentation mode.
func ModeForPath(path string) (Mode, error) {
	ext := filepath.Ext(path)
	if m, ok := modeByExt[ext]; ok {
		return m, nil
	}
	return 0, &UnsupportedFileTypeError{Ext: ext}
}

// Supported reports whether path has an extension the segmenter accepts.
func Supported(path string) bool {
	_, err := ModeForPath(path)
	return err == nil
}

// Segment splits content according to mode.
func Segment(ctx context.Context, content string, mode Mode, opts ...Option) (Segments, error) {
	o := applyOptions(opts)
	switch mode {
	case ModeAST:
		fns, err := pythonFunctions(ctx, content, o.boundary)
		if err != nil {
			return Segments{}, err
		}
		return Segments{Mode: mode, ModeName: mode.String(), Functions: fns}, nil
	case ModeLines:
		return Segments{
			Mode:      mode,
			ModeName:  mode.String(),
			Functions: []FunctionRecord{},
			Lines:     splitLines(content),
		}, nil
	default:
		return Segments{}, fmt.Errorf("segment: unknown mode %d", int(mode))
	}
}

// SegmentFile reads path and segments it by extension.
// The extension is checked before the file is read.
func SegmentFile(ctx context.Context, path string, opts ...Option) (Segments, error) {
	mode, err := ModeForPath(path)
	if err != nil {
		return Segments{}, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Segments{}, fmt.Errorf("read %s: %w", path, err)
	}
	seg, err := Segment(ctx, string(b), mode, opts...)
	if err != nil {
		return Segments{}, fmt.Errorf("segment %s: %w", path, err)
	}
	seg.Path = path
	return seg, nil
}

// splitLines mirrors Python's str.splitlines for \n, \r\n and \r.
// A trailing line break does not produce a final empty line.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return []string{}
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
