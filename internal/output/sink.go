// Package output stores model responses next to names mirroring the inputs.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink receives the responses for one input file at a time. name is always
// the input's base name.
type Sink interface {
	// Clear creates or truncates the output for name.
	Clear(ctx context.Context, name string) error
	// Append adds content to the output for name.
	Append(ctx context.Context, name, content string) error
	// Location describes where name ends up, for logs.
	Location(name string) string
}

// DirSink writes outputs under a target directory, created if absent.
type DirSink struct {
	dir string
}

func NewDirSink(dir string) (*DirSink, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	return &DirSink{dir: dir}, nil
}

func (s *DirSink) Location(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

func (s *DirSink) Clear(_ context.Context, name string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.OpenFile(s.Location(name), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

func (s *DirSink) Append(_ context.Context, name, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.OpenFile(s.Location(name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(content); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Config selects the sink: S3 when a bucket is set, else Dir.
type Config struct {
	Dir string
	S3  S3Config
}

func NewSink(cfg Config) (Sink, error) {
	if strings.TrimSpace(cfg.S3.Bucket) != "" {
		return NewS3Sink(cfg.S3)
	}
	return NewDirSink(cfg.Dir)
}
