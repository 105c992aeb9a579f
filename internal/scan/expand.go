// Package scan turns command-line inputs into the list of files to process.
package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// ListOptions filters directory listings. Include and Exclude are doublestar
// patterns matched against the base name, or against the slash path when
// the pattern contains a '/'. An empty Include accepts everything.
type ListOptions struct {
	Include []string
	Exclude []string
	// Accept is an optional final predicate on the file path.
	Accept func(path string) bool
	// GitIgnore skips entries matched by the listed directory's .gitignore.
	GitIgnore bool
}

// Validate reports the first malformed pattern.
func (o ListOptions) Validate() error {
	for _, p := range append(append([]string{}, o.Include...), o.Exclude...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid glob pattern %q", p)
		}
	}
	return nil
}

// Match reports whether path passes the include/exclude patterns and Accept.
func (o ListOptions) Match(path string) bool {
	if len(o.Include) > 0 && !matchAny(o.Include, path) {
		return false
	}
	if matchAny(o.Exclude, path) {
		return false
	}
	if o.Accept != nil && !o.Accept(path) {
		return false
	}
	return true
}

func matchAny(patterns []string, path string) bool {
	slash := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, p := range patterns {
		target := base
		if strings.Contains(p, "/") {
			target = slash
		}
		if ok, err := doublestar.Match(p, target); err == nil && ok {
			return true
		}
	}
	return false
}

// ListFiles returns the immediate regular files of dir that match opts,
// sorted by name. Subdirectories are not descended into.
func ListFiles(dir string, opts ListOptions) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var ignore gitignore.GitIgnore
	if opts.GitIgnore {
		ignore = loadGitIgnore(dir)
	}
	var out []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if ignore != nil {
			if m := ignore.Relative(e.Name(), false); m != nil && m.Ignore() {
				continue
			}
		}
		p := filepath.Join(dir, e.Name())
		if opts.Match(p) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out, nil
}

// loadGitIgnore returns nil when dir has no readable .gitignore.
func loadGitIgnore(dir string) gitignore.GitIgnore {
	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()
	return gitignore.New(f, dir, nil)
}

// Expand resolves CLI inputs into a list of files. Files are kept as given;
// directories contribute their filtered immediate files. Duplicates are
// dropped, first occurrence wins.
func Expand(inputs []string, opts ListOptions) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		key := filepath.Clean(p)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	for _, in := range inputs {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		fi, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in, err)
		}
		if !fi.IsDir() {
			add(in)
			continue
		}
		files, err := ListFiles(in, opts)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", in, err)
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}
