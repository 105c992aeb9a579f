package segment

import (
	"fmt"
	"strings"
)

// Boundary decides where an extracted function ends.
type Boundary int

const (
	// BoundaryNode ends a function where the parser ends its definition node.
	BoundaryNode Boundary = iota
	// BoundaryDescendants ends a function on the greatest start row of any
	// descendant. Trailing multi-line expressions are cut at their first line.
	BoundaryDescendants
)

func (b Boundary) String() string {
	if b == BoundaryDescendants {
		return "descendants"
	}
	return "node"
}

// ParseBoundary accepts "node" or "descendants"; empty means node.
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "node":
		return BoundaryNode, nil
	case "descendants":
		return BoundaryDescendants, nil
	default:
		return 0, fmt.Errorf("unknown boundary %q (want node|descendants)", s)
	}
}

type options struct {
	boundary Boundary
}

type Option func(*options)

// WithBoundary overrides the end-of-function strategy.
func WithBoundary(b Boundary) Option {
	return func(o *options) { o.boundary = b }
}

func applyOptions(opts []Option) options {
	o := options{boundary: BoundaryNode}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
