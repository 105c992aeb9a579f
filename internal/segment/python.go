package segment

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

const pyFunctionNode = "function_definition"

func pythonFunctions(ctx context.Context, content string, boundary Boundary) ([]FunctionRecord, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	src := []byte(content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, newParseError(root, src)
	}

	lines := strings.Split(content, "\n")
	if pe := (&pyChecker{src: src, lines: lines}).check(root); pe != nil {
		return nil, pe
	}
	out := []FunctionRecord{}
	walk(root, func(n *sitter.Node) {
		if n.Type() != pyFunctionNode {
			return
		}
		nameNode := n.ChildByFieldName("name")
		if nameNode == nil {
			return
		}
		start := int(n.StartPoint().Row)
		var end int
		switch boundary {
		case BoundaryDescendants:
			end = maxDescendantRow(n)
		default:
			end = nodeEndRow(n)
		}
		if end >= len(lines) {
			end = len(lines) - 1
		}
		if end < start {
			end = start
		}
		out = append(out, FunctionRecord{
			Name:      nameNode.Content(src),
			Code:      strings.Join(lines[start:end+1], "\n"),
			StartLine: start,
			EndLine:   end,
		})
	})
	return out, nil
}

// walk visits n and its children pre-order.
func walk(n *sitter.Node, visit func(*sitter.Node)) {
	if n == nil {
		return
	}
	visit(n)
	for i := 0; i < int(n.ChildCount()); i++ {
		walk(n.Child(i), visit)
	}
}

// nodeEndRow is the last row holding text of n.
func nodeEndRow(n *sitter.Node) int {
	start := int(n.StartPoint().Row)
	end := int(n.EndPoint().Row)
	if n.EndPoint().Column == 0 && end > start {
		end--
	}
	return end
}

func maxDescendantRow(n *sitter.Node) int {
	best := int(n.StartPoint().Row)
	walk(n, func(c *sitter.Node) {
		if !c.IsNamed() || c.Type() == "comment" {
			return
		}
		if r := int(c.StartPoint().Row); r > best {
			best = r
		}
	})
	return best
}

func newParseError(root *sitter.Node, src []byte) *ParseError {
	bad := root
	walk(root, func(n *sitter.Node) {
		if bad != root {
			return
		}
		if n.Type() == "ERROR" || n.IsMissing() {
			bad = n
		}
	})
	if bad == root {
		p := root.StartPoint()
		return &ParseError{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
	}
	return parseErrorAt(bad, src)
}

func parseErrorAt(n *sitter.Node, src []byte) *ParseError {
	p := n.StartPoint()
	return &ParseError{Line: int(p.Row) + 1, Column: int(p.Column) + 1, Near: nearText(n.Content(src))}
}

// nearText is the first line of s, cut to 40 runes.
func nearText(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
