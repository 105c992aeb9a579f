package segment

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// The grammar recovers from some input that Python 3 rejects: Python 2
// statements and literals, and inconsistent indentation. pyChecker walks an
// error-free tree and reports those as parse errors.
type pyChecker struct {
	src   []byte
	lines []string
}

var python2Only = map[string]bool{
	"print_statement": true,
	"exec_statement":  true,
}

// clauses continue a compound statement and must line up with it.
var clauses = map[string]bool{
	"elif_clause":         true,
	"else_clause":         true,
	"except_clause":       true,
	"except_group_clause": true,
	"finally_clause":      true,
}

func (c *pyChecker) check(n *sitter.Node) *ParseError {
	if pe := c.checkNode(n); pe != nil {
		return pe
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if pe := c.check(n.Child(i)); pe != nil {
			return pe
		}
	}
	return nil
}

func (c *pyChecker) checkNode(n *sitter.Node) *ParseError {
	typ := n.Type()
	switch {
	case python2Only[typ]:
		return c.fail(n)
	case typ == "module":
		return c.checkStatements(n, 0)
	case typ == "block":
		return c.checkBlock(n)
	case typ == "integer":
		if !validInteger(n.Content(c.src)) {
			return c.fail(n)
		}
	case typ == "comparison_operator":
		for i := 0; i < int(n.ChildCount()); i++ {
			if op := n.Child(i); op.Type() == "<>" {
				return c.fail(op)
			}
		}
	case typ == "raise_statement":
		// raise E, "msg"
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if arg := n.NamedChild(i); arg.Type() == "expression_list" {
				return c.fail(arg)
			}
		}
	case typ == "delete_statement":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if pe := c.checkDelTarget(n.NamedChild(i)); pe != nil {
				return pe
			}
		}
	case clauses[typ]:
		parent := n.Parent()
		if parent != nil && c.leadsLine(n) && n.StartPoint().Column != parent.StartPoint().Column {
			return c.fail(n)
		}
	}
	return nil
}

// checkStatements requires every statement that begins a line to start at
// column want. want < 0 takes the column of the first such statement.
func (c *pyChecker) checkStatements(n *sitter.Node, want int) *ParseError {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		st := n.NamedChild(i)
		if st.Type() == "comment" || !c.leadsLine(st) {
			continue
		}
		col := int(st.StartPoint().Column)
		if want < 0 {
			want = col
			continue
		}
		if col != want {
			return c.fail(st)
		}
	}
	return nil
}

func (c *pyChecker) checkBlock(n *sitter.Node) *ParseError {
	if owner := n.Parent(); owner != nil {
		for i := 0; i < int(n.NamedChildCount()); i++ {
			st := n.NamedChild(i)
			if st.Type() == "comment" || !c.leadsLine(st) {
				continue
			}
			if st.StartPoint().Column <= owner.StartPoint().Column {
				return c.fail(st)
			}
			break
		}
	}
	return c.checkStatements(n, -1)
}

func (c *pyChecker) checkDelTarget(n *sitter.Node) *ParseError {
	switch n.Type() {
	case "comment", "identifier", "attribute", "subscript":
		return nil
	case "expression_list", "tuple", "list", "parenthesized_expression":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if pe := c.checkDelTarget(n.NamedChild(i)); pe != nil {
				return pe
			}
		}
		return nil
	}
	return c.fail(n)
}

// leadsLine reports whether only whitespace precedes n on its first line.
func (c *pyChecker) leadsLine(n *sitter.Node) bool {
	p := n.StartPoint()
	row, col := int(p.Row), int(p.Column)
	if row >= len(c.lines) || col > len(c.lines[row]) {
		return false
	}
	return strings.TrimLeft(c.lines[row][:col], " \t\f") == ""
}

func (c *pyChecker) fail(n *sitter.Node) *ParseError {
	return parseErrorAt(n, c.src)
}

// validInteger rejects Python 2 long suffixes and leading-zero octals.
func validInteger(lit string) bool {
	lit = strings.ReplaceAll(lit, "_", "")
	if lit == "" {
		return true
	}
	switch lit[len(lit)-1] {
	case 'l', 'L':
		return false
	case 'j', 'J':
		return true
	}
	if len(lit) > 1 && lit[0] == '0' && lit[1] >= '0' && lit[1] <= '9' {
		return strings.Trim(lit, "0") == ""
	}
	return true
}
