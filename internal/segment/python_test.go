package segment

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"
)

func names(fns []FunctionRecord) []string {
	out := make([]string, 0, len(fns))
	for _, f := range fns {
		out = append(out, f.Name)
	}
	return out
}

func TestSegment_SingleFunction(t *testing.T) {
	seg, err := Segment(context.Background(), "def f():\n    return 1\n", ModeAST)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(seg.Functions) != 1 {
		t.Fatalf("got %d records, want 1", len(seg.Functions))
	}
	got := seg.Functions[0]
	if got.Name != "f" {
		t.Fatalf("name=%q want f", got.Name)
	}
	if got.Code != "def f():\n    return 1" {
		t.Fatalf("code=%q", got.Code)
	}
	if got.StartLine != 0 || got.EndLine != 1 {
		t.Fatalf("range=[%d,%d] want [0,1]", got.StartLine, got.EndLine)
	}
}

func TestSegment_TopLevelFunctionsInOrder(t *testing.T) {
	src := `import os


def load(path):
    with open(path) as fh:
        return fh.read()


def save(path, data):
    with open(path, "w") as fh:
        fh.write(data)


def remove(path):
    os.remove(path)
`
	seg, err := Segment(context.Background(), src, ModeAST)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	want := []string{"load", "save", "remove"}
	if got := names(seg.Functions); !slices.Equal(got, want) {
		t.Fatalf("names=%v want=%v", got, want)
	}
	if seg.Functions[1].Code != "def save(path, data):\n    with open(path, \"w\") as fh:\n        fh.write(data)" {
		t.Fatalf("save code=%q", seg.Functions[1].Code)
	}
	// No record borrows lines from its neighbour.
	for i := 1; i < len(seg.Functions); i++ {
		if seg.Functions[i-1].EndLine >= seg.Functions[i].StartLine {
			t.Fatalf("records %d and %d overlap: %+v %+v", i-1, i, seg.Functions[i-1], seg.Functions[i])
		}
	}
}

func TestSegment_EmptyFile(t *testing.T) {
	for _, src := range []string{"", "x = 1\nprint(x)\n"} {
		seg, err := Segment(context.Background(), src, ModeAST)
		if err != nil {
			t.Fatalf("segment(%q): %v", src, err)
		}
		if seg.Functions == nil || len(seg.Functions) != 0 {
			t.Fatalf("segment(%q) functions=%#v, want empty non-nil", src, seg.Functions)
		}
	}
}

func TestSegment_ParseError(t *testing.T) {
	for _, src := range []string{
		"print((1)\n",
		"def f(:\n    return 1\n",
		"f() = 1\n",
		// indentation
		"def f():\n    x = 1\n      y = 2\n",
		"def f():\n  return 1\n x = 2\n",
		"def f():\n    return 1\n  def g():\n    return 2\n",
		" x = 1\n",
		"if x:\n    a = 1\n  else:\n    a = 2\n",
		// Python 2
		"print \"hi\"\n",
		"print >>sys.stderr, \"x\"\n",
		"exec \"x = 1\"\n",
		"raise E, \"msg\"\n",
		"x = 0777\n",
		"x = 10L\n",
		"ok = 1 <> 2\n",
		"del f()\n",
		"def f(a):\n    del a, g()\n",
	} {
		_, err := Segment(context.Background(), src, ModeAST)
		if !errors.Is(err, ErrParse) {
			t.Fatalf("segment(%q) err=%v, want ErrParse", src, err)
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Line < 1 {
			t.Fatalf("segment(%q) err=%#v, want *ParseError with line", src, err)
		}
	}
}

func TestSegment_NestedAndMethods(t *testing.T) {
	src := `def outer():
    def inner():
        return 1
    return inner


class Repo:
    def get(self, key):
        return key


async def fetch():
    await outer()()
`
	seg, err := Segment(context.Background(), src, ModeAST)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	want := []string{"outer", "inner", "get", "fetch"}
	if got := names(seg.Functions); !slices.Equal(got, want) {
		t.Fatalf("names=%v want=%v", got, want)
	}
	if seg.Functions[1].Code != "    def inner():\n        return 1" {
		t.Fatalf("inner code=%q", seg.Functions[1].Code)
	}
	if seg.Functions[3].Code != "async def fetch():\n    await outer()()" {
		t.Fatalf("fetch code=%q", seg.Functions[3].Code)
	}
}

func TestSegment_DecoratorExcluded(t *testing.T) {
	src := "@cache\ndef f():\n    pass\n"
	seg, err := Segment(context.Background(), src, ModeAST)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(seg.Functions) != 1 || seg.Functions[0].Code != "def f():\n    pass" {
		t.Fatalf("functions=%+v", seg.Functions)
	}
	if seg.Functions[0].StartLine != 1 {
		t.Fatalf("start=%d want 1", seg.Functions[0].StartLine)
	}
}

func TestSegment_Boundaries(t *testing.T) {
	src := "def f():\n    return g(\n        1,\n    )\n"

	seg, err := Segment(context.Background(), src, ModeAST)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if got := seg.Functions[0].Code; got != "def f():\n    return g(\n        1,\n    )" {
		t.Fatalf("node boundary code=%q", got)
	}

	seg, err = Segment(context.Background(), src, ModeAST, WithBoundary(BoundaryDescendants))
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	// The closing parenthesis starts no named node, so it is cut.
	if got := seg.Functions[0].Code; got != "def f():\n    return g(\n        1," {
		t.Fatalf("descendant boundary code=%q", got)
	}
}

func TestSegment_CRLF(t *testing.T) {
	seg, err := Segment(context.Background(), "def f():\r\n    return 1\r\n", ModeAST)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if len(seg.Functions) != 1 || seg.Functions[0].Code != "def f():\n    return 1" {
		t.Fatalf("functions=%+v", seg.Functions)
	}
}

func TestSegment_AcceptsPython3(t *testing.T) {
	src := `import sys


def main(argv):  # entry
    x = 1; y = 2
    if x:
        pass
    elif y:
        print("y", file=sys.stderr)
    else:
        exec("z = 1")
    try:
        del argv[0], x, sys.modules["a"]
    except (IndexError, KeyError):
        raise SystemExit(2) from None
    finally:
        n = 0o777 + 0 + 00 + 1_000 + 0x1F + 10j
    return y <= n


def one(): return 1


class A:
    def m(self):
        for i in range(3):
            pass
        else:
            return i
`
	seg, err := Segment(context.Background(), src, ModeAST)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	want := []string{"main", "one", "m"}
	if got := names(seg.Functions); !slices.Equal(got, want) {
		t.Fatalf("names=%v want=%v", got, want)
	}
}

func TestSegment_ParseErrorLocation(t *testing.T) {
	_, err := Segment(context.Background(), "def f():\n    x = 1\n      y = 2\n", ModeAST)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("err=%v, want *ParseError", err)
	}
	if pe.Line != 3 || pe.Column != 7 || pe.Near != "y = 2" {
		t.Fatalf("got %+v, want line 3 column 7 near \"y = 2\"", pe)
	}
}

func TestSegment_DescendantsIgnoreComments(t *testing.T) {
	src := "def f():\n    return 1\n    # trailing note\n"
	seg, err := Segment(context.Background(), src, ModeAST, WithBoundary(BoundaryDescendants))
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if got := seg.Functions[0].Code; got != "def f():\n    return 1" {
		t.Fatalf("code=%q", got)
	}
}

func TestNearText(t *testing.T) {
	long := strings.Repeat("é", 45)
	got := nearText(long + "\nnext")
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) != 40 {
		t.Fatalf("nearText=%q", got)
	}
	if got := nearText("x = (\n1"); got != "x = (" {
		t.Fatalf("nearText=%q", got)
	}
}

func TestValidInteger(t *testing.T) {
	cases := map[string]bool{
		"0": true, "00": true, "0_0": true, "10": true, "1_000": true,
		"0o777": true, "0x1F": true, "0b10": true, "07j": true,
		"0777": false, "10L": false, "0xFFl": false, "01": false,
	}
	for lit, want := range cases {
		if got := validInteger(lit); got != want {
			t.Fatalf("validInteger(%q)=%v want %v", lit, got, want)
		}
	}
}
