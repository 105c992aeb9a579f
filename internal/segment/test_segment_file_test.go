package segment

import (
	"context"
	"errors"
	"slices"
	"testing"

	"codescribe/internal/tester"
)

func TestModeForPath(t *testing.T) {
	cases := map[string]Mode{
		"a/b/worker.py":  ModeAST,
		"models/user.ts": ModeLines,
		"ui/App.tsx":     ModeLines,
	}
	for path, want := range cases {
		got, err := ModeForPath(path)
		if err != nil || got != want {
			t.Fatalf("ModeForPath(%q)=%v,%v want %v", path, got, err, want)
		}
	}
}

func TestSegmentFile_TypeScriptReturnsLines(t *testing.T) {
	root := t.TempDir()
	p := tester.WriteFile(t, root, "user.ts", "export class User {\r\n  name: string;\n}\n")

	seg, err := SegmentFile(context.Background(), p)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if seg.Mode != ModeLines {
		t.Fatalf("mode=%v want lines", seg.Mode)
	}
	want := []string{"export class User {", "  name: string;", "}"}
	if !slices.Equal(seg.Lines, want) {
		t.Fatalf("lines=%q want=%q", seg.Lines, want)
	}
	if len(seg.Functions) != 0 {
		t.Fatalf("functions=%+v, want none", seg.Functions)
	}
	if seg.Whole() != "export class User {\n  name: string;\n}" {
		t.Fatalf("whole=%q", seg.Whole())
	}
}

func TestSegmentFile_Python(t *testing.T) {
	root := t.TempDir()
	p := tester.WriteFile(t, root, "jobs.py", "def a():\n    pass\n\ndef b():\n    pass\n")

	seg, err := SegmentFile(context.Background(), p)
	if err != nil {
		t.Fatalf("segment: %v", err)
	}
	if seg.Path != p || seg.ModeName != "ast" {
		t.Fatalf("seg=%+v", seg)
	}
	if got := names(seg.Functions); !slices.Equal(got, []string{"a", "b"}) {
		t.Fatalf("names=%v", got)
	}
}

func TestSegmentFile_Unsupported(t *testing.T) {
	root := t.TempDir()
	p := tester.WriteFile(t, root, "package.json", `{"name": "x"}`)

	_, err := SegmentFile(context.Background(), p)
	if !errors.Is(err, ErrUnsupportedFileType) {
		t.Fatalf("err=%v, want ErrUnsupportedFileType", err)
	}
	var ue *UnsupportedFileTypeError
	if !errors.As(err, &ue) || ue.Ext != ".json" {
		t.Fatalf("err=%#v, want ext .json", err)
	}
	if err.Error() != "unsupported file type: .json" {
		t.Fatalf("message=%q", err.Error())
	}
}

func TestSegmentFile_ParseErrorWrapsPath(t *testing.T) {
	root := t.TempDir()
	p := tester.WriteFile(t, root, "broken.py", "def f(:\n")

	_, err := SegmentFile(context.Background(), p)
	if !errors.Is(err, ErrParse) {
		t.Fatalf("err=%v, want ErrParse", err)
	}
}

func TestParseBoundary(t *testing.T) {
	if b, err := ParseBoundary(""); err != nil || b != BoundaryNode {
		t.Fatalf("empty -> %v,%v", b, err)
	}
	if b, err := ParseBoundary("Descendants"); err != nil || b != BoundaryDescendants {
		t.Fatalf("descendants -> %v,%v", b, err)
	}
	if _, err := ParseBoundary("lexical"); err == nil {
		t.Fatal("expected error for unknown boundary")
	}
}
