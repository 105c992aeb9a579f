package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"codescribe/internal/tester"
)

func TestListFiles_ImmediateOnly(t *testing.T) {
	root := t.TempDir()
	tester.WriteFile(t, root, "b.py", "")
	tester.WriteFile(t, root, "a.ts", "")
	tester.WriteFile(t, root, "nested/c.py", "")

	got, err := ListFiles(root, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "a.ts"), filepath.Join(root, "b.py")}, got)
}

func TestListFiles_IncludeExclude(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"card_generation.py", "semrush.py", "test_semrush.py", "index.ts", "README.md"} {
		tester.WriteFile(t, root, name, "")
	}

	got, err := ListFiles(root, ListOptions{
		Include: []string{"*.{py,ts}"},
		Exclude: []string{"test_*"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "card_generation.py"),
		filepath.Join(root, "index.ts"),
		filepath.Join(root, "semrush.py"),
	}, got)
}

func TestListFiles_Accept(t *testing.T) {
	root := t.TempDir()
	tester.WriteFile(t, root, "a.py", "")
	tester.WriteFile(t, root, "b.json", "")

	got, err := ListFiles(root, ListOptions{Accept: func(p string) bool { return filepath.Ext(p) == ".py" }})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "a.py")}, got)
}

func TestExpand_FilesAndDirs(t *testing.T) {
	root := t.TempDir()
	one := tester.WriteFile(t, root, "one.py", "")
	tester.WriteFile(t, root, "models/user.ts", "")
	tester.WriteFile(t, root, "models/deep/x.ts", "")

	got, err := Expand([]string{one, filepath.Join(root, "models"), one}, ListOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{one, filepath.Join(root, "models", "user.ts")}, got)
}

func TestExpand_MissingInput(t *testing.T) {
	_, err := Expand([]string{filepath.Join(t.TempDir(), "nope.py")}, ListOptions{})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpand_InvalidPattern(t *testing.T) {
	_, err := Expand(nil, ListOptions{Include: []string{"[a-"}})
	require.Error(t, err)
}

func TestListFiles_GitIgnore(t *testing.T) {
	root := t.TempDir()
	tester.WriteFile(t, root, ".gitignore", "generated_*.py\nlocal_settings.py\n")
	tester.WriteFile(t, root, "views.py", "")
	tester.WriteFile(t, root, "generated_models.py", "")
	tester.WriteFile(t, root, "local_settings.py", "")

	opts := ListOptions{Include: []string{"*.py"}}
	got, err := ListFiles(root, opts)
	require.NoError(t, err)
	require.Len(t, got, 3)

	opts.GitIgnore = true
	got, err = ListFiles(root, opts)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "views.py")}, got)
}

func TestListFiles_GitIgnoreMissingFile(t *testing.T) {
	root := t.TempDir()
	tester.WriteFile(t, root, "a.py", "")

	got, err := ListFiles(root, ListOptions{GitIgnore: true})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(root, "a.py")}, got)
}
