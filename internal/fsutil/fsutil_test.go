package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte(f), 0644))
	}
}

func TestList_DefaultIgnores(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"README.md",
		"src/app/main.py",
		".git/HEAD",
		"venv/bin/python",
		".gitignore",
	)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "tests"), 0755))

	dirs, files, err := List(root, WalkOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "src/app", "tests"}, dirs)
	assert.Equal(t, []string{"README.md", "src/app/main.py"}, files)
}

func TestList_IncludeHiddenAndPatterns(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, ".gitignore", ".devgenesis.json", "a.txt")

	_, files, err := List(root, WalkOptions{
		IncludeHidden:  true,
		IgnorePatterns: []string{".devgenesis.json"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{".gitignore", "a.txt"}, files)
}

func TestWalk_SkipDir(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "keep/a.txt", "skip/b.txt")

	var seen []string
	err := Walk(root, WalkOptions{}, func(rel string, d fs.DirEntry) error {
		if rel == "skip" {
			return filepath.SkipDir
		}
		seen = append(seen, rel)
		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"keep", "keep/a.txt"}, seen)
}

func TestFreeSpaceAndWritable(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" && runtime.GOOS != "windows" {
		t.Skip("probes not implemented on " + runtime.GOOS)
	}

	dir := t.TempDir()

	free, err := FreeSpace(dir)
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))

	assert.NoError(t, Writable(dir))
	assert.Error(t, Writable(filepath.Join(dir, "missing")))
}
