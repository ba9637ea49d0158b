package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func paths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Path
	}
	return out
}

func TestScanCollectsAllowedExtensionsOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "contract.pdf"))
	writeFile(t, filepath.Join(root, "notes.TXT"))
	writeFile(t, filepath.Join(root, "photo.png"))
	writeFile(t, filepath.Join(root, "data.xlsx"))

	s := NewScanner(Config{}, nil)
	found := s.Scan(root, 100)

	got := paths(found)
	assert.Len(t, got, 2)
	assert.Contains(t, got, filepath.Join(root, "contract.pdf"))
	assert.Contains(t, got, filepath.Join(root, "notes.TXT"))
}

func TestScanRespectsMaxFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf", "e.pdf"} {
		writeFile(t, filepath.Join(root, name))
	}
	writeFile(t, filepath.Join(root, "sub", "f.pdf"))

	s := NewScanner(Config{}, nil)
	assert.Len(t, s.Scan(root, 3), 3)
	assert.Empty(t, s.Scan(root, 0))
}

func TestScanCapSpansSiblingSubtrees(t *testing.T) {
	root := t.TempDir()
	for _, sub := range []string{"one", "two", "three"} {
		for _, name := range []string{"a.pdf", "b.pdf"} {
			writeFile(t, filepath.Join(root, sub, name))
		}
	}

	s := NewScanner(Config{}, nil)
	assert.Len(t, s.Scan(root, 4), 4, "sibling directories share one budget")
}

func TestScanStopsAtMaxDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "top.pdf"))
	writeFile(t, filepath.Join(root, "d1", "one.pdf"))
	writeFile(t, filepath.Join(root, "d1", "d2", "two.pdf"))
	writeFile(t, filepath.Join(root, "d1", "d2", "d3", "three.pdf"))

	s := NewScanner(Config{MaxDepth: 2}, nil)
	got := paths(s.Scan(root, 100))

	assert.Contains(t, got, filepath.Join(root, "top.pdf"))
	assert.Contains(t, got, filepath.Join(root, "d1", "one.pdf"))
	assert.Contains(t, got, filepath.Join(root, "d1", "d2", "two.pdf"))
	assert.NotContains(t, got, filepath.Join(root, "d1", "d2", "d3", "three.pdf"))
}

func TestScanSkipsDeniedDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "keep.pdf"))
	writeFile(t, filepath.Join(root, "node_modules", "skip.pdf"))
	writeFile(t, filepath.Join(root, "My Node_Modules Backup", "skip.pdf"))
	writeFile(t, filepath.Join(root, "reports", "keep.pdf"))

	s := NewScanner(Config{}, nil)
	got := paths(s.Scan(root, 100))

	assert.Len(t, got, 2)
	for _, p := range got {
		assert.NotContains(t, strings.ToLower(p), "node_modules")
	}
}

func TestScanSkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "visible.pdf"))
	writeFile(t, filepath.Join(root, ".hidden.pdf"))
	writeFile(t, filepath.Join(root, "~lock.pdf"))
	writeFile(t, filepath.Join(root, "$recycle", "gone.pdf"))
	writeFile(t, filepath.Join(root, ".config", "gone.pdf"))

	s := NewScanner(Config{}, nil)
	got := paths(s.Scan(root, 100))

	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(root, "visible.pdf"), got[0])
}

func TestScanListsFilesBeforeSubdirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "aaa", "nested.pdf"))
	writeFile(t, filepath.Join(root, "zzz.pdf"))

	s := NewScanner(Config{}, nil)
	got := paths(s.Scan(root, 1))

	require.Len(t, got, 1)
	assert.Equal(t, filepath.Join(root, "zzz.pdf"), got[0],
		"a shallow file wins the last budget slot over a nested one")
}

func TestScanUnreadableRootYieldsNothing(t *testing.T) {
	s := NewScanner(Config{}, nil)
	assert.Empty(t, s.Scan(filepath.Join(t.TempDir(), "missing"), 10))
}
