// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package media

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/docx-extract/internal/archive"
	"github.com/pdiddy/docx-extract/internal/archive/archivetest"
)

func openArchive(t *testing.T, entries []archivetest.Entry) *archive.Archive {
	t.Helper()
	p := archivetest.WriteZip(t, t.TempDir(), "doc.docx", entries)
	a, err := archive.Open(p)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestExtract_Flattens(t *testing.T) {
	a := openArchive(t, []archivetest.Entry{
		{Name: "word/document.xml", Body: archivetest.DocumentXML("x")},
		{Name: "word/media/image1.png", Body: "one"},
		{Name: "word/media/image2.jpeg", Body: "two"},
		{Name: "word/media/nested/chart.emf", Body: "three"},
	})
	out := t.TempDir()

	res, err := Extract(a, out, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"chart.emf", "image1.png", "image2.jpeg"}, listDir(t, out))
	assert.NoDirExists(t, filepath.Join(out, "word"))
	require.Len(t, res.Files, 3)
	assert.Equal(t, "word/media/image1.png", res.Files[0].Entry)
	assert.Equal(t, int64(3), res.Files[0].Size)
	assert.Empty(t, res.Overwritten)

	data, err := os.ReadFile(filepath.Join(out, "chart.emf"))
	require.NoError(t, err)
	assert.Equal(t, "three", string(data))
}

func TestExtract_BasenameCollisionLastWins(t *testing.T) {
	a := openArchive(t, []archivetest.Entry{
		{Name: "word/media/a/image1.png", Body: "first"},
		{Name: "word/media/b/image1.png", Body: "second"},
	})
	out := t.TempDir()

	res, err := Extract(a, out, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, []string{"image1.png"}, listDir(t, out))
	data, err := os.ReadFile(filepath.Join(out, "image1.png"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
	assert.Equal(t, []string{"image1.png"}, res.Overwritten)
	assert.Len(t, res.Files, 2)
}

func TestExtract_NoMedia(t *testing.T) {
	a := openArchive(t, []archivetest.Entry{
		{Name: "word/document.xml", Body: archivetest.DocumentXML("x")},
	})
	out := t.TempDir()

	res, err := Extract(a, out, zap.NewNop())
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Empty(t, listDir(t, out))
}

func TestExtract_RemovesPreexistingStagingTree(t *testing.T) {
	a := openArchive(t, []archivetest.Entry{
		{Name: "word/media/image1.png", Body: "png"},
	})
	out := t.TempDir()
	stale := filepath.Join(out, "word", "media", "stale.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(stale), 0o755))
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	_, err := Extract(a, out, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"image1.png"}, listDir(t, out))
}

func TestExtract_Overwrites(t *testing.T) {
	a := openArchive(t, []archivetest.Entry{
		{Name: "word/media/image1.png", Body: "new"},
	})
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "image1.png"), []byte("old content"), 0o644))

	_, err := Extract(a, out, zap.NewNop())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(out, "image1.png"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestExtract_RejectsUnsafeEntry(t *testing.T) {
	a := openArchive(t, []archivetest.Entry{
		{Name: "word/media/../../escape.png", Body: "x"},
	})
	out := filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.MkdirAll(out, 0o755))

	_, err := Extract(a, out, zap.NewNop())
	require.Error(t, err)
	assert.ErrorIs(t, err, archive.ErrUnsafeEntry)
	assert.NoFileExists(t, filepath.Join(filepath.Dir(out), "escape.png"))
}
