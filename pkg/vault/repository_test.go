package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeNote(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	assert.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFSRepository_GetRecordsWalksTheTree(t *testing.T) {
	// given notes in nested directories plus files the scan must ignore
	root := t.TempDir()
	writeNote(t, root, "inbox/task.md", "---\ndue: \"2025-03-10\"\n---\nbody\n")
	writeNote(t, root, "projects/trip/plan.md", "---\ntitle: Plan\n---\n![[map.png]]\n")
	writeNote(t, root, "notes.txt", "not a note\n")
	writeNote(t, root, ".trash/old.md", "---\ndue: \"2020-01-01\"\n---\n")

	repo := NewFSRepository(root)

	// when
	records, err := repo.GetRecords(context.Background())

	// then: markdown only, hidden directories skipped, stable path order
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, filepath.Join("inbox", "task.md"), records[0].Path)
	assert.Equal(t, filepath.Join("projects", "trip", "plan.md"), records[1].Path)
	assert.Equal(t, "2025-03-10", records[0].FrontMatter["due"])
	assert.Equal(t, []string{"map.png"}, records[1].Embeds)
}

func TestFSRepository_NoteEndingOnClosingDelimiterScansFine(t *testing.T) {
	// given a note whose closing "---" has no trailing newline
	root := t.TempDir()
	writeNote(t, root, "terse.md", "---\ntitle: x\n---")
	writeNote(t, root, "other.md", "---\ndue: \"2025-03-10\"\n---\n")
	repo := NewFSRepository(root)

	// when
	records, err := repo.GetRecords(context.Background())

	// then the scan survives and both notes come back
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	rec, err := repo.GetRecord(context.Background(), "terse.md")
	assert.NoError(t, err)
	assert.Equal(t, "x", rec.FrontMatter["title"])
	assert.Empty(t, rec.Embeds)
}

func TestFSRepository_GetRecord(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "task.md", "---\ndue: \"2025-03-10\"\n---\n")
	repo := NewFSRepository(root)

	rec, err := repo.GetRecord(context.Background(), "task.md")
	assert.NoError(t, err)
	assert.Equal(t, "task.md", rec.Path)

	_, err = repo.GetRecord(context.Background(), "missing.md")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFSRepository_ProcessFrontMatterPersistsAndRefreshes(t *testing.T) {
	// given
	root := t.TempDir()
	writeNote(t, root, "task.md", "---\nstart: \"2025-03-10\"\n---\nkeep this body\n")
	repo := NewFSRepository(root)
	_, err := repo.GetRecord(context.Background(), "task.md") // warm the cache
	assert.NoError(t, err)

	// when
	err = repo.ProcessFrontMatter(context.Background(), "task.md", func(fm map[string]any) {
		fm["start"] = "2025-03-12"
	})

	// then the file and the cached record both reflect the edit
	assert.NoError(t, err)
	content, err := os.ReadFile(filepath.Join(root, "task.md"))
	assert.NoError(t, err)
	assert.Contains(t, string(content), "keep this body")

	rec, err := repo.GetRecord(context.Background(), "task.md")
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-12", rec.FrontMatter["start"])

	// and no temp file is left behind
	entries, err := os.ReadDir(root)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFSRepository_ProcessFrontMatterUnknownNote(t *testing.T) {
	repo := NewFSRepository(t.TempDir())

	err := repo.ProcessFrontMatter(context.Background(), "missing.md", func(fm map[string]any) {})

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFSRepository_UnreadableNoteIsSkipped(t *testing.T) {
	// given one good note and one dangling symlink
	root := t.TempDir()
	writeNote(t, root, "good.md", "---\ntitle: ok\n---\n")
	assert.NoError(t, os.Symlink(filepath.Join(root, "gone"), filepath.Join(root, "broken.md")))

	repo := NewFSRepository(root)

	// when
	records, err := repo.GetRecords(context.Background())

	// then the scan continues past the broken entry
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, "good.md", records[0].Path)
}

func TestFSRepository_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "task.md", "---\ntitle: ok\n---\n")
	repo := NewFSRepository(root)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.GetRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = repo.GetRecord(ctx, "task.md")
	assert.ErrorIs(t, err, context.Canceled)
}
