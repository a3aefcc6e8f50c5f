package vault

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

var ErrRecordNotFound = errors.New("record not found")

// Record is one markdown note in the vault. FrontMatter holds the raw parsed
// YAML mapping; Embeds lists the link targets of embedded files in document
// order.
type Record struct {
	Path        string
	FrontMatter map[string]any
	Embeds      []string
}

// Basename is the note's file name without directory or extension.
func (r Record) Basename() string {
	base := filepath.Base(r.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OwnsProperty reports whether the given property identifier names a field
// the note itself carries in its front matter. Computed identifiers (the
// "file." namespace: file.name, file.ctime, ...) are never note-owned, so
// views backed by them must not offer editing.
func (r Record) OwnsProperty(propertyID string) bool {
	if strings.HasPrefix(propertyID, "file.") {
		return false
	}
	_, ok := r.FrontMatter[propertyID]
	return ok
}

// Repository provides read access to the vault's records.
type Repository interface {
	GetRecords(ctx context.Context) ([]Record, error)
	GetRecord(ctx context.Context, path string) (Record, error)
}

// FrontMatterStore applies persisted edits to a record's front matter.
type FrontMatterStore interface {
	// ProcessFrontMatter reads the note at path, applies mutator to its
	// front-matter mapping, and writes the note back with the body unchanged.
	ProcessFrontMatter(ctx context.Context, path string, mutator func(fm map[string]any)) error
}
