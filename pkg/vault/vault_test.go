package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecord_Basename(t *testing.T) {
	assert.Equal(t, "plan", Record{Path: "projects/trip/plan.md"}.Basename())
	assert.Equal(t, "task", Record{Path: "task.md"}.Basename())
	assert.Equal(t, "README", Record{Path: "README"}.Basename())
}

func TestRecord_OwnsProperty(t *testing.T) {
	rec := Record{Path: "a.md", FrontMatter: map[string]any{"due": "2025-01-01"}}

	assert.True(t, rec.OwnsProperty("due"))
	assert.False(t, rec.OwnsProperty("missing"))
	// computed identifiers are never note-owned, present or not
	assert.False(t, rec.OwnsProperty("file.name"))
	assert.False(t, rec.OwnsProperty("file.ctime"))
}
