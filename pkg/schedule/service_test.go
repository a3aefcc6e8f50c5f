package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/notecal/notecal/internal/event_bus"
	"github.com/notecal/notecal/pkg/vault"
	"github.com/stretchr/testify/assert"
)

type stubProps struct {
	start, end string
}

func (s stubProps) DateProperties(string) (string, string, error) {
	return s.start, s.end, nil
}

func TestService_SnapshotIsCachedUntilInvalidated(t *testing.T) {
	// given
	repo := vault.NewStubRepository(vault.Record{
		Path:        "a.md",
		FrontMatter: map[string]any{"due": "2025-04-01"},
	})
	service := NewService(repo, stubProps{start: "due"}, nil)

	// when
	first, err := service.Snapshot(context.Background(), "view-1")
	assert.NoError(t, err)
	repo.SetRecords([]vault.Record{{Path: "b.md", FrontMatter: map[string]any{"due": "2025-04-02"}}})
	cached, err := service.Snapshot(context.Background(), "view-1")
	assert.NoError(t, err)

	// then: same snapshot until an invalidation
	assert.Same(t, first, cached)

	service.Invalidate("view-1")
	rebuilt, err := service.Snapshot(context.Background(), "view-1")
	assert.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
	assert.Equal(t, "b.md", rebuilt.Entries[0].Record.Path)
}

func TestService_VaultChangedEventInvalidatesAllViews(t *testing.T) {
	// given
	bus := event_bus.NewEventBus()
	repo := vault.NewStubRepository(vault.Record{
		Path:        "a.md",
		FrontMatter: map[string]any{"due": "2025-04-01"},
	})
	service := NewService(repo, stubProps{start: "due"}, bus)
	first, err := service.Snapshot(context.Background(), "view-1")
	assert.NoError(t, err)

	// when
	repo.SetRecords([]vault.Record{{Path: "b.md", FrontMatter: map[string]any{"due": "2025-04-02"}}})
	err = bus.Publish(event_bus.NewEvent(context.Background(), event_bus.VaultChanged, nil))
	assert.NoError(t, err)

	// then: the next read fully replaces the old snapshot
	rebuilt, err := service.Snapshot(context.Background(), "view-1")
	assert.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
	assert.Len(t, rebuilt.Entries, 1)
	assert.Equal(t, "b.md", rebuilt.Entries[0].Record.Path)
}

func TestService_ConfigChangeInvalidatesOnlyThatView(t *testing.T) {
	// given
	bus := event_bus.NewEventBus()
	repo := vault.NewStubRepository(vault.Record{
		Path:        "a.md",
		FrontMatter: map[string]any{"due": "2025-04-01"},
	})
	service := NewService(repo, stubProps{start: "due"}, bus)
	one, _ := service.Snapshot(context.Background(), "view-1")
	two, _ := service.Snapshot(context.Background(), "view-2")

	// when
	err := bus.Publish(event_bus.NewEvent(context.Background(), event_bus.ViewConfigChanged,
		event_bus.ViewConfigChangedData{ViewID: "view-1"}))
	assert.NoError(t, err)

	// then
	rebuiltOne, _ := service.Snapshot(context.Background(), "view-1")
	rebuiltTwo, _ := service.Snapshot(context.Background(), "view-2")
	assert.NotSame(t, one, rebuiltOne)
	assert.Same(t, two, rebuiltTwo)
}

func TestService_SnapshotCarriesDayMapAndBounds(t *testing.T) {
	// given
	repo := vault.NewStubRepository(
		vault.Record{Path: "a.md", FrontMatter: map[string]any{"start": "2023-12-30", "end": "2024-01-02"}},
	)
	service := NewService(repo, stubProps{start: "start", end: "end"}, nil)

	// when
	snap, err := service.Snapshot(context.Background(), "view-1")

	// then
	assert.NoError(t, err)
	assert.Len(t, snap.Days, 4)
	assert.Equal(t, 2023, snap.Years.Min)
	assert.Equal(t, 2024, snap.Years.Max)
	assert.WithinDuration(t, time.Now(), snap.BuiltAt, time.Minute)
}
