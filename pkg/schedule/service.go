package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/notecal/notecal/internal/event_bus"
	"github.com/notecal/notecal/pkg/vault"
	log "github.com/sirupsen/logrus"
)

// DateProperties supplies the per-view start/end property identifiers.
// Implemented by the view configuration store.
type DateProperties interface {
	DateProperties(viewID string) (start string, end string, err error)
}

// Snapshot is one fully built projection of the vault for a view. A snapshot
// is immutable after construction; refreshes build a new one and swap it in
// whole, so readers never observe a partially updated day map.
type Snapshot struct {
	Entries []Entry
	Days    DayMap
	Years   YearBounds
	BuiltAt time.Time
}

// Service builds and caches per-view snapshots. Vault or configuration
// changes invalidate the affected snapshots; the next read rebuilds them.
type Service struct {
	repo  vault.Repository
	props DateProperties

	mu        sync.Mutex
	snapshots map[string]*Snapshot
}

func NewService(repo vault.Repository, props DateProperties, bus *event_bus.EventBus) *Service {
	s := &Service{
		repo:      repo,
		props:     props,
		snapshots: make(map[string]*Snapshot),
	}
	if bus != nil {
		bus.Subscribe(event_bus.VaultChanged, func(event_bus.Event) error {
			s.InvalidateAll()
			return nil
		})
		bus.Subscribe(event_bus.ViewConfigChanged, func(e event_bus.Event) error {
			if data, ok := e.Data.(event_bus.ViewConfigChangedData); ok {
				s.Invalidate(data.ViewID)
			} else {
				s.InvalidateAll()
			}
			return nil
		})
	}
	return s
}

// Snapshot returns the current projection for the view, rebuilding it when
// stale. The build-and-swap happens under one lock, which serializes refresh
// passes per service: a new snapshot always fully replaces the previous one.
func (s *Service) Snapshot(ctx context.Context, viewID string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap, ok := s.snapshots[viewID]; ok {
		return snap, nil
	}

	startProp, endProp, err := s.props.DateProperties(viewID)
	if err != nil {
		return nil, fmt.Errorf("failed to read view configuration: %w", err)
	}
	records, err := s.repo.GetRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault records: %w", err)
	}

	entries := BuildEntries(records, startProp, endProp)
	days, years := Project(entries)
	snap := &Snapshot{
		Entries: entries,
		Days:    days,
		Years:   years,
		BuiltAt: time.Now(),
	}
	s.snapshots[viewID] = snap
	log.Debugf("snapshot rebuilt for view %s: %d entries over %d days", viewID, len(entries), len(days))
	return snap, nil
}

// Invalidate drops the cached snapshot for one view.
func (s *Service) Invalidate(viewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, viewID)
}

// InvalidateAll drops every cached snapshot.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots = make(map[string]*Snapshot)
}
