package yearview

import (
	"sync"
	"time"

	"github.com/notecal/notecal/internal/debounce"
	log "github.com/sirupsen/logrus"
)

// LayoutKey captures everything the measured layout depends on. Whenever a
// rebuilt grid carries a different key, the previous measurements are stale
// and must be re-reported after the client lays the grid out again.
type LayoutKey struct {
	Aligned           bool
	HighlightWeekends bool
	Year              int
	CellHeight        int
}

// Metrics are the two shared layout variables read back from rendered day
// cells: the per-column width and the gap between month rows. The weekday
// header row reuses them so its columns line up with the day cells.
type Metrics struct {
	ColumnWidth float64 `json:"columnWidth"`
	MonthGap    float64 `json:"monthGap"`
	Stale       bool    `json:"stale"`
}

// Measurement is one post-layout readback reported by the client.
type Measurement struct {
	ColumnWidth float64 `json:"columnWidth"`
	MonthGap    float64 `json:"monthGap"`
}

type viewLayout struct {
	key      LayoutKey
	metrics  Metrics
	debounce *debounce.Debouncer
}

// LayoutService owns the per-view measurement state. Each view has a single
// pending measurement slot: a new report cancels any unapplied prior one
// before scheduling, and Teardown cancels everything when the view unloads.
type LayoutService struct {
	delay time.Duration

	mu    sync.Mutex
	views map[string]*viewLayout
}

func NewLayoutService(delay time.Duration) *LayoutService {
	return &LayoutService{
		delay: delay,
		views: make(map[string]*viewLayout),
	}
}

// Arm registers the layout key a freshly built grid depends on. A key change
// marks the stored metrics stale until the next measurement lands.
func (s *LayoutService) Arm(viewID string, key LayoutKey) {
	if !key.Aligned {
		// Only the weekday-aligned layout needs the measurement pass.
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	vl, ok := s.views[viewID]
	if !ok {
		vl = &viewLayout{debounce: debounce.New()}
		vl.metrics.Stale = true
		s.views[viewID] = vl
		vl.key = key
		return
	}
	if vl.key != key {
		vl.key = key
		vl.metrics.Stale = true
	}
}

// Submit schedules a debounced commit of the reported measurement. The
// debounce collapses the burst of readbacks a resize produces into one
// metrics update.
func (s *LayoutService) Submit(viewID string, m Measurement) {
	s.mu.Lock()
	vl, ok := s.views[viewID]
	if !ok {
		vl = &viewLayout{debounce: debounce.New()}
		s.views[viewID] = vl
	}
	deb := vl.debounce
	s.mu.Unlock()

	deb.Schedule(s.delay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if vl, ok := s.views[viewID]; ok {
			vl.metrics = Metrics{ColumnWidth: m.ColumnWidth, MonthGap: m.MonthGap}
			log.Debugf("layout metrics committed for view %s: col=%.1f gap=%.1f", viewID, m.ColumnWidth, m.MonthGap)
		}
	})
}

// Metrics returns the view's current layout metrics.
func (s *LayoutService) Metrics(viewID string) Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vl, ok := s.views[viewID]; ok {
		return vl.metrics
	}
	return Metrics{Stale: true}
}

// Teardown discards the view's layout state and cancels any pending
// measurement commit.
func (s *LayoutService) Teardown(viewID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vl, ok := s.views[viewID]; ok {
		vl.debounce.Stop()
		delete(s.views, viewID)
	}
}
