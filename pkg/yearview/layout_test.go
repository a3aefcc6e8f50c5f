package yearview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLayoutService_MetricsStartStale(t *testing.T) {
	layouts := NewLayoutService(time.Millisecond)

	assert.True(t, layouts.Metrics("view-1").Stale)
}

func TestLayoutService_SubmitCommitsAfterDebounce(t *testing.T) {
	// given
	layouts := NewLayoutService(5 * time.Millisecond)
	layouts.Arm("view-1", LayoutKey{Aligned: true, Year: 2025, CellHeight: 120})

	// when a burst of readbacks arrives
	layouts.Submit("view-1", Measurement{ColumnWidth: 10, MonthGap: 1})
	layouts.Submit("view-1", Measurement{ColumnWidth: 24.5, MonthGap: 8})

	// then only the last one lands
	assert.Eventually(t, func() bool {
		m := layouts.Metrics("view-1")
		return !m.Stale && m.ColumnWidth == 24.5 && m.MonthGap == 8
	}, time.Second, time.Millisecond)
}

func TestLayoutService_KeyChangeMarksMetricsStale(t *testing.T) {
	// given committed metrics
	layouts := NewLayoutService(time.Millisecond)
	key := LayoutKey{Aligned: true, Year: 2025, CellHeight: 120}
	layouts.Arm("view-1", key)
	layouts.Submit("view-1", Measurement{ColumnWidth: 24, MonthGap: 8})
	assert.Eventually(t, func() bool {
		return !layouts.Metrics("view-1").Stale
	}, time.Second, time.Millisecond)

	// when the grid is rebuilt with a different cell height
	key.CellHeight = 160
	layouts.Arm("view-1", key)

	// then the old measurements no longer apply
	assert.True(t, layouts.Metrics("view-1").Stale)
}

func TestLayoutService_SameKeyKeepsMetrics(t *testing.T) {
	layouts := NewLayoutService(time.Millisecond)
	key := LayoutKey{Aligned: true, Year: 2025, CellHeight: 120}
	layouts.Arm("view-1", key)
	layouts.Submit("view-1", Measurement{ColumnWidth: 24, MonthGap: 8})
	assert.Eventually(t, func() bool {
		return !layouts.Metrics("view-1").Stale
	}, time.Second, time.Millisecond)

	layouts.Arm("view-1", key)

	assert.False(t, layouts.Metrics("view-1").Stale)
}

func TestLayoutService_StandardLayoutNeedsNoMeasurements(t *testing.T) {
	layouts := NewLayoutService(time.Millisecond)

	layouts.Arm("view-1", LayoutKey{Aligned: false, Year: 2025})

	layouts.mu.Lock()
	defer layouts.mu.Unlock()
	assert.Empty(t, layouts.views)
}

func TestLayoutService_TeardownDropsPendingCommit(t *testing.T) {
	// given a pending measurement
	layouts := NewLayoutService(50 * time.Millisecond)
	layouts.Arm("view-1", LayoutKey{Aligned: true, Year: 2025})
	layouts.Submit("view-1", Measurement{ColumnWidth: 24, MonthGap: 8})

	// when the view unloads before the debounce fires
	layouts.Teardown("view-1")
	time.Sleep(80 * time.Millisecond)

	// then nothing was committed
	assert.True(t, layouts.Metrics("view-1").Stale)
}
