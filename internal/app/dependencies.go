package app

import (
	"time"

	"github.com/notecal/notecal/internal/config"
	"github.com/notecal/notecal/internal/event_bus"
	"github.com/notecal/notecal/internal/utils"
	"github.com/notecal/notecal/pkg/export"
	"github.com/notecal/notecal/pkg/monthview"
	"github.com/notecal/notecal/pkg/schedule"
	"github.com/notecal/notecal/pkg/vault"
	"github.com/notecal/notecal/pkg/viewconfig"
	"github.com/notecal/notecal/pkg/yearview"
)

// measurementDebounce collapses the burst of layout readbacks a resize
// produces into one metrics update.
const measurementDebounce = 150 * time.Millisecond

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	VaultRepo    *vault.FSRepository
	VaultHandler *vault.Handler

	ViewStore   *viewconfig.Store
	ViewHandler *viewconfig.Handler

	ScheduleService *schedule.Service

	MonthService *monthview.Service
	MonthHandler *monthview.Handler

	YearLayouts *yearview.LayoutService
	YearService *yearview.Service
	YearHandler *yearview.Handler

	ExportService *export.Service
	ExportHandler *export.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.VaultRepo = vault.NewFSRepository(cfg.Vault.Path)
	deps.VaultHandler = vault.NewHandler(deps.VaultRepo, deps.Bus)

	viewStore, err := viewconfig.NewStore(cfg.Views.StorePath, deps.Bus)
	if err != nil {
		return nil, err
	}
	deps.ViewStore = viewStore
	deps.ViewHandler = viewconfig.NewHandler(deps.ViewStore)

	deps.ScheduleService = schedule.NewService(deps.VaultRepo, deps.ViewStore, deps.Bus)

	deps.MonthService = monthview.NewService(deps.ScheduleService, deps.ViewStore, deps.VaultRepo, deps.VaultRepo)
	deps.MonthHandler = monthview.NewHandler(deps.MonthService)

	deps.YearLayouts = yearview.NewLayoutService(measurementDebounce)
	deps.YearService = yearview.NewService(deps.ScheduleService, deps.ViewStore, deps.YearLayouts, deps.Clock)
	deps.YearHandler = yearview.NewHandler(deps.YearService, deps.YearLayouts)

	deps.ExportService = export.NewService(deps.ScheduleService, deps.ViewStore)
	deps.ExportHandler = export.NewHandler(deps.ExportService)

	return deps, nil
}
