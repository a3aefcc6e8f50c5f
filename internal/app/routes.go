package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/notecal/notecal/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Views and configuration
	r.HandleFunc("/api/view", deps.ViewHandler.ListViews).Methods("GET")
	r.HandleFunc("/api/view", deps.ViewHandler.CreateView).Methods("POST")
	r.HandleFunc("/api/view/{viewId}/config", deps.ViewHandler.GetConfig).Methods("GET")
	r.HandleFunc("/api/view/{viewId}/config", deps.ViewHandler.UpdateConfig).Methods("PUT")
	r.HandleFunc("/api/view/{viewId}/options-schema", deps.ViewHandler.GetOptionsSchema).Methods("GET")

	// Month grid
	r.HandleFunc("/api/view/{viewId}/month", deps.MonthHandler.GetGrid).Methods("GET")
	r.HandleFunc("/api/view/{viewId}/month/reschedule", deps.MonthHandler.PostReschedule).Methods("POST")

	// Linear year grid
	r.HandleFunc("/api/view/{viewId}/year", deps.YearHandler.GetGrid).Methods("GET")
	r.HandleFunc("/api/view/{viewId}/year/layout", deps.YearHandler.GetLayout).Methods("GET")
	r.HandleFunc("/api/view/{viewId}/year/layout", deps.YearHandler.DeleteLayout).Methods("DELETE")
	r.HandleFunc("/api/view/{viewId}/year/layout/measurements", deps.YearHandler.PostMeasurements).Methods("POST")

	// Calendar feed
	r.HandleFunc("/api/view/{viewId}/export.ics", deps.ExportHandler.GetCalendar).Methods("GET")

	// Vault
	r.HandleFunc("/api/vault/refresh", deps.VaultHandler.Refresh).Methods("POST")
	r.PathPrefix("/vault/").Handler(
		http.StripPrefix("/vault/", http.FileServer(http.Dir(cfg.Vault.Path))))
}
