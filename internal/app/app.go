package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/notecal/notecal/internal/config"
	"github.com/notecal/notecal/internal/rest"
	"github.com/notecal/notecal/pkg/vault"
	log "github.com/sirupsen/logrus"
)

// Application wires configuration, vault, router, and server lifecycle.
type Application struct {
	cfg     config.Application
	router  *mux.Router
	srv     *http.Server
	watcher *vault.Watcher
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	// Build dependencies (services, handlers...)
	deps, err := BuildDependencies(cfg)
	if err != nil {
		return nil, err
	}

	// Watch the vault so edits made outside notecal refresh the views.
	watcher, err := vault.NewWatcher(deps.VaultRepo, deps.Bus,
		time.Duration(cfg.Vault.WatchDebounceMs)*time.Millisecond)
	if err != nil {
		return nil, err
	}
	watcher.Start()

	// Middleware chain
	SetupMiddleware(r, deps)

	// Routes
	RegisterRoutes(r, deps, cfg)

	// Frontend
	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Listen,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, router: r, srv: srv, watcher: watcher}, nil
}

// Run starts the HTTP server and blocks.
func (a *Application) Run() error {
	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}

// Close releases the vault watcher.
func (a *Application) Close() {
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			log.Errorf("failed to close vault watcher: %v", err)
		}
	}
}
