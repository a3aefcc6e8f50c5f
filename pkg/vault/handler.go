package vault

import (
	"net/http"

	"github.com/notecal/notecal/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Handler exposes the manual refresh trigger. It goes through the same
// event as the file watcher, so a manual refresh and a detected change are
// indistinguishable downstream.
type Handler struct {
	repo *FSRepository
	bus  *event_bus.EventBus
}

func NewHandler(repo *FSRepository, bus *event_bus.EventBus) *Handler {
	return &Handler{repo: repo, bus: bus}
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.repo.Invalidate("")
	if err := h.bus.Publish(event_bus.NewEvent(r.Context(), event_bus.VaultChanged, nil)); err != nil {
		log.Errorf("manual vault refresh failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
