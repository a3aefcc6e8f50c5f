package export

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/notecal/notecal/internal/rest"
	"github.com/notecal/notecal/pkg/viewconfig"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]

	serialized, err := h.service.Calendar(r.Context(), viewID)
	if err != nil {
		if errors.Is(err, viewconfig.ErrViewNotFound) {
			rest.WriteError(w, http.StatusNotFound, "View not found", viewID)
			return
		}
		log.Errorf("calendar export failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(serialized)); err != nil {
		log.Errorf("failed to write calendar response: %v", err)
	}
}
