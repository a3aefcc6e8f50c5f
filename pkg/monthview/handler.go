package monthview

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/notecal/notecal/internal/rest"
	"github.com/notecal/notecal/pkg/vault"
	"github.com/notecal/notecal/pkg/viewconfig"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be an integer")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		rest.WriteError(w, http.StatusBadRequest, "Invalid month", "'month' must be 1-12")
		return
	}

	grid, err := h.service.Grid(r.Context(), viewID, year, time.Month(month))
	if err != nil {
		if errors.Is(err, viewconfig.ErrViewNotFound) {
			rest.WriteError(w, http.StatusNotFound, "View not found", viewID)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, grid)
}

// PostReschedule applies a drop edit. A failed persistence write answers
// with an error status and changes nothing; the client reverts the drop.
func (h *Handler) PostReschedule(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]

	var req Reschedule
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Path == "" || req.Start == "" {
		rest.WriteError(w, http.StatusBadRequest, "Missing fields", "'path' and 'start' are required")
		return
	}

	err := h.service.ApplyReschedule(r.Context(), viewID, req)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, viewconfig.ErrViewNotFound):
		rest.WriteError(w, http.StatusNotFound, "View not found", viewID)
	case errors.Is(err, vault.ErrRecordNotFound):
		rest.WriteError(w, http.StatusNotFound, "Record not found", req.Path)
	case errors.Is(err, ErrNotEditable):
		rest.WriteError(w, http.StatusConflict, "View is not editable",
			"start and end date properties must be note-owned fields")
	default:
		log.Errorf("reschedule failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
