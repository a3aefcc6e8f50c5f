package yearview

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/notecal/notecal/internal/rest"
	"github.com/notecal/notecal/pkg/viewconfig"
)

type Handler struct {
	service *Service
	layouts *LayoutService
}

func NewHandler(service *Service, layouts *LayoutService) *Handler {
	return &Handler{service: service, layouts: layouts}
}

func (h *Handler) GetGrid(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]

	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid year", "'year' must be an integer")
			return
		}
		year = parsed
	}

	grid, err := h.service.Grid(r.Context(), viewID, year)
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

func (h *Handler) GetLayout(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]
	rest.WriteJSON(w, http.StatusOK, h.layouts.Metrics(viewID))
}

func (h *Handler) PostMeasurements(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]
	var m Measurement
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	h.layouts.Submit(viewID, m)
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) DeleteLayout(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]
	h.layouts.Teardown(viewID)
	w.WriteHeader(http.StatusNoContent)
}
