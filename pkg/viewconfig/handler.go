package viewconfig

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/notecal/notecal/internal/rest"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type createViewDTO struct {
	Name string   `json:"name"`
	Type ViewType `json:"type"`
}

func (h *Handler) ListViews(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) CreateView(w http.ResponseWriter, r *http.Request) {
	var dto createViewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "View name is required", "")
		return
	}
	view, err := h.store.Create(dto.Name, dto.Type)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Failed to create view", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusCreated, view)
}

func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]
	view, err := h.store.Get(viewID)
	if err != nil {
		if errors.Is(err, ErrViewNotFound) {
			rest.WriteError(w, http.StatusNotFound, "View not found", viewID)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, view.Config)
}

// UpdateConfig accepts raw option values and responds with the normalized
// configuration. Malformed values are not an error: they fall back to the
// option's default.
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	view, err := h.store.UpdateConfig(r.Context(), viewID, raw)
	if err != nil {
		if errors.Is(err, ErrViewNotFound) {
			rest.WriteError(w, http.StatusNotFound, "View not found", viewID)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, view.Config)
}

func (h *Handler) GetOptionsSchema(w http.ResponseWriter, r *http.Request) {
	viewID := mux.Vars(r)["viewId"]
	view, err := h.store.Get(viewID)
	if err != nil {
		if errors.Is(err, ErrViewNotFound) {
			rest.WriteError(w, http.StatusNotFound, "View not found", viewID)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	rest.WriteJSON(w, http.StatusOK, SchemaFor(view.Type))
}
