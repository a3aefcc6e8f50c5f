package rest

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON body returned by handlers on client errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("failed to encode response: %v", err)
	}
}

// WriteError writes an ErrorResponse with the given status code.
func WriteError(w http.ResponseWriter, status int, message, details string) {
	WriteJSON(w, status, ErrorResponse{Error: message, Details: details})
}

// FrontendHandler serves the static frontend, falling back to the index file
// for client-side routes.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, h.index))
		return
	}
	http.ServeFile(w, r, path)
}
