package viewconfig

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func newHandlerRouter(t *testing.T) (*mux.Router, *Store) {
	t.Helper()
	store := newTestStore(t, nil)
	handler := NewHandler(store)
	r := mux.NewRouter()
	r.HandleFunc("/api/view", handler.ListViews).Methods("GET")
	r.HandleFunc("/api/view", handler.CreateView).Methods("POST")
	r.HandleFunc("/api/view/{viewId}/config", handler.GetConfig).Methods("GET")
	r.HandleFunc("/api/view/{viewId}/config", handler.UpdateConfig).Methods("PUT")
	r.HandleFunc("/api/view/{viewId}/options-schema", handler.GetOptionsSchema).Methods("GET")
	return r, store
}

func TestHandler_CreateAndListViews(t *testing.T) {
	// given
	router, _ := newHandlerRouter(t)

	// when
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest("POST", "/api/view",
		strings.NewReader(`{"name":"Editorial","type":"month"}`)))

	// then
	assert.Equal(t, http.StatusCreated, res.Code)
	var created View
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, ViewTypeMonth, created.Type)

	list := httptest.NewRecorder()
	router.ServeHTTP(list, httptest.NewRequest("GET", "/api/view", nil))
	assert.Equal(t, http.StatusOK, list.Code)
	var views []View
	assert.NoError(t, json.Unmarshal(list.Body.Bytes(), &views))
	assert.Len(t, views, 1)
}

func TestHandler_CreateViewValidation(t *testing.T) {
	router, _ := newHandlerRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "missing name", body: `{"type":"month"}`},
		{name: "unknown type", body: `{"name":"X","type":"week"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := httptest.NewRecorder()
			router.ServeHTTP(res, httptest.NewRequest("POST", "/api/view", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, res.Code)
		})
	}
}

func TestHandler_UpdateConfigRespondsWithNormalizedValues(t *testing.T) {
	// given
	router, store := newHandlerRouter(t)
	view, err := store.Create("Month", ViewTypeMonth)
	assert.NoError(t, err)

	// when raw values include a percentage-scale opacity
	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest("PUT", "/api/view/"+view.ID+"/config",
		strings.NewReader(`{"startDateProperty":"due","overlayOpacity":"70"}`)))

	// then the response carries the normalized configuration
	assert.Equal(t, http.StatusOK, res.Code)
	var cfg DisplayConfig
	assert.NoError(t, json.Unmarshal(res.Body.Bytes(), &cfg))
	assert.Equal(t, "due", cfg.StartDateProperty)
	assert.InDelta(t, 0.7, cfg.OverlayOpacity, 0.0001)
}

func TestHandler_GetConfigAndSchema(t *testing.T) {
	router, store := newHandlerRouter(t)
	view, err := store.Create("Year", ViewTypeYear)
	assert.NoError(t, err)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, httptest.NewRequest("GET", "/api/view/"+view.ID+"/config", nil))
	assert.Equal(t, http.StatusOK, res.Code)

	schemaRes := httptest.NewRecorder()
	router.ServeHTTP(schemaRes, httptest.NewRequest("GET", "/api/view/"+view.ID+"/options-schema", nil))
	assert.Equal(t, http.StatusOK, schemaRes.Code)
	var schema OptionsSchema
	assert.NoError(t, json.Unmarshal(schemaRes.Body.Bytes(), &schema))
	assert.NotEmpty(t, schema.Groups)
}

func TestHandler_UnknownViewIs404(t *testing.T) {
	router, _ := newHandlerRouter(t)

	for _, req := range []*http.Request{
		httptest.NewRequest("GET", "/api/view/nope/config", nil),
		httptest.NewRequest("PUT", "/api/view/nope/config", strings.NewReader(`{}`)),
		httptest.NewRequest("GET", "/api/view/nope/options-schema", nil),
	} {
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)
		assert.Equal(t, http.StatusNotFound, res.Code, "%s %s", req.Method, req.URL.Path)
	}
}
