package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/metrics"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
	"github.com/Sternrassler/pokedex-client/pkg/resource"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
)

type handler struct {
	dex    *pokedex.Pokedex
	logger zerolog.Logger
}

// NewRouter builds the proxy routes.
func NewRouter(dex *pokedex.Pokedex, logger zerolog.Logger) *mux.Router {
	h := &handler{dex: dex, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("", h.listResources).Methods(http.MethodGet)
	api.HandleFunc("/{resource}", h.getMany).Methods(http.MethodGet)
	api.HandleFunc("/{resource}/count", h.count).Methods(http.MethodGet)
	api.HandleFunc("/{resource}/{idOrName}", h.getOne).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

type listResponse struct {
	Resource string               `json:"resource"`
	Limit    int                  `json:"limit,omitempty"`
	Offset   int                  `json:"offset,omitempty"`
	Results  []*resource.Instance `json:"results"`
}

func (h *handler) listResources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"resources": h.dex.Resources()})
}

func (h *handler) getMany(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.resource(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	if cast.ToBool(q.Get("all")) {
		items, err := rc.GetAll(r.Context())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, listResponse{Resource: mux.Vars(r)["resource"], Results: items})
		return
	}

	limit, err := intParam(q.Get("limit"), 0)
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "invalid limit")
		return
	}
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil {
		writeErrorBody(w, http.StatusBadRequest, "invalid offset")
		return
	}

	items, err := rc.GetMany(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Resource: mux.Vars(r)["resource"],
		Limit:    limit,
		Offset:   offset,
		Results:  items,
	})
}

func (h *handler) count(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.resource(w, r)
	if !ok {
		return
	}

	n, err := rc.Count(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": n})
}

func (h *handler) getOne(w http.ResponseWriter, r *http.Request) {
	rc, ok := h.resource(w, r)
	if !ok {
		return
	}

	inst, err := rc.GetOne(r.Context(), mux.Vars(r)["idOrName"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (h *handler) resource(w http.ResponseWriter, r *http.Request) (*client.ResourceClient, bool) {
	name := mux.Vars(r)["resource"]
	rc, ok := h.dex.Resource(name)
	if !ok {
		writeErrorBody(w, http.StatusNotFound, fmt.Sprintf("unknown resource %q", name))
		return nil, false
	}
	return rc, true
}

// writeError maps client errors to HTTP statuses.
func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	event := h.logger.Warn()
	if status == http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.Err(err).
		Str("path", r.URL.Path).
		Int("status", status).
		Msg("Proxy request failed")

	writeErrorBody(w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case client.IsNotFound(err):
		return http.StatusNotFound
	case client.IsRequestError(err):
		return http.StatusBadRequest
	case client.IsTimeout(err):
		return http.StatusGatewayTimeout
	case client.IsNetworkError(err), client.IsServerError(err), resource.IsShapeError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func intParam(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	return cast.ToIntE(s)
}

func writeErrorBody(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
