// Package testutil provides testing utilities for the pokedex client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// CollectionItem is one entry of a mock collection. Its id is its 1-based
// position in the collection.
type CollectionItem struct {
	Name string
	// Detail is the single-item JSON body; {"id": .., "name": ..} when empty.
	Detail string
}

// RecordedRequest is a request seen by the mock server.
type RecordedRequest struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// MockAPI is a configurable mock PokeAPI server for testing.
//
// Collections registered with SetCollection answer list requests with the
// {count, next, previous, results} envelope honoring limit and offset, and
// detail requests at <path>/<id> or <path>/<name>. Handlers registered with
// SetHandler or SetResponse take precedence for their exact path.
type MockAPI struct {
	server      *httptest.Server
	mu          sync.RWMutex
	handlers    map[string]http.HandlerFunc
	collections map[string][]CollectionItem

	// Tracking
	RequestCount      int
	LastRequestHeader http.Header
	requests          []RecordedRequest
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers:    make(map[string]http.HandlerFunc),
		collections: make(map[string][]CollectionItem),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.LastRequestHeader = r.Header.Clone()
		mock.requests = append(mock.requests, RecordedRequest{
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		mock.mu.Unlock()

		// Check for custom handler
		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.collectionHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.CloseClientConnections()
	m.server.Close()
}

// Reset clears all tracking state.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LastRequestHeader = nil
	m.requests = nil
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			select {
			case <-time.After(resp.Delay):
			case <-r.Context().Done():
				return
			}
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetCollection registers a collection served at path, e.g. "/pokemon".
func (m *MockAPI) SetCollection(path string, items []CollectionItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[cleanPath(path)] = items
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// Requests returns the recorded requests in arrival order.
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestsTo returns the recorded requests for one path.
func (m *MockAPI) RequestsTo(p string) []RecordedRequest {
	p = cleanPath(p)
	var out []RecordedRequest
	for _, req := range m.Requests() {
		if cleanPath(req.Path) == p {
			out = append(out, req)
		}
	}
	return out
}

// CountRequests returns the number of list requests for path that asked for
// the collection size only (limit=-1&offset=-1).
func (m *MockAPI) CountRequests(p string) int {
	n := 0
	for _, req := range m.RequestsTo(p) {
		if req.Query.Get("limit") == "-1" && req.Query.Get("offset") == "-1" {
			n++
		}
	}
	return n
}

func (m *MockAPI) collectionHandler(w http.ResponseWriter, r *http.Request) {
	p := cleanPath(r.URL.Path)

	m.mu.RLock()
	items, isList := m.collections[p]
	parentItems, isDetail := m.collections[path.Dir(p)]
	m.mu.RUnlock()

	switch {
	case isList:
		m.writePage(w, r, p, items)
	case isDetail:
		writeDetail(w, path.Base(p), parentItems)
	default:
		writeJSON(w, http.StatusNotFound, `{"detail": "Not found."}`)
	}
}

type pageEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  []pageEntry `json:"results"`
}

func (m *MockAPI) writePage(w http.ResponseWriter, r *http.Request, p string, items []CollectionItem) {
	limit, err := queryInt(r, "limit", 20)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, `{"detail": "invalid limit"}`)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, `{"detail": "invalid offset"}`)
		return
	}

	out := page{Count: len(items), Results: []pageEntry{}}

	// Size-only request
	if limit == -1 && offset == -1 {
		writeValue(w, out)
		return
	}
	if limit < 0 || offset < 0 {
		writeJSON(w, http.StatusBadRequest, `{"detail": "limit and offset must not be negative"}`)
		return
	}

	base := m.URL() + p
	for i := offset; i < len(items) && i < offset+limit; i++ {
		out.Results = append(out.Results, pageEntry{
			Name: items[i].Name,
			URL:  fmt.Sprintf("%s/%d/", base, i+1),
		})
	}
	if offset+limit < len(items) {
		next := fmt.Sprintf("%s?offset=%d&limit=%d", base, offset+limit, limit)
		out.Next = &next
	}
	if offset > 0 {
		prev := fmt.Sprintf("%s?offset=%d&limit=%d", base, max(offset-limit, 0), limit)
		out.Previous = &prev
	}

	writeValue(w, out)
}

func writeDetail(w http.ResponseWriter, key string, items []CollectionItem) {
	for i, item := range items {
		id := i + 1
		if key != strconv.Itoa(id) && key != item.Name {
			continue
		}
		body := item.Detail
		if body == "" {
			b, _ := json.Marshal(map[string]any{"id": id, "name": item.Name})
			body = string(b)
		}
		writeJSON(w, http.StatusOK, body)
		return
	}
	writeJSON(w, http.StatusNotFound, `{"detail": "Not found."}`)
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func writeValue(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, `{"detail": "encode failed"}`)
		return
	}
	writeJSON(w, http.StatusOK, string(b))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func cleanPath(p string) string {
	p = "/" + strings.Trim(p, "/")
	return path.Clean(p)
}
