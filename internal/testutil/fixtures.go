package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NumberedItems returns n items named "<prefix>-1" .. "<prefix>-n" with the
// default detail body.
func NumberedItems(prefix string, n int) []CollectionItem {
	items := make([]CollectionItem, n)
	for i := range items {
		items[i] = CollectionItem{Name: fmt.Sprintf("%s-%d", prefix, i+1)}
	}
	return items
}

// PokemonDetail returns a /pokemon/{id} body shaped like the live API,
// trimmed to the keys the client reads plus a few it ignores.
func PokemonDetail(id int, name string, moves ...string) string {
	type named struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	type move struct {
		Move named `json:"move"`
	}

	ms := make([]move, 0, len(moves))
	for i, m := range moves {
		ms = append(ms, move{Move: named{Name: m, URL: fmt.Sprintf("https://pokeapi.co/api/v2/move/%d/", i+1)}})
	}

	body := map[string]any{
		"id":              id,
		"name":            name,
		"height":          7,
		"weight":          69,
		"base_experience": 64,
		"order":           id,
		"is_default":      true,
		"species":         named{Name: name, URL: fmt.Sprintf("https://pokeapi.co/api/v2/pokemon-species/%d/", id)},
		"moves":           ms,
		"sprites":         map[string]any{"front_default": nil},
	}
	return mustJSON(body)
}

// GenerationDetail returns a /generation/{id} body shaped like the live API.
func GenerationDetail(id int, name, region string, species, abilities, moves []string) string {
	type named struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	}
	list := func(kind string, names []string) []named {
		out := make([]named, 0, len(names))
		for i, n := range names {
			out = append(out, named{Name: n, URL: fmt.Sprintf("https://pokeapi.co/api/v2/%s/%d/", kind, i+1)})
		}
		return out
	}

	body := map[string]any{
		"id":              id,
		"name":            name,
		"main_region":     named{Name: region, URL: fmt.Sprintf("https://pokeapi.co/api/v2/region/%d/", id)},
		"pokemon_species": list("pokemon-species", species),
		"abilities":       list("ability", abilities),
		"moves":           list("move", moves),
		"types":           list("type", []string{"normal"}),
		"version_groups":  list("version-group", nil),
	}
	return mustJSON(body)
}

// NewHealthyResponse creates a standard 200 OK JSON response.
func NewHealthyResponse(data string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       data,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewNotFoundResponse creates a 404 Not Found response.
func NewNotFoundResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusNotFound,
		Body:       `{"detail": "Not found."}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewBadRequestResponse creates a 400 Bad Request response.
func NewBadRequestResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusBadRequest,
		Body:       `{"detail": "Bad request."}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewSlowResponse creates a 200 response delivered after delay.
func NewSlowResponse(data string, delay time.Duration) MockResponse {
	resp := NewHealthyResponse(data)
	resp.Delay = delay
	return resp
}

// NewHangupHandler creates a handler that drops the connection without
// writing a response.
func NewHangupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			panic("testutil: response writer does not support hijacking")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			panic(fmt.Sprintf("testutil: hijack: %v", err))
		}
		conn.Close()
	}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal fixture: %v", err))
	}
	return string(b)
}
