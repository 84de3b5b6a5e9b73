package resource

import (
	"sort"
	"strings"
	"sync"
)

// Type identifies a resource type by name.
type Type string

// Context selects which API response shape a mapping applies to.
type Context string

const (
	// Single is the context of a single-item fetch (GET /<path>/<id>).
	Single Context = "single"

	// Page is the context of an entry inside a page fetch (GET /<path>).
	Page Context = "page"
)

// Default is the process-wide registry used by resource definitions.
var Default = NewRegistry()

type mappingKey struct {
	typ Type
	ctx Context
}

// Mapping is the set of field rules registered for one type and context.
// Fields keep their registration order.
type Mapping struct {
	fields []string
	rules  map[string]Rule
}

// Fields returns the mapped field names in registration order.
func (m Mapping) Fields() []string {
	out := make([]string, len(m.fields))
	copy(out, m.fields)
	return out
}

// Rule returns the rule registered for field.
func (m Mapping) Rule(field string) (Rule, bool) {
	r, ok := m.rules[field]
	return r, ok
}

// Len returns the number of mapped fields.
func (m Mapping) Len() int {
	return len(m.fields)
}

func (m Mapping) clone() Mapping {
	rules := make(map[string]Rule, len(m.rules))
	for k, v := range m.rules {
		rules[k] = v
	}
	return Mapping{fields: m.Fields(), rules: rules}
}

// Registry stores field mappings and remote paths per resource type.
// It is written while types are defined and read afterwards.
type Registry struct {
	mu       sync.RWMutex
	mappings map[mappingKey]*Mapping
	paths    map[Type]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mappings: make(map[mappingKey]*Mapping),
		paths:    make(map[Type]string),
	}
}

// Register adds or replaces the rule for field in the mapping of (t, ctx).
// A nil rule registers a passthrough of the field's own key.
func (r *Registry) Register(t Type, ctx Context, field string, rule Rule) {
	if rule == nil {
		rule = Key(field)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := mappingKey{typ: t, ctx: ctx}
	m, ok := r.mappings[key]
	if !ok {
		m = &Mapping{rules: make(map[string]Rule)}
		r.mappings[key] = m
	}
	if _, exists := m.rules[field]; !exists {
		m.fields = append(m.fields, field)
	}
	m.rules[field] = rule
}

// Lookup returns a copy of the mapping registered for (t, ctx).
func (r *Registry) Lookup(t Type, ctx Context) (Mapping, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mappings[mappingKey{typ: t, ctx: ctx}]
	if !ok {
		return Mapping{}, false
	}
	return m.clone(), true
}

// BindPath binds t to its remote path, e.g. "/pokemon".
func (r *Registry) BindPath(t Type, path string) error {
	if strings.TrimSpace(string(t)) == "" {
		return &ConfigurationError{Type: t, Message: "type name must not be empty"}
	}

	normalized := normalizePath(path)
	if normalized == "" {
		return &ConfigurationError{Type: t, Message: "remote path must not be empty"}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths[t] = normalized
	return nil
}

// ResolvePath returns the remote path bound to t.
func (r *Registry) ResolvePath(t Type) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	path, ok := r.paths[t]
	if !ok {
		return "", &ConfigurationError{Type: t, Message: "no remote path bound"}
	}
	return path, nil
}

// Types returns every type with a bound path, sorted by name.
func (r *Registry) Types() []Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Type, 0, len(r.paths))
	for t := range r.paths {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// normalizePath trims surrounding slashes and whitespace and prefixes a
// single slash. It returns "" for an empty path.
func normalizePath(path string) string {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return ""
	}
	return "/" + trimmed
}
