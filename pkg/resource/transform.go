package resource

import (
	"errors"

	"github.com/tidwall/gjson"
)

// Transform builds an instance of t from raw using the mapping registered
// for ctx. Every rule runs before the instance is created; the first failing
// rule aborts the transform with a *ShapeError.
func (r *Registry) Transform(raw gjson.Result, ctx Context, t Type) (*Instance, error) {
	m, ok := r.Lookup(t, ctx)
	if !ok {
		return nil, &ConfigurationError{Type: t, Context: ctx, Message: "no field mapping registered"}
	}

	if !raw.IsObject() {
		return nil, &ShapeError{Type: t, Context: ctx, Err: ErrNotObject}
	}

	values := make(map[string]any, m.Len())
	for _, field := range m.fields {
		v, err := m.rules[field](raw)
		if err != nil {
			return nil, shapeError(t, ctx, field, err)
		}
		values[field] = v
	}

	return newInstance(t, m.fields, values), nil
}

// TransformBytes parses body as JSON and transforms it.
func (r *Registry) TransformBytes(body []byte, ctx Context, t Type) (*Instance, error) {
	if !gjson.ValidBytes(body) {
		// Mapping problems take precedence over payload problems.
		if _, ok := r.Lookup(t, ctx); !ok {
			return nil, &ConfigurationError{Type: t, Context: ctx, Message: "no field mapping registered"}
		}
		return nil, &ShapeError{Type: t, Context: ctx, Err: errors.New("invalid JSON")}
	}
	return r.Transform(gjson.ParseBytes(body), ctx, t)
}

func shapeError(t Type, ctx Context, field string, err error) error {
	var se *ShapeError
	if errors.As(err, &se) {
		out := *se
		if out.Type == "" {
			out.Type = t
		}
		if out.Context == "" {
			out.Context = ctx
		}
		if out.Field == "" {
			out.Field = field
		}
		return &out
	}
	return &ShapeError{Type: t, Context: ctx, Field: field, Err: err}
}
