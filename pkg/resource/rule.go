package resource

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Rule extracts one field value from a raw payload.
type Rule func(raw gjson.Result) (any, error)

var trailingID = regexp.MustCompile(`/(\d+)/?$`)

// Key reads the top-level key name. When name is absent, Key also tries its
// snake_case form, so a field declared as baseExperience is filled from a
// base_experience key. A key absent in both forms leaves the field unset.
func Key(name string) Rule {
	snake := camelToSnake(name)
	return func(raw gjson.Result) (any, error) {
		res := raw.Get(gjson.Escape(name))
		if !res.Exists() && snake != name {
			res = raw.Get(gjson.Escape(snake))
		}
		if !res.Exists() {
			return nil, nil
		}
		return normalize(res), nil
	}
}

// Path reads the value at a gjson path. The value must be present.
func Path(path string) Rule {
	return func(raw gjson.Result) (any, error) {
		res, err := requirePath(raw, path)
		if err != nil {
			return nil, err
		}
		return normalize(res), nil
	}
}

// String reads the value at path as a string.
func String(path string) Rule {
	return func(raw gjson.Result) (any, error) {
		res, err := requirePath(raw, path)
		if err != nil {
			return nil, err
		}
		if res.IsObject() || res.IsArray() {
			return nil, fmt.Errorf("%w: %q is not a scalar", ErrInvalidValue, path)
		}
		s, err := cast.ToStringE(res.Value())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidValue, path, err)
		}
		return s, nil
	}
}

// Int reads the value at path as an int.
func Int(path string) Rule {
	return func(raw gjson.Result) (any, error) {
		res, err := requirePath(raw, path)
		if err != nil {
			return nil, err
		}
		n, err := cast.ToIntE(res.Value())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidValue, path, err)
		}
		return n, nil
	}
}

// Strings reads the array at path as a list of strings, e.g.
// "abilities.#.name".
func Strings(path string) Rule {
	return func(raw gjson.Result) (any, error) {
		res, err := requirePath(raw, path)
		if err != nil {
			return nil, err
		}
		if !res.IsArray() {
			return nil, fmt.Errorf("%w: %q is not an array", ErrInvalidValue, path)
		}
		items := res.Array()
		out := make([]string, 0, len(items))
		for _, item := range items {
			s, err := cast.ToStringE(item.Value())
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrInvalidValue, path, err)
			}
			out = append(out, s)
		}
		return out, nil
	}
}

// IDFromURL parses the trailing numeric segment of the URL at path,
// e.g. "https://pokeapi.co/api/v2/pokemon/25/" yields 25.
func IDFromURL(path string) Rule {
	return func(raw gjson.Result) (any, error) {
		res, err := requirePath(raw, path)
		if err != nil {
			return nil, err
		}
		m := trailingID.FindStringSubmatch(res.String())
		if m == nil {
			return nil, fmt.Errorf("%w: %q has no numeric id segment: %q", ErrInvalidValue, path, res.String())
		}
		id, err := cast.ToIntE(m[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidValue, path, err)
		}
		return id, nil
	}
}

func requirePath(raw gjson.Result, path string) (gjson.Result, error) {
	res := raw.Get(path)
	if !res.Exists() {
		return res, fmt.Errorf("%w at %q", ErrMissingValue, path)
	}
	return res, nil
}

// normalize converts a gjson result into a plain Go value. Whole numbers
// become int so instances compare naturally with typed fields.
func normalize(res gjson.Result) any {
	switch res.Type {
	case gjson.Null:
		return nil
	case gjson.Number:
		f := res.Float()
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int(res.Int())
		}
		return f
	case gjson.String:
		return res.Str
	case gjson.True, gjson.False:
		return res.Bool()
	default:
		return res.Value()
	}
}

func camelToSnake(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if unicode.IsUpper(r) {
			b.WriteByte('_')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
