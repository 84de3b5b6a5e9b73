package resource

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// Instance is a transformed resource: a type tag plus one value per mapped
// field. Unset fields hold nil. Instances are only built by the transformer
// and are not modified afterwards: accessors hand out copies of slice and map
// values.
type Instance struct {
	typ    Type
	fields []string
	values map[string]any
}

func newInstance(t Type, fields []string, values map[string]any) *Instance {
	return &Instance{typ: t, fields: fields, values: values}
}

// Type returns the resource type of the instance.
func (i *Instance) Type() Type {
	return i.typ
}

// Get returns the value of field and whether it is set.
func (i *Instance) Get(field string) (any, bool) {
	v, ok := i.values[field]
	if !ok || v == nil {
		return nil, false
	}
	return cloneValue(v), true
}

// Has reports whether field is set.
func (i *Instance) Has(field string) bool {
	_, ok := i.Get(field)
	return ok
}

// Fields returns the mapped field names in mapping order.
func (i *Instance) Fields() []string {
	out := make([]string, len(i.fields))
	copy(out, i.fields)
	return out
}

// Values returns a copy of the field values, unset fields included as nil.
func (i *Instance) Values() map[string]any {
	out := make(map[string]any, len(i.values))
	for k, v := range i.values {
		out[k] = cloneValue(v)
	}
	return out
}

// ID returns the conventional "id" field.
func (i *Instance) ID() (int, bool) {
	v, ok := i.Get("id")
	if !ok {
		return 0, false
	}
	id, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Name returns the conventional "name" field, or "" when unset.
func (i *Instance) Name() string {
	v, ok := i.Get("name")
	if !ok {
		return ""
	}
	return cast.ToString(v)
}

// Decode copies the field values into out, which must be a pointer to a
// struct. Struct fields are matched by their mapstructure tag.
func (i *Instance) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("resource: decoder for %q: %w", i.typ, err)
	}
	if err := dec.Decode(i.set()); err != nil {
		return fmt.Errorf("resource: decode %q: %w", i.typ, err)
	}
	return nil
}

// MarshalJSON renders the set fields as a JSON object.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.set())
}

// String returns the JSON representation of the set fields.
func (i *Instance) String() string {
	b, err := i.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("%s{<%v>}", i.typ, err)
	}
	return string(b)
}

func (i *Instance) set() map[string]any {
	out := make(map[string]any, len(i.values))
	for k, v := range i.values {
		if v != nil {
			out[k] = cloneValue(v)
		}
	}
	return out
}

// cloneValue deep-copies the container types rules produce.
func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return slices.Clone(t)
	case []int:
		return slices.Clone(t)
	case []any:
		out := make([]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
