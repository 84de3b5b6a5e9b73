package resource

import "fmt"

// Definition declares the mappings of one resource type.
type Definition struct {
	registry *Registry
	typ      Type
}

// Define binds t to path in reg and returns a definition for registering
// its fields.
func Define(reg *Registry, t Type, path string) (*Definition, error) {
	if reg == nil {
		reg = Default
	}
	if err := reg.BindPath(t, path); err != nil {
		return nil, err
	}
	return &Definition{registry: reg, typ: t}, nil
}

// MustDefine is like Define but panics on error. It is meant for package
// level declarations.
func MustDefine(reg *Registry, t Type, path string) *Definition {
	d, err := Define(reg, t, path)
	if err != nil {
		panic(fmt.Sprintf("resource: define %q: %v", t, err))
	}
	return d
}

// Single registers rule for field in the single-item context.
func (d *Definition) Single(field string, rule Rule) *Definition {
	d.registry.Register(d.typ, Single, field, rule)
	return d
}

// Page registers rule for field in the page context.
func (d *Definition) Page(field string, rule Rule) *Definition {
	d.registry.Register(d.typ, Page, field, rule)
	return d
}

// Both registers field in both contexts with their own rules.
func (d *Definition) Both(field string, single, page Rule) *Definition {
	return d.Single(field, single).Page(field, page)
}

// Type returns the defined type.
func (d *Definition) Type() Type {
	return d.typ
}
