package resource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newBerryRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := NewRegistry()
	MustDefine(reg, "Berry", "/berry").
		Both("id", nil, IDFromURL("url")).
		Both("name", nil, nil).
		Single("growthTime", nil).
		Single("firmness", String("firmness.name")).
		Single("flavors", Strings("flavors.#.flavor.name"))
	return reg
}

func TestTransform_Single(t *testing.T) {
	reg := newBerryRegistry(t)

	inst, err := reg.TransformBytes([]byte(berryPayload), Single, "Berry")
	require.NoError(t, err)

	assert.Equal(t, Type("Berry"), inst.Type())
	assert.Equal(t, []string{"id", "name", "growthTime", "firmness", "flavors"}, inst.Fields())

	for _, field := range inst.Fields() {
		assert.True(t, inst.Has(field), "field %q should be set", field)
	}

	id, ok := inst.ID()
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, "cheri", inst.Name())

	growth, _ := inst.Get("growthTime")
	assert.Equal(t, 3, growth)

	flavors, _ := inst.Get("flavors")
	assert.Equal(t, []string{"spicy", "dry"}, flavors)
}

func TestTransform_PageStub(t *testing.T) {
	reg := newBerryRegistry(t)

	stub := gjson.Parse(`{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"}`)
	inst, err := reg.Transform(stub, Page, "Berry")
	require.NoError(t, err)

	id, ok := inst.ID()
	require.True(t, ok)
	assert.Equal(t, 1, id)
	assert.Equal(t, "bulbasaur", inst.Name())
	assert.False(t, inst.Has("firmness"))
}

func TestTransform_MissingNestedKey(t *testing.T) {
	reg := newBerryRegistry(t)

	_, err := reg.TransformBytes([]byte(`{"id": 1, "name": "cheri", "flavors": []}`), Single, "Berry")

	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, Type("Berry"), shapeErr.Type)
	assert.Equal(t, Single, shapeErr.Context)
	assert.Equal(t, "firmness", shapeErr.Field)
	assert.ErrorIs(t, err, ErrMissingValue)
}

func TestTransform_UnexpectedPayloads(t *testing.T) {
	reg := newBerryRegistry(t)

	tests := []struct {
		name string
		body string
		ctx  Context
	}{
		{name: "unexpected object single", body: `{"unexpected": "json"}`, ctx: Single},
		{name: "unexpected object page", body: `{"unexpected": "json"}`, ctx: Page},
		{name: "array", body: `[1, 2, 3]`, ctx: Single},
		{name: "string", body: `"bulbasaur"`, ctx: Page},
		{name: "invalid json", body: `{"id": `, ctx: Single},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := reg.TransformBytes([]byte(tt.body), tt.ctx, "Berry")
			assert.Nil(t, inst)
			assert.True(t, IsShapeError(err), "got %v", err)
		})
	}
}

func TestTransform_NoMapping(t *testing.T) {
	reg := newBerryRegistry(t)
	require.NoError(t, reg.BindPath("Item", "/item"))

	_, err := reg.TransformBytes([]byte(`{"id": 1}`), Single, "Item")
	assert.True(t, IsConfigurationError(err))

	_, err = reg.TransformBytes([]byte(`not json`), Single, "Item")
	assert.True(t, IsConfigurationError(err))

	_, err = reg.Transform(gjson.Parse(`{"id": 1}`), Context("bulk"), "Berry")
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, Context("bulk"), cfgErr.Context)
}

func TestTransform_CustomRuleError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	reg.Register("Berry", Single, "size", func(gjson.Result) (any, error) {
		return nil, boom
	})
	reg.Register("Berry", Single, "id", func(gjson.Result) (any, error) {
		return nil, &ShapeError{Err: ErrInvalidValue}
	})

	_, err := reg.Transform(gjson.Parse(`{}`), Single, "Berry")
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "size", shapeErr.Field)
	assert.ErrorIs(t, err, boom)

	reg.Register("Berry", Single, "size", nil)
	_, err = reg.Transform(gjson.Parse(`{}`), Single, "Berry")
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "id", shapeErr.Field)
	assert.Equal(t, Type("Berry"), shapeErr.Type)
	assert.ErrorIs(t, err, ErrInvalidValue)
}
