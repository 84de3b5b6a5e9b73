package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const berryPayload = `{
	"id": 1,
	"name": "cheri",
	"growth_time": 3,
	"smoothness": 25.5,
	"natural_gift_power": null,
	"firmness": {"name": "soft", "url": "https://pokeapi.co/api/v2/berry-firmness/2/"},
	"flavors": [
		{"flavor": {"name": "spicy"}, "potency": 10},
		{"flavor": {"name": "dry"}, "potency": 0}
	],
	"url": "https://pokeapi.co/api/v2/berry/1/"
}`

func TestRules(t *testing.T) {
	raw := gjson.Parse(berryPayload)

	tests := []struct {
		name    string
		rule    Rule
		want    any
		wantErr error
	}{
		{name: "key int", rule: Key("id"), want: 1},
		{name: "key string", rule: Key("name"), want: "cheri"},
		{name: "key snake case fallback", rule: Key("growthTime"), want: 3},
		{name: "key float", rule: Key("smoothness"), want: 25.5},
		{name: "key null", rule: Key("naturalGiftPower"), want: nil},
		{name: "key absent", rule: Key("size"), want: nil},
		{name: "path object", rule: Path("firmness.name"), want: "soft"},
		{name: "path missing", rule: Path("firmness.color"), wantErr: ErrMissingValue},
		{name: "string", rule: String("firmness.name"), want: "soft"},
		{name: "string from number", rule: String("growth_time"), want: "3"},
		{name: "string from object", rule: String("firmness"), wantErr: ErrInvalidValue},
		{name: "string missing", rule: String("item.name"), wantErr: ErrMissingValue},
		{name: "int", rule: Int("flavors.0.potency"), want: 10},
		{name: "int from string", rule: Int("name"), wantErr: ErrInvalidValue},
		{name: "strings", rule: Strings("flavors.#.flavor.name"), want: []string{"spicy", "dry"}},
		{name: "strings not array", rule: Strings("name"), wantErr: ErrInvalidValue},
		{name: "strings missing", rule: Strings("moves.#.name"), wantErr: ErrMissingValue},
		{name: "id from url", rule: IDFromURL("url"), want: 1},
		{name: "id from nested url", rule: IDFromURL("firmness.url"), want: 2},
		{name: "id from url without segment", rule: IDFromURL("name"), wantErr: ErrInvalidValue},
		{name: "id from missing url", rule: IDFromURL("href"), wantErr: ErrMissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.rule(raw)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIDFromURL_WithoutTrailingSlash(t *testing.T) {
	got, err := IDFromURL("url")(gjson.Parse(`{"url": "http://127.0.0.1:8080/pokemon/151"}`))
	require.NoError(t, err)
	assert.Equal(t, 151, got)
}

func TestStrings_EmptyArray(t *testing.T) {
	got, err := Strings("moves.#.move.name")(gjson.Parse(`{"moves": []}`))
	require.NoError(t, err)
	assert.Equal(t, []string{}, got)
}

func TestCamelToSnake(t *testing.T) {
	assert.Equal(t, "example_string_in_camel_case", camelToSnake("exampleStringInCamelCase"))
	assert.Equal(t, "example_string_in_snake_case", camelToSnake("example_string_in_snake_case"))
	assert.Equal(t, "base_experience", camelToSnake("baseExperience"))
}
