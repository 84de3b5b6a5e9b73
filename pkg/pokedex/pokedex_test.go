package pokedex

import (
	"context"
	"testing"
	"time"

	"github.com/Sternrassler/pokedex-client/internal/testutil"
	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPokedex(t *testing.T) (*Pokedex, *testutil.MockAPI) {
	t.Helper()

	mock := testutil.NewMockAPI()
	t.Cleanup(mock.Close)

	pokemon := []testutil.CollectionItem{
		{Name: "bulbasaur", Detail: testutil.PokemonDetail(1, "bulbasaur", "razor-wind", "swords-dance")},
		{Name: "ivysaur", Detail: testutil.PokemonDetail(2, "ivysaur", "cut")},
		{Name: "venusaur", Detail: testutil.PokemonDetail(3, "venusaur")},
	}
	mock.SetCollection("/pokemon", pokemon)

	generations := []testutil.CollectionItem{
		{Name: "generation-i", Detail: testutil.GenerationDetail(1, "generation-i", "kanto",
			[]string{"bulbasaur", "ivysaur"}, nil, []string{"pound", "karate-chop"})},
		{Name: "generation-ii", Detail: testutil.GenerationDetail(2, "generation-ii", "johto",
			[]string{"chikorita"}, nil, []string{"sketch"})},
	}
	mock.SetCollection("/generation", generations)

	cfg := DefaultConfig()
	cfg.BaseURL = mock.URL()

	dex, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { dex.Close() })

	return dex, mock
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://pokeapi.co/api/v2", cfg.BaseURL)
	assert.Equal(t, time.Second, cfg.Timeout)
	assert.Equal(t, Name, cfg.UserAgent)
	assert.Equal(t, Name, cfg.ClientName)
	assert.Equal(t, Version, cfg.ClientVersion)
}

func TestNew_FillsHeaderDefaults(t *testing.T) {
	mock := testutil.NewMockAPI()
	defer mock.Close()
	mock.SetCollection("/pokemon", testutil.NumberedItems("pokemon", 1))

	dex, err := New(client.Config{BaseURL: mock.URL(), Timeout: time.Second})
	require.NoError(t, err)

	_, err = dex.Pokemon.GetMany(context.Background(), 1, 0)
	require.NoError(t, err)

	assert.Equal(t, Name, mock.LastRequestHeader.Get("User-Agent"))
	assert.Equal(t, Name, mock.LastRequestHeader.Get("X-API-Client-Name"))
	assert.Equal(t, Version, mock.LastRequestHeader.Get("X-API-Client-Version"))
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := New(client.Config{BaseURL: "://bad", Timeout: time.Second})
	assert.Error(t, err)
}

func TestPokemon_GetOne(t *testing.T) {
	dex, _ := newMockPokedex(t)

	p, err := dex.Pokemon.GetOne(context.Background(), "bulbasaur")
	require.NoError(t, err)

	assert.Equal(t, Pokemon{
		ID:             1,
		Name:           "bulbasaur",
		Height:         7,
		Weight:         69,
		BaseExperience: 64,
		Order:          1,
		Species:        "bulbasaur",
		Moves:          []string{"razor-wind", "swords-dance"},
	}, *p)
}

func TestPokemon_GetMany(t *testing.T) {
	dex, _ := newMockPokedex(t)

	page, err := dex.Pokemon.GetMany(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)

	assert.Equal(t, Pokemon{ID: 2, Name: "ivysaur"}, *page[0])
	assert.Equal(t, Pokemon{ID: 3, Name: "venusaur"}, *page[1])
}

func TestPokemon_GetManyLastOne(t *testing.T) {
	dex, mock := newMockPokedex(t)

	page, err := dex.Pokemon.GetMany(context.Background(), 1, -1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "venusaur", page[0].Name)
	assert.Equal(t, 1, mock.CountRequests("/pokemon"))
}

func TestPokemon_NotFound(t *testing.T) {
	dex, _ := newMockPokedex(t)

	p, err := dex.Pokemon.GetOne(context.Background(), "missingno")
	assert.Nil(t, p)
	assert.True(t, client.IsNotFound(err))
}

func TestGeneration(t *testing.T) {
	dex, _ := newMockPokedex(t)
	ctx := context.Background()

	g, err := dex.Generation.GetOneByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, Generation{
		ID:         1,
		Name:       "generation-i",
		MainRegion: "kanto",
		Species:    []string{"bulbasaur", "ivysaur"},
		Abilities:  []string{},
		Moves:      []string{"pound", "karate-chop"},
	}, *g)

	all, err := dex.Generation.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "generation-ii", all[1].Name)
	assert.Equal(t, 2, all[1].ID)

	count, err := dex.Generation.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestResource(t *testing.T) {
	dex, _ := newMockPokedex(t)

	assert.Equal(t, []string{"generation", "pokemon"}, dex.Resources())

	rc, ok := dex.Resource("Pokemon")
	require.True(t, ok)
	assert.Equal(t, PokemonType, rc.Type())

	rc, ok = dex.Resource("/generation")
	require.True(t, ok)
	assert.Equal(t, GenerationType, rc.Type())

	_, ok = dex.Resource("berry")
	assert.False(t, ok)
}

func TestDefinitions(t *testing.T) {
	reg := resource.NewRegistry()
	definePokemon(reg)
	defineGeneration(reg)

	tests := []struct {
		typ    resource.Type
		ctx    resource.Context
		fields []string
	}{
		{PokemonType, resource.Single, []string{"id", "name", "height", "weight", "baseExperience", "order", "species", "moves"}},
		{PokemonType, resource.Page, []string{"id", "name"}},
		{GenerationType, resource.Single, []string{"id", "name", "mainRegion", "species", "abilities", "moves"}},
		{GenerationType, resource.Page, []string{"id", "name"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ)+"/"+string(tt.ctx), func(t *testing.T) {
			m, ok := reg.Lookup(tt.typ, tt.ctx)
			require.True(t, ok)
			assert.Equal(t, tt.fields, m.Fields())
		})
	}

	inst, err := reg.TransformBytes([]byte(`{"name": "bulbasaur", "url": "https://pokeapi.co/api/v2/pokemon/1/"}`), resource.Page, PokemonType)
	require.NoError(t, err)
	id, _ := inst.ID()
	assert.Equal(t, 1, id)
}
