//go:build integration

// Package integration runs the client against the live PokeAPI.
//
//	go test -tags integration ./tests/integration/...
//
// POKEDEX_API_BASE_URL points the tests at another deployment.
package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/pokedex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPokedex(t *testing.T) *pokedex.Pokedex {
	t.Helper()

	cfg := pokedex.DefaultConfig()
	cfg.Timeout = 10 * time.Second
	if baseURL := os.Getenv("POKEDEX_API_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	dex, err := pokedex.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { dex.Close() })
	return dex
}

func TestPokemon_GetOne(t *testing.T) {
	dex := newPokedex(t)
	ctx := context.Background()

	byName, err := dex.Pokemon.GetOne(ctx, "bulbasaur")
	require.NoError(t, err)

	assert.Equal(t, 1, byName.ID)
	assert.Equal(t, "bulbasaur", byName.Name)
	assert.Equal(t, "bulbasaur", byName.Species)
	assert.Positive(t, byName.Height)
	assert.Positive(t, byName.Weight)
	assert.NotEmpty(t, byName.Moves)

	byID, err := dex.Pokemon.GetOneByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, byName, byID)
}

func TestPokemon_NotFound(t *testing.T) {
	dex := newPokedex(t)

	_, err := dex.Pokemon.GetOne(context.Background(), "missingno")
	assert.True(t, client.IsNotFound(err))
}

func TestPokemon_GetMany(t *testing.T) {
	dex := newPokedex(t)
	ctx := context.Background()

	page, err := dex.Pokemon.GetMany(ctx, 3, 0)
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, "bulbasaur", page[0].Name)
	assert.Equal(t, 3, page[2].ID)

	tail, err := dex.Pokemon.GetMany(ctx, 2, -2)
	require.NoError(t, err)
	assert.Len(t, tail, 2)
}

func TestGeneration_GetAll(t *testing.T) {
	dex := newPokedex(t)
	ctx := context.Background()

	count, err := dex.Generation.Count(ctx)
	require.NoError(t, err)

	all, err := dex.Generation.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, count)

	first, err := dex.Generation.GetOneByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "generation-i", first.Name)
	assert.Equal(t, "kanto", first.MainRegion)
	assert.Contains(t, first.Species, "bulbasaur")
}
