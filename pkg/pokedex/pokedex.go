// Package pokedex is a typed client for the Pokémon and generation
// resources of PokeAPI.
//
//	dex, err := pokedex.New(pokedex.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer dex.Close()
//
//	pikachu, err := dex.Pokemon.GetOne(ctx, "pikachu")
//	gens, err := dex.Generation.GetAll(ctx)
package pokedex

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Sternrassler/pokedex-client/pkg/client"
	"github.com/Sternrassler/pokedex-client/pkg/resource"
)

// Name and Version identify the client in request headers.
const (
	Name    = "pokedex-client"
	Version = "0.1.0"
)

// DefaultBaseURL is the public PokeAPI endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// DefaultConfig returns the client configuration used when talking to the
// public API.
func DefaultConfig() client.Config {
	cfg := client.DefaultConfig(DefaultBaseURL, Name)
	cfg.ClientName = Name
	cfg.ClientVersion = Version
	return cfg
}

// Pokedex gives access to all supported resources through one transport.
type Pokedex struct {
	Pokemon    *client.Typed[Pokemon]
	Generation *client.Typed[Generation]

	client    *client.Client
	resources map[string]*client.ResourceClient
}

// New creates a Pokedex. Unset header fields fall back to the package
// defaults.
func New(cfg client.Config) (*Pokedex, error) {
	if cfg.ClientName == "" {
		cfg.ClientName = Name
	}
	if cfg.ClientVersion == "" {
		cfg.ClientVersion = Version
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = Name
	}

	c, err := client.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("pokedex: %w", err)
	}

	pokemon, err := client.NewResourceClient(c, resource.Default, PokemonType)
	if err != nil {
		return nil, fmt.Errorf("pokedex: %w", err)
	}
	generation, err := client.NewResourceClient(c, resource.Default, GenerationType)
	if err != nil {
		return nil, fmt.Errorf("pokedex: %w", err)
	}

	return &Pokedex{
		Pokemon:    client.NewTyped[Pokemon](pokemon),
		Generation: client.NewTyped[Generation](generation),
		client:     c,
		resources: map[string]*client.ResourceClient{
			resourceKey(pokemon):    pokemon,
			resourceKey(generation): generation,
		},
	}, nil
}

// Resource returns the untyped client for a resource by its path name,
// e.g. "pokemon" or "generation".
func (p *Pokedex) Resource(name string) (*client.ResourceClient, bool) {
	rc, ok := p.resources[strings.ToLower(strings.Trim(name, "/"))]
	return rc, ok
}

// Resources returns the sorted path names of all resources.
func (p *Pokedex) Resources() []string {
	out := make([]string, 0, len(p.resources))
	for name := range p.resources {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Close releases the underlying transport.
func (p *Pokedex) Close() error {
	return p.client.Close()
}

func resourceKey(rc *client.ResourceClient) string {
	return strings.TrimPrefix(rc.Path(), "/")
}
