package pokedex

import "github.com/Sternrassler/pokedex-client/pkg/resource"

// Resource type names.
const (
	PokemonType    resource.Type = "Pokemon"
	GenerationType resource.Type = "Generation"
)

// Pokemon is a Pokémon as returned by the client. Fields that are only
// available when fetching a single item are zero in page results.
type Pokemon struct {
	ID             int      `mapstructure:"id" json:"id"`
	Name           string   `mapstructure:"name" json:"name"`
	Height         int      `mapstructure:"height" json:"height,omitempty"`
	Weight         int      `mapstructure:"weight" json:"weight,omitempty"`
	BaseExperience int      `mapstructure:"baseExperience" json:"baseExperience,omitempty"`
	Order          int      `mapstructure:"order" json:"order,omitempty"`
	Species        string   `mapstructure:"species" json:"species,omitempty"`
	Moves          []string `mapstructure:"moves" json:"moves,omitempty"`
}

// Generation is a game generation as returned by the client.
type Generation struct {
	ID         int      `mapstructure:"id" json:"id"`
	Name       string   `mapstructure:"name" json:"name"`
	MainRegion string   `mapstructure:"mainRegion" json:"mainRegion,omitempty"`
	Species    []string `mapstructure:"species" json:"species,omitempty"`
	Abilities  []string `mapstructure:"abilities" json:"abilities,omitempty"`
	Moves      []string `mapstructure:"moves" json:"moves,omitempty"`
}

func init() {
	definePokemon(resource.Default)
	defineGeneration(resource.Default)
}

func definePokemon(reg *resource.Registry) {
	resource.MustDefine(reg, PokemonType, "/pokemon").
		Both("id", nil, resource.IDFromURL("url")).
		Both("name", nil, nil).
		Single("height", nil).
		Single("weight", nil).
		Single("baseExperience", nil).
		Single("order", nil).
		Single("species", resource.String("species.name")).
		Single("moves", resource.Strings("moves.#.move.name"))
}

func defineGeneration(reg *resource.Registry) {
	resource.MustDefine(reg, GenerationType, "/generation").
		Both("id", nil, resource.IDFromURL("url")).
		Both("name", nil, nil).
		Single("mainRegion", resource.String("main_region.name")).
		Single("species", resource.Strings("pokemon_species.#.name")).
		Single("abilities", resource.Strings("abilities.#.name")).
		Single("moves", resource.Strings("moves.#.name"))
}
