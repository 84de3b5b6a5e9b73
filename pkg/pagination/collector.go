package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 20

// Config holds collector configuration
type Config struct {
	// PageSize is the limit sent with every page request
	PageSize int

	// Logger receives the collection summary. Defaults to the global logger.
	Logger *zerolog.Logger
}

// DefaultConfig returns the default collector configuration
func DefaultConfig() Config {
	return Config{
		PageSize: DefaultPageSize,
	}
}

// PageFunc fetches the page starting at offset with at most limit items.
type PageFunc[T any] func(ctx context.Context, limit, offset int) ([]T, error)

// Collector assembles a full collection by paging sequentially.
type Collector[T any] struct {
	fetch  PageFunc[T]
	config Config
	logger zerolog.Logger
}

// NewCollector creates a new collector
func NewCollector[T any](fetch PageFunc[T], config Config) *Collector[T] {
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}

	logger := log.Logger
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Collector[T]{
		fetch:  fetch,
		config: config,
		logger: logger,
	}
}

// PageSize returns the effective page size.
func (c *Collector[T]) PageSize() int {
	return c.config.PageSize
}

// CollectAll fetches pages at offsets 0, P, 2P, ... until a page holds fewer
// or more than P items, where P is the page size. A collection whose size is
// an exact multiple of P therefore ends with one empty page request.
func (c *Collector[T]) CollectAll(ctx context.Context) ([]T, error) {
	start := time.Now()
	size := c.config.PageSize

	var all []T
	pages := 0
	for offset := 0; ; offset += size {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items, err := c.fetch(ctx, size, offset)
		if err != nil {
			return nil, fmt.Errorf("pagination: fetch page at offset %d: %w", offset, err)
		}
		pages++
		all = append(all, items...)

		if len(items) != size {
			break
		}
	}

	c.logger.Debug().
		Int("pages", pages).
		Int("items", len(all)).
		Int("page_size", size).
		Dur("duration", time.Since(start)).
		Msg("Collection complete")

	if all == nil {
		all = []T{}
	}
	return all, nil
}

// Collect is a shorthand for NewCollector(fetch, Config{PageSize: pageSize}).CollectAll(ctx).
func Collect[T any](ctx context.Context, pageSize int, fetch PageFunc[T]) ([]T, error) {
	return NewCollector(fetch, Config{PageSize: pageSize}).CollectAll(ctx)
}
