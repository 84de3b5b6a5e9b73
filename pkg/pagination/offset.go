package pagination

import (
	"context"
	"fmt"
)

// CountFunc reports the total size of a collection.
type CountFunc func(ctx context.Context) (int, error)

// ResolveOffset returns offset unchanged when it is not negative. A negative
// offset counts back from the end of the collection and is clamped to 0;
// only then is count called.
func ResolveOffset(ctx context.Context, offset int, count CountFunc) (int, error) {
	if offset >= 0 {
		return offset, nil
	}

	total, err := count(ctx)
	if err != nil {
		return 0, fmt.Errorf("pagination: resolve offset %d: %w", offset, err)
	}

	return max(total+offset, 0), nil
}
