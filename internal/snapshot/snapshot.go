// Package snapshot persists the whole-restaurant state between runs.
package snapshot

import (
	"context"

	"restaurant-ops/internal/restaurant"
)

// Store loads and saves restaurant snapshots. Load returns (nil, nil)
// when no snapshot exists yet, which callers treat as a fresh start.
type Store interface {
	Load(ctx context.Context) (*restaurant.State, error)
	Save(ctx context.Context, s *restaurant.State) error
	Close()
}
