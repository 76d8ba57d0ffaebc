package lastloc

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/store"
	"github.com/skycast-app/skycast/internal/weather"
)

// StorageKey is the single slot holding the most recently resolved
// coordinate as JSON {latitude, longitude}.
const StorageKey = "lastLocation"

// Cache is the single-slot persistent store consumed by the map view,
// which has no other way to obtain a location. Last write wins, no
// history.
type Cache struct {
	store  store.Store
	logger *zap.Logger
}

func New(kv store.Store, logger *zap.Logger) *Cache {
	return &Cache{
		store:  kv,
		logger: logger,
	}
}

// Save overwrites the slot with the given coordinate.
func (c *Cache) Save(ctx context.Context, coord weather.Coordinate) error {
	raw, err := json.Marshal(coord)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, StorageKey, string(raw))
}

// Load returns the stored coordinate, or nil when the slot was never
// written. Corrupt JSON is treated as never written.
func (c *Cache) Load(ctx context.Context) (*weather.Coordinate, error) {
	raw, err := c.store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var coord weather.Coordinate
	if err := json.Unmarshal([]byte(raw), &coord); err != nil {
		c.logger.Warn("Persisted last location is corrupt, treating as unset", zap.Error(err))
		return nil, nil
	}

	return &coord, nil
}
