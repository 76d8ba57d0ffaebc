package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/store"
)

// StorageKey is the key-value slot holding the JSON array of city
// names.
const StorageKey = "favorites"

// Adapter maintains the durable favorites list. The in-memory copy is
// authoritative for the session: a failed store write is logged but
// never rolls back what the caller already sees.
type Adapter struct {
	store  store.Store
	logger *zap.Logger

	mu     sync.Mutex
	cities []string
}

func New(kv store.Store, logger *zap.Logger) *Adapter {
	return &Adapter{
		store:  kv,
		logger: logger,
	}
}

// Load reads the persisted list into memory and returns it. An absent
// slot or corrupt JSON both count as "no favorites"; neither is a
// failure.
func (a *Adapter) Load(ctx context.Context) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw, err := a.store.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			a.logger.Warn("Failed to read favorites, starting empty", zap.Error(err))
		}
		a.cities = nil
		return []string{}
	}

	var cities []string
	if err := json.Unmarshal([]byte(raw), &cities); err != nil {
		a.logger.Warn("Persisted favorites are corrupt, starting empty", zap.Error(err))
		a.cities = nil
		return []string{}
	}

	a.cities = cities
	return a.snapshot()
}

// List returns a copy of the in-memory list.
func (a *Adapter) List() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshot()
}

// IsFavorite answers membership against the in-memory copy.
func (a *Adapter) IsFavorite(city string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.index(city) >= 0
}

// Toggle removes the city when present and appends it when absent,
// then persists the whole list. It returns whether the city is now a
// favorite along with the resulting list.
func (a *Adapter) Toggle(ctx context.Context, city string) (bool, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	favorite := false
	if i := a.index(city); i >= 0 {
		a.cities = append(a.cities[:i], a.cities[i+1:]...)
	} else {
		a.cities = append(a.cities, city)
		favorite = true
	}

	a.persist(ctx)
	return favorite, a.snapshot()
}

// Remove drops the city from the list, persisting the result. Removing
// an absent city is a no-op.
func (a *Adapter) Remove(ctx context.Context, city string) []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	if i := a.index(city); i >= 0 {
		a.cities = append(a.cities[:i], a.cities[i+1:]...)
		a.persist(ctx)
	}

	return a.snapshot()
}

// persist writes the full list back. Write failures must neither crash
// the caller nor silently drop the session state, so they are logged
// with a storage-specific message and the in-memory list stands.
func (a *Adapter) persist(ctx context.Context) {
	raw, err := json.Marshal(a.listForStorage())
	if err != nil {
		a.logger.Error("Failed to encode favorites for storage", zap.Error(err))
		return
	}

	if err := a.store.Set(ctx, StorageKey, string(raw)); err != nil {
		a.logger.Error("Favorites store write failed, in-memory list remains authoritative",
			zap.Error(err))
	}
}

func (a *Adapter) index(city string) int {
	for i, c := range a.cities {
		if c == city {
			return i
		}
	}
	return -1
}

func (a *Adapter) snapshot() []string {
	out := make([]string, len(a.cities))
	copy(out, a.cities)
	return out
}

// listForStorage never marshals nil so an emptied list persists as []
// rather than null.
func (a *Adapter) listForStorage() []string {
	if a.cities == nil {
		return []string{}
	}
	return a.cities
}
