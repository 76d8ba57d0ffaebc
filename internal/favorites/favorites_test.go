package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skycast-app/skycast/internal/store"
)

func newAdapter(t *testing.T) (*Adapter, *store.Memory) {
	t.Helper()
	kv := store.NewMemory()
	return New(kv, zap.NewNop()), kv
}

func TestLoadEmptyWhenAbsent(t *testing.T) {
	a, _ := newAdapter(t)

	cities := a.Load(context.Background())
	assert.Empty(t, cities)
}

func TestLoadEmptyWhenCorrupt(t *testing.T) {
	a, kv := newAdapter(t)
	require.NoError(t, kv.Set(context.Background(), StorageKey, "{not json"))

	cities := a.Load(context.Background())
	assert.Empty(t, cities)
}

func TestToggleAddsThenRemoves(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	favorite, cities := a.Toggle(ctx, "Madrid")
	assert.True(t, favorite)
	assert.Equal(t, []string{"Madrid"}, cities)
	assert.True(t, a.IsFavorite("Madrid"))

	favorite, cities = a.Toggle(ctx, "Madrid")
	assert.False(t, favorite)
	assert.Empty(t, cities)
	assert.False(t, a.IsFavorite("Madrid"))
}

func TestToggleIsItsOwnInverse(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()

	a.Toggle(ctx, "Madrid")
	a.Toggle(ctx, "Paris")
	a.Toggle(ctx, "Tokyo")
	before := a.List()

	a.Toggle(ctx, "Paris")
	a.Toggle(ctx, "Paris")

	assert.Equal(t, before, a.List(), "toggling twice must restore contents and order")
}

func TestTogglePersists(t *testing.T) {
	a, kv := newAdapter(t)
	ctx := context.Background()

	a.Toggle(ctx, "Madrid")
	a.Toggle(ctx, "Paris")

	raw, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["Madrid","Paris"]`, raw)

	// A second adapter over the same store sees the same list.
	b := New(kv, zap.NewNop())
	assert.Equal(t, []string{"Madrid", "Paris"}, b.Load(ctx))
}

func TestRemove(t *testing.T) {
	a, kv := newAdapter(t)
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, StorageKey, `["Madrid","Paris"]`))
	a.Load(ctx)

	cities := a.Remove(ctx, "Paris")
	assert.Equal(t, []string{"Madrid"}, cities)

	raw, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `["Madrid"]`, raw)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	a, _ := newAdapter(t)
	ctx := context.Background()
	a.Toggle(ctx, "Madrid")

	cities := a.Remove(ctx, "Paris")
	assert.Equal(t, []string{"Madrid"}, cities)
}

type brokenStore struct {
	store.Store
}

func (brokenStore) Get(ctx context.Context, key string) (string, error) {
	return "", store.ErrNotFound
}

func (brokenStore) Set(ctx context.Context, key, value string) error {
	return errors.New("store unavailable")
}

func TestInMemoryStateSurvivesWriteFailure(t *testing.T) {
	a := New(brokenStore{}, zap.NewNop())
	ctx := context.Background()

	favorite, cities := a.Toggle(ctx, "Madrid")
	assert.True(t, favorite)
	assert.Equal(t, []string{"Madrid"}, cities)
	assert.True(t, a.IsFavorite("Madrid"), "in-memory list stays authoritative when the write fails")
}
