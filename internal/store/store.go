package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/skycast-app/skycast/internal/config"
)

// ErrNotFound marks a key that was never written. Callers treat it as
// an empty slot, not a failure.
var ErrNotFound = errors.New("key not found")

// Store is the persistent string key-value capability behind favorites
// and the last viewed location.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New builds the configured backend.
func New(cfg config.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case "redis":
		return NewRedis(cfg.Redis), nil
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q", cfg.Backend)
	}
}

// Memory is a process-lifetime store used in tests and storeless
// deployments.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

func (m *Memory) Close() error {
	return nil
}
