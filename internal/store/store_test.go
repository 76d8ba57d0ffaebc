package store

import (
	"context"
	"errors"
	"testing"

	"github.com/skycast-app/skycast/internal/config"
)

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	if err := m.Set(ctx, "favorites", `["Madrid"]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, err := m.Get(ctx, "favorites")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != `["Madrid"]` {
		t.Errorf("Expected stored value back, got %q", value)
	}
}

func TestMemoryOverwrite(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	m.Set(ctx, "k", "old")
	m.Set(ctx, "k", "new")

	value, _ := m.Get(ctx, "k")
	if value != "new" {
		t.Errorf("Expected last write to win, got %q", value)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New(config.StoreConfig{Backend: "etcd"}); err == nil {
		t.Error("Expected unknown backend to be rejected")
	}
}

func TestNewMemoryBackend(t *testing.T) {
	s, err := New(config.StoreConfig{Backend: "memory"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, ok := s.(*Memory); !ok {
		t.Errorf("Expected memory backend, got %T", s)
	}
}
