// Package store persists the album collection as a single opaque payload
// keyed by a fixed collection name. The collection is always read and
// written wholesale; there are no partial or range reads.
package store

import (
	"context"
	"sync"

	"github.com/jwwharrell/the-gauntlet/internal/gauntlet"
)

// Memory is an in-memory implementation of the engine's store boundary.
// Used for testing and development. Thread-safe via RWMutex.
type Memory struct {
	mu     sync.RWMutex
	albums []gauntlet.Album
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Load returns a deep copy of the stored collection so callers cannot
// mutate the store through the returned slice.
func (m *Memory) Load(ctx context.Context) ([]gauntlet.Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyAlbums(m.albums), nil
}

// Save replaces the stored collection with a deep copy of albums.
func (m *Memory) Save(ctx context.Context, albums []gauntlet.Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.albums = copyAlbums(albums)
	return nil
}

func copyAlbums(albums []gauntlet.Album) []gauntlet.Album {
	out := make([]gauntlet.Album, len(albums))
	for i, a := range albums {
		opponents := make([]string, len(a.Opponents))
		copy(opponents, a.Opponents)
		a.Opponents = opponents
		out[i] = a
	}
	return out
}
