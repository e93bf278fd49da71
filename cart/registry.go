package cart

import (
	"fmt"
	"sync"
)

// Registry hands out one Store per user id, created lazily on first use.
// Stores live for the rest of the process, so every request for the same
// user reads through the same instance.
type Registry struct {
	mu        sync.Mutex
	stores    map[int]*Store
	snapshots SnapshotStore
}

func NewRegistry(snapshots SnapshotStore) *Registry {
	return &Registry{
		stores:    make(map[int]*Store),
		snapshots: snapshots,
	}
}

// For returns the store for userID, creating and hydrating it on first use.
func (r *Registry) For(userID int) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[userID]; ok {
		return s
	}
	s := NewStore(fmt.Sprintf("cart-%d", userID), r.snapshots)
	r.stores[userID] = s
	return s
}
