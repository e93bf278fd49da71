package cart

import (
	"log"
	"sync"

	"github.com/imamnura/mini-ecommerce-api/models"
)

// HydrationState tracks whether the persisted snapshot has been loaded into
// memory yet. Consumers must not read an empty line list as "empty cart"
// until Hydrated reports true.
type HydrationState int

const (
	HydrationNotLoaded HydrationState = iota
	HydrationLoading
	HydrationReady
	HydrationFailed
)

func (s HydrationState) String() string {
	switch s {
	case HydrationLoading:
		return "loading"
	case HydrationReady:
		return "ready"
	case HydrationFailed:
		return "failed"
	default:
		return "not-loaded"
	}
}

// Summary holds the derived aggregates. Both fields are recomputed from the
// lines after every mutation and never drift from them.
type Summary struct {
	TotalQuantity int     `json:"totalQuantity"`
	TotalPrice    float64 `json:"totalPrice"`
}

// Listener receives the post-mutation summary.
type Listener func(Summary)

// Store owns one user's cart lines and derived totals. It is the single
// owner of that state for the process lifetime: every consumer reads through
// it and mutations are serialized, so no two can interleave. Each mutation
// rewrites the named snapshot in full; a failed write is logged and the
// in-memory state stays authoritative.
type Store struct {
	mu           sync.Mutex
	lines        []models.CartLine
	summary      Summary
	state        HydrationState
	dirty        bool
	snapshots    SnapshotStore
	name         string
	listeners    map[int]Listener
	nextListener int
}

// NewStore creates an empty store and begins loading the named snapshot in
// the background. Mutations are legal before the load finishes.
func NewStore(name string, snapshots SnapshotStore) *Store {
	s := &Store{
		snapshots: snapshots,
		name:      name,
		state:     HydrationNotLoaded,
		listeners: make(map[int]Listener),
	}
	go s.hydrate()
	return s
}

func (s *Store) hydrate() {
	s.mu.Lock()
	if s.state != HydrationNotLoaded {
		s.mu.Unlock()
		return
	}
	s.state = HydrationLoading
	s.mu.Unlock()

	snap, err := s.snapshots.Load(s.name)

	s.mu.Lock()
	if err != nil {
		log.Printf("cart %s: snapshot load failed: %v", s.name, err)
		s.state = HydrationFailed
		if s.dirty {
			s.persistLocked()
		}
		s.mu.Unlock()
		return
	}
	if snap != nil {
		// Lines mutated before hydration finished win over the snapshot.
		for _, line := range snap.Lines {
			if line.Quantity <= 0 {
				continue
			}
			if s.find(line.ProductID) < 0 {
				s.lines = append(s.lines, line)
			}
		}
		s.recompute()
	}
	s.state = HydrationReady
	if s.dirty {
		s.persistLocked()
	}
	s.mu.Unlock()
}

// Add appends a new line with quantity 1, or bumps the quantity of an
// existing line by one. The first add's price and metadata are kept.
func (s *Store) Add(item models.CartLine) {
	s.mutate(func() {
		if i := s.find(item.ProductID); i >= 0 {
			s.lines[i].Quantity++
			return
		}
		item.Quantity = 1
		s.lines = append(s.lines, item)
	})
}

// Remove drops the line for productID. Unknown ids are a silent no-op.
func (s *Store) Remove(productID int) {
	s.mutate(func() {
		if i := s.find(productID); i >= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
	})
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero
// or less removes the line; unknown ids are a silent no-op.
func (s *Store) SetQuantity(productID, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}
	s.mutate(func() {
		if i := s.find(productID); i >= 0 {
			s.lines[i].Quantity = quantity
		}
	})
}

// Clear empties the cart and resets both totals to zero.
func (s *Store) Clear() {
	s.mutate(func() {
		s.lines = nil
	})
}

// Contains reports whether a line for productID exists.
func (s *Store) Contains(productID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(productID) >= 0
}

// Lines returns a copy of the line items in insertion order.
func (s *Store) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Summary returns the current derived totals.
func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

// State returns the hydration lifecycle state.
func (s *Store) State() HydrationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hydrated reports whether the load attempt has finished, successfully or
// not. A Failed store is still usable; its snapshot was simply unreadable.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == HydrationReady || s.state == HydrationFailed
}

// Subscribe registers fn for post-mutation summaries and returns a function
// that removes the registration.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	fn()
	s.recompute()
	s.dirty = true
	// Persisting before the load attempt finishes would overwrite the
	// saved snapshot with the in-memory lines alone, losing whatever the
	// previous session persisted. hydrate writes the merged result instead.
	if s.state == HydrationReady || s.state == HydrationFailed {
		s.persistLocked()
	}
	sum := s.summary
	fns := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		fns = append(fns, l)
	}
	s.mu.Unlock()

	for _, l := range fns {
		l(sum)
	}
}

func (s *Store) persistLocked() {
	snap := &models.CartSnapshot{Lines: make([]models.CartLine, len(s.lines))}
	copy(snap.Lines, s.lines)
	if err := s.snapshots.Save(s.name, snap); err != nil {
		log.Printf("cart %s: snapshot save failed: %v", s.name, err)
	}
}

func (s *Store) recompute() {
	var sum Summary
	for _, line := range s.lines {
		sum.TotalQuantity += line.Quantity
		sum.TotalPrice += line.Price * float64(line.Quantity)
	}
	s.summary = sum
}

func (s *Store) find(productID int) int {
	for i, line := range s.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}
