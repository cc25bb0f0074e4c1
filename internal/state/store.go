package state

import (
	"log"
	"sync"

	"LocalCanvas/internal/shape"
)

// Store is the authoritative set of live shapes, one ordered collection per
// kind. Ids are unique across the whole store.
type Store struct {
	collections map[shape.Kind][]shape.Shape
	index       map[string]shape.Kind
	mu          sync.RWMutex

	// OnChange, when set, is called after every mutation, outside the lock.
	OnChange func(Op)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		collections: make(map[shape.Kind][]shape.Shape),
		index:       make(map[string]shape.Kind),
	}
}

func (st *Store) emit(op Op) {
	if st.OnChange != nil {
		st.OnChange(op)
	}
}

// Add appends a new shape to its kind's collection. It returns false when
// the id is already live.
func (st *Store) Add(s shape.Shape) bool {
	if !st.insert(s) {
		return false
	}
	st.emit(Op{Type: OpInsertShape, Kind: s.Kind(), ID: s.Info().ID})
	return true
}

// Restore re-inserts a shape coming from history or storage. Restoring an
// id that is already live is a no-op, so replaying the same entry twice
// leaves exactly one copy.
func (st *Store) Restore(s shape.Shape) bool {
	if !st.insert(s) {
		log.Printf("[STORE] Shape %s already live, skipping restore", s.Info().ID)
		return false
	}
	st.emit(Op{Type: OpInsertShape, Kind: s.Kind(), ID: s.Info().ID})
	return true
}

func (st *Store) insert(s shape.Shape) bool {
	st.mu.Lock()
	defer st.mu.Unlock()

	id := s.Info().ID
	if _, exists := st.index[id]; exists {
		return false
	}
	st.collections[s.Kind()] = append(st.collections[s.Kind()], s.Clone())
	st.index[id] = s.Kind()
	return true
}

// Update runs fn against the live shape with the given id. It returns false
// when the id is not live in that kind's collection.
func (st *Store) Update(kind shape.Kind, id string, fn func(shape.Shape)) bool {
	st.mu.Lock()
	live := st.find(kind, id)
	if live == nil {
		st.mu.Unlock()
		return false
	}
	fn(live)
	st.mu.Unlock()

	st.emit(Op{Type: OpUpdateShape, Kind: kind, ID: id})
	return true
}

// Remove deletes the shape with the given id from its kind's collection.
// Unknown ids are ignored.
func (st *Store) Remove(kind shape.Kind, id string) bool {
	st.mu.Lock()
	items := st.collections[kind]
	removed := false
	for i, s := range items {
		if s.Info().ID == id {
			st.collections[kind] = append(items[:i:i], items[i+1:]...)
			delete(st.index, id)
			removed = true
			break
		}
	}
	st.mu.Unlock()

	if removed {
		st.emit(Op{Type: OpDeleteShape, Kind: kind, ID: id})
	}
	return removed
}

// Clear drops every shape.
func (st *Store) Clear() {
	st.mu.Lock()
	st.collections = make(map[shape.Kind][]shape.Shape)
	st.index = make(map[string]shape.Kind)
	st.mu.Unlock()

	st.emit(Op{Type: OpClear})
}

func (st *Store) find(kind shape.Kind, id string) shape.Shape {
	for _, s := range st.collections[kind] {
		if s.Info().ID == id {
			return s
		}
	}
	return nil
}

// Get returns a copy of the live shape with the given id.
func (st *Store) Get(id string) (shape.Shape, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	kind, ok := st.index[id]
	if !ok {
		return nil, false
	}
	return st.find(kind, id).Clone(), true
}

// Shapes returns copies of one kind's collection in insertion order.
func (st *Store) Shapes(kind shape.Kind) []shape.Shape {
	st.mu.RLock()
	defer st.mu.RUnlock()

	items := st.collections[kind]
	out := make([]shape.Shape, 0, len(items))
	for _, s := range items {
		out = append(out, s.Clone())
	}
	return out
}

// All returns copies of every live shape, grouped by kind in render order.
func (st *Store) All() []shape.Shape {
	st.mu.RLock()
	defer st.mu.RUnlock()

	out := make([]shape.Shape, 0, len(st.index))
	for _, kind := range shape.Kinds {
		for _, s := range st.collections[kind] {
			out = append(out, s.Clone())
		}
	}
	return out
}

// Len returns the number of live shapes.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.index)
}
