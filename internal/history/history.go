package history

import (
	"log"
	"sort"

	"LocalCanvas/internal/shape"
)

const (
	// DefaultCap is the default maximum number of retained entries
	DefaultCap = 20
	// MaxCap is the absolute maximum number of entries allowed
	MaxCap = 100
)

// Target is the live drawing state undo and redo act on.
type Target interface {
	Remove(kind shape.Kind, id string) bool
	Restore(s shape.Shape) bool
}

// History is a bounded, linear undo/redo log of committed shapes ordered
// by creation time. Entries before the cursor are applied; entries at or
// after it can be redone.
//
// History is not safe for concurrent use; the owning board serializes
// access.
type History struct {
	entries []Entry
	step    int
	cap     int
	target  Target

	// horizon is the creation time of the oldest retained entry once the
	// log has filled up. Live shapes older than it were evicted and stay
	// out of the log.
	horizon int64
}

// New creates an empty history acting on target.
// If cap is 0 or negative, DefaultCap is used.
// If cap exceeds MaxCap, it is clamped to MaxCap.
func New(target Target, cap int) *History {
	if cap <= 0 {
		cap = DefaultCap
	}
	if cap > MaxCap {
		cap = MaxCap
	}
	return &History{target: target, cap: cap}
}

func sortByCreation(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt() < entries[j].CreatedAt()
	})
}

// Commit reconciles the log against snapshot, the complete set of shapes
// the rendering surface currently shows. The redo tail is discarded, any
// snapshot shape not yet logged is appended, and the log is trimmed to the
// most recent cap entries. The cursor ends at the end of the log.
func (h *History) Commit(snapshot []shape.Shape) {
	keep := len(h.entries)
	if h.step <= keep {
		keep = max(h.step-1, 0)
	}

	merged := make([]Entry, 0, keep+len(snapshot))
	seen := make(map[string]bool, keep+len(snapshot))
	for _, e := range h.entries[:keep] {
		merged = append(merged, e)
		seen[e.ID()] = true
	}
	for _, s := range snapshot {
		id := s.Info().ID
		if seen[id] || s.Info().CreatedAt < h.horizon {
			continue
		}
		seen[id] = true
		merged = append(merged, NewEntry(s))
	}
	sortByCreation(merged)

	if len(merged) > h.cap {
		log.Printf("[HISTORY] Evicting %d oldest entries", len(merged)-h.cap)
		merged = merged[len(merged)-h.cap:]
	}
	h.setEntries(merged)
}

// setEntries installs a sorted, trimmed log with the cursor at its end.
func (h *History) setEntries(entries []Entry) {
	h.entries = entries
	h.step = len(entries)
	if len(entries) == h.cap {
		h.horizon = entries[0].CreatedAt()
	}
}

// Undo removes the live shape logged just before the cursor. It returns
// false when there is nothing to undo.
func (h *History) Undo() bool {
	if h.step <= 0 || h.step > len(h.entries) {
		return false
	}
	h.step--
	e := h.entries[h.step]
	if !h.target.Remove(e.Kind(), e.ID()) {
		log.Printf("[HISTORY] Undo target %s no longer live", e.ID())
	}
	return true
}

// Redo re-inserts the shape logged at the cursor. It returns false when
// there is nothing to redo.
func (h *History) Redo() bool {
	if h.step < 0 || h.step >= len(h.entries) {
		return false
	}
	e := h.entries[h.step]
	h.target.Restore(e.Shape())
	h.step++
	return true
}

// RestoreAll replaces the log with persisted entries, replaying each one
// into the target in creation order. Only the most recent cap entries stay
// undoable.
func (h *History) RestoreAll(entries []Entry) {
	sorted := append([]Entry(nil), entries...)
	sortByCreation(sorted)

	for _, e := range sorted {
		h.target.Restore(e.Shape())
	}
	h.Reset(sorted)
}

// Reset replaces the log with persisted entries without touching the
// target, for when the live shapes were restored some other way.
func (h *History) Reset(entries []Entry) {
	sorted := append([]Entry(nil), entries...)
	sortByCreation(sorted)
	if len(sorted) > h.cap {
		sorted = sorted[len(sorted)-h.cap:]
	}
	h.horizon = 0
	h.setEntries(sorted)
	log.Printf("[HISTORY] Restored %d entries", len(sorted))
}

// Clear empties the log.
func (h *History) Clear() {
	h.entries = nil
	h.step = 0
	h.horizon = 0
}

// Len returns the number of logged entries.
func (h *History) Len() int { return len(h.entries) }

// Step returns the cursor.
func (h *History) Step() int { return h.step }

// Cap returns the maximum number of retained entries.
func (h *History) Cap() int { return h.cap }

func (h *History) CanUndo() bool { return h.step > 0 }
func (h *History) CanRedo() bool { return h.step < len(h.entries) }

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// Applied returns a copy of the entries before the cursor.
func (h *History) Applied() []Entry {
	return append([]Entry(nil), h.entries[:h.step]...)
}
