package board

import (
	"log"
	"sync"

	"LocalCanvas/internal/gesture"
	"LocalCanvas/internal/history"
	"LocalCanvas/internal/persist"
	"LocalCanvas/internal/render"
	"LocalCanvas/internal/shape"
	"LocalCanvas/internal/state"
)

// Options tune a drawing session.
type Options struct {
	HistoryCap  int
	CloseRadius float64
	Color       string
	StrokeWidth int
}

// Board owns one drawing session: the live shapes, the gesture engine
// drawing into them, the undo history, and write-through persistence.
// Every entry point takes the board lock, so events from any goroutine are
// applied one at a time.
type Board struct {
	mu      sync.Mutex
	store   *state.Store
	clock   *state.Clock
	engine  *gesture.Engine
	history *history.History
	surface render.Surface
	bridge  *persist.Bridge

	// OnRender is called after the surface has been re-rendered. It runs
	// under the board lock and must not call back into the board.
	OnRender func()
}

// New wires a board onto a rendering surface and a persistence bridge.
func New(surface render.Surface, bridge *persist.Bridge, opts Options) *Board {
	b := &Board{
		store:   state.NewStore(),
		clock:   &state.Clock{},
		surface: surface,
		bridge:  bridge,
	}
	b.engine = gesture.NewEngine(b.store, b.clock)
	if opts.CloseRadius > 0 {
		b.engine.CloseRadius = opts.CloseRadius
	}
	if opts.Color != "" {
		b.engine.SetColor(opts.Color)
	}
	if opts.StrokeWidth != 0 {
		b.engine.SetStrokeWidth(opts.StrokeWidth)
	}
	b.history = history.New(b.store, opts.HistoryCap)

	b.store.OnChange = func(state.Op) { b.render() }
	b.engine.OnCommit = func(shape.Shape) { b.commit() }
	b.surface.Render(nil)
	return b
}

func (b *Board) render() {
	b.surface.Render(b.store.All())
	if b.OnRender != nil {
		b.OnRender()
	}
}

// commit reconciles history against what the surface shows, then writes
// through to storage.
func (b *Board) commit() {
	snapshot, err := render.Snapshot(b.surface)
	if err != nil {
		log.Printf("[BOARD] Surface snapshot failed, using store: %v", err)
		snapshot = b.store.All()
	}
	b.history.Commit(snapshot)
	b.save()
}

func (b *Board) save() {
	if b.bridge == nil {
		return
	}
	stage, err := b.surface.Serialize()
	if err != nil {
		log.Printf("[BOARD] Serialize failed: %v", err)
		return
	}
	if err := b.bridge.Save(stage, b.history.Applied()); err != nil {
		log.Printf("[BOARD] Save failed: %v", err)
	}
}

// Load restores the previous session, if any. The live shapes come from
// the saved stage and the undo log from the saved history. A document with
// an unreadable stage falls back to replaying its history.
func (b *Board) Load() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.bridge == nil {
		return
	}
	doc, ok := b.bridge.Load()
	if !ok {
		log.Println("[BOARD] No previous session")
		return
	}
	for _, e := range doc.History {
		b.clock.Update(e.CreatedAt())
	}

	shapes, err := render.Parse(string(doc.Stage))
	if err != nil {
		if len(doc.History) == 0 {
			log.Printf("[BOARD] Ignoring unreadable stage: %v", err)
			return
		}
		log.Printf("[BOARD] Unreadable stage, replaying history: %v", err)
		b.history.RestoreAll(doc.History)
		return
	}

	for _, s := range shapes {
		b.store.Restore(s)
		b.clock.Update(s.Info().CreatedAt)
	}
	b.history.Reset(doc.History)
	log.Printf("[BOARD] Restored %d shapes, %d history entries", len(shapes), len(doc.History))
}

func (b *Board) PointerDown(pos *gesture.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.PointerDown(pos)
}

func (b *Board) PointerMove(pos *gesture.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.PointerMove(pos)
}

func (b *Board) PointerUp() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.PointerUp()
}

func (b *Board) PointerLeave() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.PointerLeave()
}

func (b *Board) SetTool(t gesture.Tool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.SetTool(t)
}

func (b *Board) SetColor(c string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.engine.SetColor(c)
}

func (b *Board) SetStrokeWidth(w int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.engine.SetStrokeWidth(w)
}

// Undo steps back one committed shape.
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.history.Undo() {
		return false
	}
	b.save()
	return true
}

// Redo re-applies the next undone shape.
func (b *Board) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.history.Redo() {
		return false
	}
	b.save()
	return true
}

// Clear removes every shape, empties history, and erases the stored
// session. Callers confirm with the user first.
func (b *Board) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.engine.Reset()
	b.history.Clear()
	b.store.Clear()
	if b.bridge != nil {
		if err := b.bridge.Clear(); err != nil {
			log.Printf("[BOARD] Clear storage failed: %v", err)
		}
	}
	log.Println("[BOARD] Cleared")
}

// Status summarizes the session for front-ends.
type Status struct {
	Stage   string
	Step    int
	Length  int
	CanUndo bool
	CanRedo bool
	Session gesture.Session
}

func (b *Board) Status() Status {
	b.mu.Lock()
	defer b.mu.Unlock()

	stage, err := b.surface.Serialize()
	if err != nil {
		log.Printf("[BOARD] Serialize failed: %v", err)
	}
	return Status{
		Stage:   stage,
		Step:    b.history.Step(),
		Length:  b.history.Len(),
		CanUndo: b.history.CanUndo(),
		CanRedo: b.history.CanRedo(),
		Session: b.engine.Session(),
	}
}

// Shapes returns copies of the live shapes in render order.
func (b *Board) Shapes() []shape.Shape {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.store.All()
}

// History returns a copy of the history log.
func (b *Board) History() []history.Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Entries()
}
