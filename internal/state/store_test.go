package state

import (
	"testing"
	"time"

	"LocalCanvas/internal/shape"

	"github.com/stretchr/testify/require"
)

func rect(id string, createdAt int64) *shape.Rectangle {
	return &shape.Rectangle{
		Meta:  shape.Meta{ID: id, Color: shape.DefaultColor, StrokeWidth: 5, CreatedAt: createdAt},
		Width: 10, Height: 10,
	}
}

func TestStore_AddRejectsDuplicateID(t *testing.T) {
	st := NewStore()
	require.True(t, st.Add(rect("r1", 1)))
	require.False(t, st.Add(rect("r1", 2)))
	require.Equal(t, 1, st.Len())
}

func TestStore_RestoreIsIdempotent(t *testing.T) {
	st := NewStore()
	require.True(t, st.Restore(rect("r1", 1)))
	require.False(t, st.Restore(rect("r1", 1)))

	require.Len(t, st.Shapes(shape.KindRectangle), 1)
}

func TestStore_UpdateMutatesLiveShape(t *testing.T) {
	st := NewStore()
	st.Add(rect("r1", 1))

	ok := st.Update(shape.KindRectangle, "r1", func(s shape.Shape) {
		s.(*shape.Rectangle).Width = -30
	})
	require.True(t, ok)

	got, ok := st.Get("r1")
	require.True(t, ok)
	require.Equal(t, -30.0, got.(*shape.Rectangle).Width)

	require.False(t, st.Update(shape.KindCircle, "r1", func(shape.Shape) {}), "wrong kind")
	require.False(t, st.Update(shape.KindRectangle, "nope", func(shape.Shape) {}))
}

func TestStore_ReturnsCopies(t *testing.T) {
	st := NewStore()
	st.Add(&shape.FreeLine{Meta: shape.Meta{ID: "f"}, Points: []float64{1, 1}})

	got, _ := st.Get("f")
	got.(*shape.FreeLine).Points[0] = 50

	again, _ := st.Get("f")
	require.Equal(t, 1.0, again.(*shape.FreeLine).Points[0])
}

func TestStore_RemoveIgnoresUnknown(t *testing.T) {
	st := NewStore()
	st.Add(rect("r1", 1))

	require.False(t, st.Remove(shape.KindRectangle, "ghost"))
	require.False(t, st.Remove(shape.KindCircle, "r1"))
	require.True(t, st.Remove(shape.KindRectangle, "r1"))
	require.Zero(t, st.Len())

	_, ok := st.Get("r1")
	require.False(t, ok)
}

func TestStore_AllIsGroupedByKind(t *testing.T) {
	st := NewStore()
	st.Add(&shape.Polygon{Meta: shape.Meta{ID: "p"}})
	st.Add(rect("r", 2))
	st.Add(&shape.Arrow{Meta: shape.Meta{ID: "a"}})

	var ids []string
	for _, s := range st.All() {
		ids = append(ids, s.Info().ID)
	}
	require.Equal(t, []string{"a", "r", "p"}, ids)
}

func TestStore_OnChange(t *testing.T) {
	st := NewStore()
	var ops []OpType
	st.OnChange = func(op Op) { ops = append(ops, op.Type) }

	st.Add(rect("r1", 1))
	st.Add(rect("r1", 1))
	st.Update(shape.KindRectangle, "r1", func(shape.Shape) {})
	st.Remove(shape.KindRectangle, "r1")
	st.Clear()

	require.Equal(t, []OpType{OpInsertShape, OpUpdateShape, OpDeleteShape, OpClear}, ops)
}

func TestClock_Monotonic(t *testing.T) {
	fixed := time.UnixMilli(1000)
	c := &Clock{Now: func() time.Time { return fixed }}

	require.Equal(t, int64(1000), c.Tick())
	require.Equal(t, int64(1001), c.Tick())

	c.Update(5000)
	require.Equal(t, int64(5001), c.Tick())
	c.Update(10)
	require.Equal(t, int64(5002), c.Tick())
}

func TestBounds(t *testing.T) {
	_, ok := Bounds(nil)
	require.False(t, ok)

	shapes := []shape.Shape{
		&shape.Rectangle{Meta: shape.Meta{ID: "r", StrokeWidth: 0}, X: 50, Y: 50, Width: -30, Height: 30},
		&shape.Circle{Meta: shape.Meta{ID: "c", StrokeWidth: 0}, X: 100, Y: 100, Radius: 5},
	}
	area, ok := Bounds(shapes)
	require.True(t, ok)
	require.Equal(t, Area{X: 20, Y: 50, Width: 85, Height: 55}, area)

	require.Equal(t, Area{X: 20, Y: 50, Width: 30, Height: 30}, ShapeBounds(shapes[0]))
}
