package history

import (
	"encoding/json"

	"LocalCanvas/internal/shape"
)

// Entry is an immutable snapshot of one committed shape.
type Entry struct {
	shape shape.Shape
}

// NewEntry snapshots s.
func NewEntry(s shape.Shape) Entry {
	return Entry{shape: s.Clone()}
}

func (e Entry) Kind() shape.Kind { return e.shape.Kind() }
func (e Entry) ID() string       { return e.shape.Info().ID }
func (e Entry) CreatedAt() int64 { return e.shape.Info().CreatedAt }

// Shape returns a copy of the snapshotted shape.
func (e Entry) Shape() shape.Shape {
	return e.shape.Clone()
}

// MarshalJSON writes the entry as a shape.Record.
func (e Entry) MarshalJSON() ([]byte, error) {
	r, err := shape.Encode(e.shape)
	if err != nil {
		return nil, err
	}
	return json.Marshal(r)
}

// UnmarshalJSON reads a shape.Record.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var r shape.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	s, err := shape.Decode(r)
	if err != nil {
		return err
	}
	e.shape = s
	return nil
}
