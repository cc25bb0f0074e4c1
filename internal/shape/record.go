package shape

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a record carries a kind tag this
// package does not know.
var ErrUnknownKind = errors.New("unknown shape kind")

// Record is the serialized form of a shape: a kind tag plus the full
// attribute set. History entries and render tree leaves both use it.
type Record struct {
	Kind  Kind            `json:"kind"`
	Attrs json.RawMessage `json:"attrs"`
}

// Encode snapshots s into a Record.
func Encode(s Shape) (Record, error) {
	attrs, err := json.Marshal(s)
	if err != nil {
		return Record{}, fmt.Errorf("encode %s %s: %w", s.Kind(), s.Info().ID, err)
	}
	return Record{Kind: s.Kind(), Attrs: attrs}, nil
}

// Decode rebuilds the concrete shape held by r.
func Decode(r Record) (Shape, error) {
	s := New(r.Kind, Meta{})
	if s == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, r.Kind)
	}
	if err := json.Unmarshal(r.Attrs, s); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.Kind, err)
	}
	if s.Info().ID == "" {
		return nil, fmt.Errorf("decode %s: missing id", r.Kind)
	}
	return s, nil
}

// EncodeAll encodes shapes in order.
func EncodeAll(shapes []Shape) ([]Record, error) {
	out := make([]Record, 0, len(shapes))
	for _, s := range shapes {
		r, err := Encode(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// DecodeAll decodes records in order and stops at the first bad one.
func DecodeAll(records []Record) ([]Shape, error) {
	out := make([]Shape, 0, len(records))
	for _, r := range records {
		s, err := Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
