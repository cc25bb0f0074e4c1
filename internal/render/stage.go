package render

import (
	"encoding/json"
	"fmt"
	"sync"

	"LocalCanvas/internal/shape"
)

// Surface is anything that can show the live shapes and report back what
// it shows as a serialized render tree.
type Surface interface {
	Render(shapes []shape.Shape)
	Serialize() (string, error)
}

// Node is one element of the render tree. Leaves carry a shape kind and
// the shape's attributes; containers carry children.
type Node struct {
	ClassName string          `json:"className"`
	Kind      shape.Kind      `json:"kind,omitempty"`
	Attrs     json.RawMessage `json:"attrs,omitempty"`
	Children  []Node          `json:"children,omitempty"`
}

// ClassName names the primitive a kind is drawn with.
func ClassName(k shape.Kind) string {
	switch k {
	case shape.KindArrow:
		return "Arrow"
	case shape.KindRectangle:
		return "Rect"
	case shape.KindCircle:
		return "Circle"
	default:
		return "Line"
	}
}

// Leaf builds the render node for s.
func Leaf(s shape.Shape) (Node, error) {
	r, err := shape.Encode(s)
	if err != nil {
		return Node{}, err
	}
	return Node{ClassName: ClassName(r.Kind), Kind: r.Kind, Attrs: r.Attrs}, nil
}

// Stage is an in-memory render tree: a Stage node holding one Layer of
// shape leaves.
type Stage struct {
	width  int
	height int
	leaves []Node
	mu     sync.RWMutex
}

// NewStage creates an empty stage of the given size.
func NewStage(width, height int) *Stage {
	return &Stage{width: width, height: height}
}

// Render replaces the layer contents with shapes, in order.
func (s *Stage) Render(shapes []shape.Shape) {
	leaves := make([]Node, 0, len(shapes))
	for _, sh := range shapes {
		leaf, err := Leaf(sh)
		if err != nil {
			continue
		}
		leaves = append(leaves, leaf)
	}

	s.mu.Lock()
	s.leaves = leaves
	s.mu.Unlock()
}

// Tree returns the full render tree.
func (s *Stage) Tree() Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs, _ := json.Marshal(map[string]int{"width": s.width, "height": s.height})
	return Node{
		ClassName: "Stage",
		Attrs:     attrs,
		Children: []Node{{
			ClassName: "Layer",
			Children:  append([]Node(nil), s.leaves...),
		}},
	}
}

// Serialize returns the render tree as JSON.
func (s *Stage) Serialize() (string, error) {
	data, err := json.Marshal(s.Tree())
	if err != nil {
		return "", fmt.Errorf("serialize stage: %w", err)
	}
	return string(data), nil
}

// Shapes flattens every leaf under n, depth first.
func (n Node) Shapes() ([]shape.Shape, error) {
	var out []shape.Shape
	if n.Kind != "" {
		s, err := shape.Decode(shape.Record{Kind: n.Kind, Attrs: n.Attrs})
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	for _, child := range n.Children {
		shapes, err := child.Shapes()
		if err != nil {
			return nil, err
		}
		out = append(out, shapes...)
	}
	return out, nil
}

// Parse reads a serialized render tree back into shapes. Duplicate leaves
// are returned as they appear.
func Parse(data string) ([]shape.Shape, error) {
	var root Node
	if err := json.Unmarshal([]byte(data), &root); err != nil {
		return nil, fmt.Errorf("parse stage: %w", err)
	}
	return root.Shapes()
}

// Snapshot reads back what surface currently shows.
func Snapshot(surface Surface) ([]shape.Shape, error) {
	data, err := surface.Serialize()
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
