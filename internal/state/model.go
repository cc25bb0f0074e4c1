package state

import "LocalCanvas/internal/shape"

type OpType string

const (
	OpInsertShape OpType = "insert_shape"
	OpUpdateShape OpType = "update_shape"
	OpDeleteShape OpType = "delete_shape"
	OpClear       OpType = "clear"
)

// Op describes one mutation of the store. Kind and ID are empty for OpClear.
type Op struct {
	Type OpType
	Kind shape.Kind
	ID   string
}
