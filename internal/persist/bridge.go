package persist

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"LocalCanvas/internal/history"
)

// DefaultKey is the single key a drawing session is stored under.
const DefaultKey = "konva"

const documentVersion = 1

// Document is everything saved for a drawing session. Stage is the
// serialized render tree; History holds the applied history entries and
// is empty for documents that only carry live shapes.
type Document struct {
	Version int             `json:"version"`
	Stage   json.RawMessage `json:"stage"`
	History []history.Entry `json:"history,omitempty"`
	SavedAt string          `json:"saved_at,omitempty"`
}

// Bridge writes whole documents to a Store under one key.
type Bridge struct {
	store Store
	key   string
}

// NewBridge creates a bridge. An empty key uses DefaultKey.
func NewBridge(store Store, key string) *Bridge {
	if key == "" {
		key = DefaultKey
	}
	return &Bridge{store: store, key: key}
}

// Key returns the storage key.
func (b *Bridge) Key() string { return b.key }

// Save overwrites the stored document with the serialized stage and the
// applied history.
func (b *Bridge) Save(stage string, entries []history.Entry) error {
	if !json.Valid([]byte(stage)) {
		return fmt.Errorf("save %s: stage is not valid JSON", b.key)
	}
	doc := Document{
		Version: documentVersion,
		Stage:   json.RawMessage(stage),
		History: entries,
		SavedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("save %s: %w", b.key, err)
	}
	if err := b.store.Set(b.key, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", b.key, err)
	}
	return nil
}

// Load returns the stored document. Missing, malformed, or unsupported
// documents all read as absent.
func (b *Bridge) Load() (Document, bool) {
	raw, ok := b.store.Get(b.key)
	if !ok || raw == "" {
		return Document{}, false
	}

	var doc Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		log.Printf("[PERSIST] Ignoring malformed document %s: %v", b.key, err)
		return Document{}, false
	}
	if doc.Version != 0 && doc.Version != documentVersion {
		log.Printf("[PERSIST] Ignoring document %s with unsupported version %d", b.key, doc.Version)
		return Document{}, false
	}
	return doc, true
}

// Clear removes the stored document.
func (b *Bridge) Clear() error {
	if err := b.store.Remove(b.key); err != nil {
		return fmt.Errorf("clear %s: %w", b.key, err)
	}
	return nil
}
