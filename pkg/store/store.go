// Package store persists finished documents. Saving happens only on explicit
// user submit/save, never on intermediate edits.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrDocumentNotFound reports a lookup for an unknown document id.
var ErrDocumentNotFound = errors.New("store: document not found")

// Document is a saved, fully substituted rendering of a template.
type Document struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	TemplateID string    `json:"templateId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// DocumentStore is the persistence contract the orchestrator saves through.
type DocumentStore interface {
	// Save stores the document and returns its id, minting one when empty.
	Save(ctx context.Context, doc Document) (string, error)

	// Get returns the document for id, or ErrDocumentNotFound.
	Get(ctx context.Context, id string) (Document, error)

	// List returns all documents ordered by most recent update.
	List(ctx context.Context) ([]Document, error)

	// Delete removes the document for id, or returns ErrDocumentNotFound.
	Delete(ctx context.Context, id string) error
}
