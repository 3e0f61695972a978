// Package search provides full-text search over the book collection using
// Bleve. Books are searchable by title, author, notes, and genres, with
// fuzzy matching for typo tolerance.
package search

import (
	"github.com/booqapp/booq-server/internal/domain"
)

// Document is the indexed representation of a book.
type Document struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Notes       string   `json:"notes,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Status      string   `json:"status"`

	CreatedAt int64 `json:"created_at"` // Unix millis
	UpdatedAt int64 `json:"updated_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names so they
// match the index mapping (Bleve defaults to Go field names otherwise).
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":         d.ID,
		"title":      d.Title,
		"author":     d.Author,
		"status":     d.Status,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Notes != "" {
		m["notes"] = d.Notes
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if len(d.Genres) > 0 {
		m["genres"] = d.Genres
	}

	return m
}

// FromBook converts a domain book to its indexed form.
func FromBook(book *domain.Book) *Document {
	return &Document{
		ID:          book.ID,
		Title:       book.Title,
		Author:      book.Author,
		Notes:       book.Notes,
		Description: book.Description,
		Genres:      book.Genres,
		Status:      string(book.Status),
		CreatedAt:   book.CreatedAt.UnixMilli(),
		UpdatedAt:   book.UpdatedAt.UnixMilli(),
	}
}
