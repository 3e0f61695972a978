// Package domain contains the core business entities and domain logic for the booq book tracker.
package domain

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"
)

// BookStatus represents the reading status of a book.
type BookStatus string

// The four fixed reading statuses. Custom shelves are orthogonal to these.
const (
	StatusTBR        BookStatus = "tbr"
	StatusInProgress BookStatus = "in_progress"
	StatusRead       BookStatus = "read"
	StatusDNF        BookStatus = "dnf"
)

// Valid returns true if the status is a recognized value.
func (s BookStatus) Valid() bool {
	switch s {
	case StatusTBR, StatusInProgress, StatusRead, StatusDNF:
		return true
	default:
		return false
	}
}

// DisplayName returns the human-facing label for a status.
func (s BookStatus) DisplayName() string {
	switch s {
	case StatusTBR:
		return "Want to Read"
	case StatusInProgress:
		return "Reading"
	case StatusRead:
		return "Done"
	case StatusDNF:
		return "DNF"
	default:
		return string(s)
	}
}

// Book represents a single tracked book in the user's collection.
type Book struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Author string     `json:"author"`
	Status BookStatus `json:"status"`

	// Rating is 0-5 in half-point steps; 0 means unrated.
	Rating      float64 `json:"rating,omitempty"`
	Pages       int     `json:"pages,omitempty"`
	CurrentPage int     `json:"current_page,omitempty"`

	// Calendar dates as ISO-like strings ("2024-03-01" or "2024").
	StartDate  string `json:"start_date,omitempty"`
	FinishDate string `json:"finish_date,omitempty"`

	Notes            string `json:"notes,omitempty"`  // private
	Review           string `json:"review,omitempty"` // public
	ContainsSpoilers bool   `json:"contains_spoilers,omitempty"`

	Description   string   `json:"description,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`

	CoverImageURL  string   `json:"cover_image_url"`
	IsFavorite     bool     `json:"is_favorite"`
	CustomShelfIDs []string `json:"custom_shelf_ids"`
}

// PlaceholderCoverURL returns the deterministic placeholder cover for a book
// id. The same id always maps to the same image.
func PlaceholderCoverURL(id string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/400/600", id)
}

// ValidRating reports whether r is within 0-5 at half-point granularity.
func ValidRating(r float64) bool {
	if r < 0 || r > 5 {
		return false
	}
	return math.Mod(r*2, 1) == 0
}

// ClampProgress clamps CurrentPage into [0, Pages]. CurrentPage is only
// meaningful when Pages is set; without a page count it is zeroed.
func (b *Book) ClampProgress() {
	if b.Pages <= 0 {
		b.CurrentPage = 0
		return
	}
	if b.CurrentPage < 0 {
		b.CurrentPage = 0
	}
	if b.CurrentPage > b.Pages {
		b.CurrentPage = b.Pages
	}
}

// OnShelf checks whether the book is assigned to the given custom shelf.
func (b *Book) OnShelf(shelfID string) bool {
	return slices.Contains(b.CustomShelfIDs, shelfID)
}

// RemoveFromShelf removes a shelf assignment. Returns true if it was present.
func (b *Book) RemoveFromShelf(shelfID string) bool {
	for i, id := range b.CustomShelfIDs {
		if id == shelfID {
			b.CustomShelfIDs = append(b.CustomShelfIDs[:i], b.CustomShelfIDs[i+1:]...)
			return true
		}
	}
	return false
}

// FinishedIn reports whether the book's finish date falls in the given
// calendar year. Books without a parseable finish date report false.
func (b *Book) FinishedIn(year int) bool {
	y, ok := dateYear(b.FinishDate)
	return ok && y == year
}

// StartedIn reports whether the book's start date falls in the given
// calendar year.
func (b *Book) StartedIn(year int) bool {
	y, ok := dateYear(b.StartDate)
	return ok && y == year
}

// dateYear extracts the year from an ISO-like date string.
// Accepts "2006-01-02", "2006-01", and bare "2006".
func dateYear(s string) (int, bool) {
	if len(s) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}
