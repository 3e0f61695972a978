package domain

import "time"

// CustomShelf is a user-defined tag for organizing books, distinct from the
// four fixed reading statuses. Books reference shelves by id via
// CustomShelfIDs; deleting a shelf cascades the reference removal across the
// whole collection.
type CustomShelf struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
}
