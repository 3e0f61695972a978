package domain

import (
	"slices"
	"time"

	"github.com/booqapp/booq-server/internal/color"
)

// UserProfile is the singleton profile for the server's single user.
//
// FavoriteBookIDs is a synchronized secondary index over the collection's
// is_favorite flags. It is never written independently: every book mutation
// that touches a favorite flag reconciles this list in the same operation.
type UserProfile struct {
	Username        string   `json:"username"`
	Bio             string   `json:"bio"`
	ProfileImageURL string   `json:"profile_image_url,omitempty"`
	FavoriteBookIDs []string `json:"favorite_book_ids"`
	Pronouns        string   `json:"pronouns,omitempty"`
	BirthYear       int      `json:"birth_year,omitempty"`

	// AvatarColor is derived from the username whenever it changes, never
	// set directly by the client.
	AvatarColor string `json:"avatar_color"`

	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultProfile returns the profile used before the user customizes it.
func DefaultProfile() *UserProfile {
	username := "Voracious Reader"
	return &UserProfile{
		Username:        username,
		Bio:             "Exploring universes one book at a time.",
		AvatarColor:     color.ForName(username),
		FavoriteBookIDs: []string{},
	}
}

// AddFavorite adds a book id to the favorites list.
// Returns false if it was already present.
func (p *UserProfile) AddFavorite(bookID string) bool {
	if slices.Contains(p.FavoriteBookIDs, bookID) {
		return false
	}
	p.FavoriteBookIDs = append(p.FavoriteBookIDs, bookID)
	return true
}

// RemoveFavorite removes a book id from the favorites list.
// Returns false if it was not present.
func (p *UserProfile) RemoveFavorite(bookID string) bool {
	for i, id := range p.FavoriteBookIDs {
		if id == bookID {
			p.FavoriteBookIDs = append(p.FavoriteBookIDs[:i], p.FavoriteBookIDs[i+1:]...)
			return true
		}
	}
	return false
}

// HasFavorite checks whether a book id is in the favorites list.
func (p *UserProfile) HasFavorite(bookID string) bool {
	return slices.Contains(p.FavoriteBookIDs, bookID)
}
