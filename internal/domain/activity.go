package domain

import "time"

// ActivityType represents the kind of action recorded in the activity log.
type ActivityType string

// The closed set of recordable actions.
const (
	ActivityAddedBook        ActivityType = "added_book"
	ActivityStartedBook      ActivityType = "started_book"
	ActivityFinishedBook     ActivityType = "finished_book"
	ActivityRatedBook        ActivityType = "rated_book"
	ActivityAddedNote        ActivityType = "added_note"
	ActivityMarkedFavorite   ActivityType = "marked_favorite"
	ActivityUnmarkedFavorite ActivityType = "unmarked_favorite"
	ActivityUpdatedProfile   ActivityType = "updated_profile"
)

// Valid returns true if the activity type is a recognized value.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityAddedBook, ActivityStartedBook, ActivityFinishedBook,
		ActivityRatedBook, ActivityAddedNote, ActivityMarkedFavorite,
		ActivityUnmarkedFavorite, ActivityUpdatedProfile:
		return true
	default:
		return false
	}
}

// ActivityItem is an immutable, append-only log entry. Book info is
// denormalized so the feed renders without loading books that may since have
// been deleted.
type ActivityItem struct {
	ID        string       `json:"id"`
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`

	BookID    string `json:"book_id,omitempty"`
	BookTitle string `json:"book_title,omitempty"`
	Details   string `json:"details,omitempty"`
}
