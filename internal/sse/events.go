// Package sse implements Server-Sent Events for pushing collection changes
// to connected frontends.
package sse

import (
	"time"

	"github.com/google/uuid"

	"github.com/booqapp/booq-server/internal/domain"
)

// EventType represents the type of SSE event.
type EventType string

const (
	// EventBookCreated represents a book creation event.
	EventBookCreated EventType = "book.created"
	// EventBookUpdated represents a book update event.
	EventBookUpdated EventType = "book.updated"
	// EventBookDeleted represents a book deletion event.
	EventBookDeleted EventType = "book.deleted"

	// EventShelfCreated represents a custom shelf creation event.
	EventShelfCreated EventType = "shelf.created"
	// EventShelfUpdated represents a custom shelf rename event.
	EventShelfUpdated EventType = "shelf.updated"
	// EventShelfDeleted represents a custom shelf deletion event.
	EventShelfDeleted EventType = "shelf.deleted"

	// EventProfileUpdated represents a profile change event.
	EventProfileUpdated EventType = "profile.updated"
	// EventLayoutUpdated represents a dashboard section reorder event.
	EventLayoutUpdated EventType = "layout.updated"
	// EventActivityCreated represents a new activity log entry.
	EventActivityCreated EventType = "activity.created"

	// EventHeartbeat represents a connection keepalive event.
	EventHeartbeat EventType = "heartbeat"
)

// Event represents an SSE event to be sent to clients. The Data field
// carries the full changed entity so events are self-contained and clients
// never need a follow-up fetch. ID doubles as the SSE id: field so clients
// can report the last event they saw after a reconnect.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
}

// BookDeletedEventData is the data payload for book delete events.
type BookDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	BookID    string    `json:"book_id"`
}

// ShelfDeletedEventData is the data payload for shelf delete events.
type ShelfDeletedEventData struct {
	DeletedAt time.Time `json:"deleted_at"`
	ShelfID   string    `json:"shelf_id"`
}

// HeartbeatEventData is the data payload for heartbeat events.
type HeartbeatEventData struct {
	ServerTime time.Time `json:"server_time"`
}

func newEvent(eventType EventType, data any) Event {
	return Event{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Type:      eventType,
		Data:      data,
	}
}

// NewBookCreated creates a book.created event.
func NewBookCreated(book *domain.Book) Event {
	return newEvent(EventBookCreated, book)
}

// NewBookUpdated creates a book.updated event.
func NewBookUpdated(book *domain.Book) Event {
	return newEvent(EventBookUpdated, book)
}

// NewBookDeleted creates a book.deleted event.
func NewBookDeleted(bookID string) Event {
	return newEvent(EventBookDeleted, BookDeletedEventData{
		DeletedAt: time.Now(),
		BookID:    bookID,
	})
}

// NewShelfCreated creates a shelf.created event.
func NewShelfCreated(shelf *domain.CustomShelf) Event {
	return newEvent(EventShelfCreated, shelf)
}

// NewShelfUpdated creates a shelf.updated event.
func NewShelfUpdated(shelf *domain.CustomShelf) Event {
	return newEvent(EventShelfUpdated, shelf)
}

// NewShelfDeleted creates a shelf.deleted event.
func NewShelfDeleted(shelfID string) Event {
	return newEvent(EventShelfDeleted, ShelfDeletedEventData{
		DeletedAt: time.Now(),
		ShelfID:   shelfID,
	})
}

// NewProfileUpdated creates a profile.updated event.
func NewProfileUpdated(profile *domain.UserProfile) Event {
	return newEvent(EventProfileUpdated, profile)
}

// NewLayoutUpdated creates a layout.updated event.
func NewLayoutUpdated(order domain.SectionOrder) Event {
	return newEvent(EventLayoutUpdated, order)
}

// NewActivityCreated creates an activity.created event.
func NewActivityCreated(item *domain.ActivityItem) Event {
	return newEvent(EventActivityCreated, item)
}

// NewHeartbeatEvent creates a heartbeat event.
func NewHeartbeatEvent() Event {
	return newEvent(EventHeartbeat, HeartbeatEventData{ServerTime: time.Now()})
}
