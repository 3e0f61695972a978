package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/booqapp/booq-server/internal/domain"
	domainerrors "github.com/booqapp/booq-server/internal/errors"
	"github.com/booqapp/booq-server/internal/id"
	"github.com/booqapp/booq-server/internal/store"
	"github.com/booqapp/booq-server/internal/validation"
)

// BookDraft carries the user-editable fields of a book. Add and Update both
// take the full draft; identity and timestamps are the service's concern.
type BookDraft struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Status string `json:"status,omitempty"`

	Rating      float64 `json:"rating,omitempty" validate:"gte=0,lte=5"`
	Pages       int     `json:"pages,omitempty" validate:"gte=0"`
	CurrentPage int     `json:"current_page,omitempty" validate:"gte=0"`

	StartDate  string `json:"start_date,omitempty"`
	FinishDate string `json:"finish_date,omitempty"`

	Notes            string `json:"notes,omitempty"`
	Review           string `json:"review,omitempty"`
	ContainsSpoilers bool   `json:"contains_spoilers,omitempty"`

	Description   string   `json:"description,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	PublishedDate string   `json:"published_date,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`

	CoverImageURL  string   `json:"cover_image_url,omitempty"`
	IsFavorite     bool     `json:"is_favorite,omitempty"`
	CustomShelfIDs []string `json:"custom_shelf_ids,omitempty"`
}

// LibraryService orchestrates book operations: validation, favorites sync,
// activity recording. Change events reach clients through the store.
type LibraryService struct {
	store     *store.Store
	validator *validation.Validator
	activity  *ActivityService
	logger    *slog.Logger
}

// NewLibraryService creates a new library service.
func NewLibraryService(store *store.Store, validator *validation.Validator, activity *ActivityService, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		store:     store,
		validator: validator,
		activity:  activity,
		logger:    logger,
	}
}

// validateDraft runs structural validation plus the rules tags can't
// express.
func (s *LibraryService) validateDraft(ctx context.Context, draft *BookDraft) error {
	if err := s.validator.Validate(draft); err != nil {
		return err
	}
	if draft.Status != "" && !domain.BookStatus(draft.Status).Valid() {
		return domainerrors.Validationf("unknown status %q", draft.Status)
	}
	if !domain.ValidRating(draft.Rating) {
		return domainerrors.Validation("rating must be between 0 and 5 in half-point steps")
	}
	for _, shelfID := range draft.CustomShelfIDs {
		if _, err := s.store.GetShelf(ctx, shelfID); err != nil {
			return domainerrors.Validationf("unknown shelf %q", shelfID)
		}
	}
	return nil
}

// applyDraft copies draft fields onto a book and normalizes derived state.
func applyDraft(book *domain.Book, draft *BookDraft) {
	book.Title = draft.Title
	book.Author = draft.Author
	book.Status = domain.BookStatus(draft.Status)
	if book.Status == "" {
		book.Status = domain.StatusTBR
	}
	book.Rating = draft.Rating
	book.Pages = draft.Pages
	book.CurrentPage = draft.CurrentPage
	book.StartDate = draft.StartDate
	book.FinishDate = draft.FinishDate
	book.Notes = draft.Notes
	book.Review = draft.Review
	book.ContainsSpoilers = draft.ContainsSpoilers
	book.Description = draft.Description
	book.Genres = draft.Genres
	book.PublishedDate = draft.PublishedDate
	book.Publisher = draft.Publisher
	book.ISBN = draft.ISBN
	book.CoverImageURL = draft.CoverImageURL
	book.IsFavorite = draft.IsFavorite
	book.CustomShelfIDs = draft.CustomShelfIDs
	if book.CustomShelfIDs == nil {
		book.CustomShelfIDs = []string{}
	}

	book.ClampProgress()
	defaultDates(book)
}

// defaultDates stamps start/finish dates implied by the status when the user
// left them blank.
func defaultDates(book *domain.Book) {
	today := time.Now().Format("2006-01-02")
	if book.Status == domain.StatusInProgress && book.StartDate == "" {
		book.StartDate = today
	}
	if book.Status == domain.StatusRead && book.FinishDate == "" {
		book.FinishDate = today
	}
}

// AddBook validates a draft and stores it as a new book. A draft without a
// cover gets the deterministic placeholder for its id.
func (s *LibraryService) AddBook(ctx context.Context, draft BookDraft) (*domain.Book, error) {
	if err := s.validateDraft(ctx, &draft); err != nil {
		return nil, err
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	now := time.Now()
	book := &domain.Book{
		ID:        bookID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyDraft(book, &draft)
	if book.CoverImageURL == "" {
		book.CoverImageURL = domain.PlaceholderCoverURL(bookID)
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	if book.IsFavorite {
		s.syncFavorite(ctx, book.ID, true)
	}

	s.recordActivity(ctx, domain.ActivityAddedBook, book, "")

	s.logger.Info("book added", "book_id", book.ID, "title", book.Title, "status", book.Status)
	return book, nil
}

// UpdateBook replaces a book's editable fields and records the activities
// implied by the transition (started, finished, rated, noted, favorite
// changes).
func (s *LibraryService) UpdateBook(ctx context.Context, bookID string, draft BookDraft) (*domain.Book, error) {
	if err := s.validateDraft(ctx, &draft); err != nil {
		return nil, err
	}

	existing, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	book := *existing
	applyDraft(&book, &draft)
	if book.CoverImageURL == "" {
		book.CoverImageURL = domain.PlaceholderCoverURL(book.ID)
	}
	book.UpdatedAt = time.Now()

	if err := s.store.UpdateBook(ctx, &book); err != nil {
		return nil, err
	}

	if book.IsFavorite != existing.IsFavorite {
		s.syncFavorite(ctx, book.ID, book.IsFavorite)
	}
	s.recordTransitions(ctx, existing, &book)

	return &book, nil
}

// recordTransitions appends activity entries for the state changes between
// two versions of a book.
func (s *LibraryService) recordTransitions(ctx context.Context, before, after *domain.Book) {
	if after.Status != before.Status {
		switch after.Status {
		case domain.StatusInProgress:
			s.recordActivity(ctx, domain.ActivityStartedBook, after, "")
		case domain.StatusRead:
			s.recordActivity(ctx, domain.ActivityFinishedBook, after, "")
		}
	}
	if after.Rating != before.Rating && after.Rating > 0 {
		s.recordActivity(ctx, domain.ActivityRatedBook, after, fmt.Sprintf("%g stars", after.Rating))
	}
	if before.Notes == "" && after.Notes != "" {
		s.recordActivity(ctx, domain.ActivityAddedNote, after, "")
	}
	if after.IsFavorite != before.IsFavorite {
		if after.IsFavorite {
			s.recordActivity(ctx, domain.ActivityMarkedFavorite, after, "")
		} else {
			s.recordActivity(ctx, domain.ActivityUnmarkedFavorite, after, "")
		}
	}
}

// DeleteBook removes a book and scrubs it from the profile's favorites.
func (s *LibraryService) DeleteBook(ctx context.Context, bookID string) error {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		return err
	}

	if book.IsFavorite {
		s.syncFavorite(ctx, bookID, false)
	}

	s.logger.Info("book deleted", "book_id", bookID, "title", book.Title)
	return nil
}

// ToggleFavorite flips a book's favorite flag and reconciles the profile's
// favorites list in the same operation.
func (s *LibraryService) ToggleFavorite(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	book.IsFavorite = !book.IsFavorite
	book.UpdatedAt = time.Now()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.syncFavorite(ctx, book.ID, book.IsFavorite)

	if book.IsFavorite {
		s.recordActivity(ctx, domain.ActivityMarkedFavorite, book, "")
	} else {
		s.recordActivity(ctx, domain.ActivityUnmarkedFavorite, book, "")
	}

	return book, nil
}

// SetStatus moves a book to a new reading status, stamping the start or
// finish date implied by the transition.
func (s *LibraryService) SetStatus(ctx context.Context, bookID string, status domain.BookStatus) (*domain.Book, error) {
	if !status.Valid() {
		return nil, domainerrors.Validationf("unknown status %q", status)
	}

	existing, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if existing.Status == status {
		return existing, nil
	}

	book := *existing
	book.Status = status
	book.UpdatedAt = time.Now()
	defaultDates(&book)

	if err := s.store.UpdateBook(ctx, &book); err != nil {
		return nil, err
	}

	s.recordTransitions(ctx, existing, &book)
	return &book, nil
}

// SetProgress updates the current page, clamped to the book's page count.
func (s *LibraryService) SetProgress(ctx context.Context, bookID string, currentPage int) (*domain.Book, error) {
	if currentPage < 0 {
		return nil, domainerrors.Validation("current page cannot be negative")
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	book.CurrentPage = currentPage
	book.ClampProgress()
	book.UpdatedAt = time.Now()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

// GetBook retrieves a book by ID.
func (s *LibraryService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	return s.store.GetBook(ctx, bookID)
}

// ListBooks returns the collection in insertion order.
func (s *LibraryService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []*domain.Book{}
	}
	return books, nil
}

// syncFavorite reconciles the profile's favorites list with one book's flag.
// Failure is logged, not returned: the flag on the book is the source of
// truth and the list is re-derivable.
func (s *LibraryService) syncFavorite(ctx context.Context, bookID string, favorite bool) {
	profile, err := s.store.GetProfile(ctx)
	if err != nil {
		s.logger.Warn("failed to load profile for favorites sync", "book_id", bookID, "error", err)
		return
	}

	var changed bool
	if favorite {
		changed = profile.AddFavorite(bookID)
	} else {
		changed = profile.RemoveFavorite(bookID)
	}
	if !changed {
		return
	}

	profile.UpdatedAt = time.Now()
	if err := s.store.SaveProfile(ctx, profile); err != nil {
		s.logger.Warn("failed to save profile for favorites sync", "book_id", bookID, "error", err)
	}
}

// recordActivity appends to the log, logging failures instead of surfacing
// them: the primary write already succeeded.
func (s *LibraryService) recordActivity(ctx context.Context, activityType domain.ActivityType, book *domain.Book, details string) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Record(ctx, activityType, book, details); err != nil {
		s.logger.Warn("failed to record activity",
			"type", activityType,
			"book_id", book.ID,
			"error", err,
		)
	}
}
