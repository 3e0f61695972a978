package domain

import (
	"math"
	"time"
)

// StatsFilter restricts date-bound statistics.
type StatsFilter string

// Supported statistics filters.
const (
	StatsFilterAll StatsFilter = "all"
	StatsFilterYTD StatsFilter = "ytd"
)

// Valid returns true if the filter is a recognized value.
func (f StatsFilter) Valid() bool {
	return f == StatsFilterAll || f == StatsFilterYTD
}

// LibraryStats is the aggregate view over the book collection.
//
// TotalBooks, TBRCount, DNFCount, and StatusCounts are always all-time.
// BooksRead/PagesRead respect the filter via finish date; InProgressCount via
// start date. AverageRating is nil when no finished book carries a nonzero
// rating.
type LibraryStats struct {
	Filter StatsFilter `json:"filter"`
	Year   int         `json:"year,omitempty"` // set for ytd

	TotalBooks      int `json:"total_books"`
	BooksRead       int `json:"books_read"`
	PagesRead       int `json:"pages_read"`
	InProgressCount int `json:"in_progress_count"`
	TBRCount        int `json:"tbr_count"`
	DNFCount        int `json:"dnf_count"`

	AverageRating *float64 `json:"average_rating,omitempty"`

	StatusCounts map[BookStatus]int `json:"status_counts"`
}

// ComputeLibraryStats aggregates statistics over the collection. Pure: the
// result depends only on books, filter, and now (which supplies the ytd
// year). An empty collection yields zero counts and no average rating.
func ComputeLibraryStats(books []*Book, filter StatsFilter, now time.Time) *LibraryStats {
	year := now.Year()

	stats := &LibraryStats{
		Filter:       filter,
		TotalBooks:   len(books),
		StatusCounts: make(map[BookStatus]int),
	}
	if filter == StatsFilterYTD {
		stats.Year = year
	}

	var ratingSum float64
	var ratedCount int

	for _, b := range books {
		stats.StatusCounts[b.Status]++

		switch b.Status {
		case StatusRead:
			if filter == StatsFilterYTD && !b.FinishedIn(year) {
				continue
			}
			stats.BooksRead++
			stats.PagesRead += b.Pages
			if b.Rating > 0 {
				ratingSum += b.Rating
				ratedCount++
			}
		case StatusInProgress:
			if filter == StatsFilterYTD && !b.StartedIn(year) {
				continue
			}
			stats.InProgressCount++
		case StatusTBR:
			stats.TBRCount++
		case StatusDNF:
			stats.DNFCount++
		}
	}

	if ratedCount > 0 {
		avg := math.Round(ratingSum/float64(ratedCount)*10) / 10
		stats.AverageRating = &avg
	}

	return stats
}
