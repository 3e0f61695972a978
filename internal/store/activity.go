package store

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/booqapp/booq-server/internal/domain"
	"github.com/booqapp/booq-server/internal/sse"
)

// Activity storage key prefixes.
// Uses inverted timestamps for descending order (newest first) during forward
// iteration.
const (
	activityPrefix        = "activity:"
	activityIdxTimePrefix = "activity:idx:time:"
)

// invertedTimestamp returns a string that sorts in descending order.
func invertedTimestamp(t time.Time) string {
	inverted := math.MaxInt64 - t.UnixNano()
	return fmt.Sprintf("%019d", inverted)
}

// CreateActivity stores a new activity item with its time index in a single
// transaction.
func (s *Store) CreateActivity(ctx context.Context, activity *domain.ActivityItem) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshaling activity: %w", err)
	}

	invertedTS := invertedTimestamp(activity.Timestamp)

	err = s.db.Update(func(txn *badger.Txn) error {
		primaryKey := []byte(activityPrefix + activity.ID)
		if err := txn.Set(primaryKey, data); err != nil {
			return fmt.Errorf("setting primary key: %w", err)
		}

		// Time index: activity:idx:time:{inverted_timestamp}:{id} → "" (key-only)
		timeKey := []byte(activityIdxTimePrefix + invertedTS + ":" + activity.ID)
		if err := txn.Set(timeKey, []byte{}); err != nil {
			return fmt.Errorf("setting time index: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("create activity: %w", err)
	}

	s.emit(sse.NewActivityCreated(activity))
	return nil
}

// GetActivityFeed retrieves the activity feed sorted by Timestamp descending.
// Use 'before' for cursor-based pagination (pass the Timestamp of the last
// item from the previous page). Returns up to 'limit' items.
func (s *Store) GetActivityFeed(ctx context.Context, limit int, before *time.Time) ([]*domain.ActivityItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []*domain.ActivityItem

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false // Key-only index
		opts.Prefix = []byte(activityIdxTimePrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		seekKey := []byte(activityIdxTimePrefix)
		if before != nil {
			// Inverted timestamps: strictly older entries have a strictly
			// larger inverted value, so seek just past the cursor.
			seekKey = []byte(activityIdxTimePrefix + invertedTimestamp(*before) + ";")
		}

		for it.Seek(seekKey); it.ValidForPrefix(opts.Prefix); it.Next() {
			if limit > 0 && len(items) >= limit {
				break
			}

			key := string(it.Item().Key())
			id := key[len(activityIdxTimePrefix)+19+1:]

			item, err := txn.Get([]byte(activityPrefix + id))
			if err != nil {
				if errors.Is(err, badger.ErrKeyNotFound) {
					continue
				}
				return err
			}

			var activity domain.ActivityItem
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &activity)
			}); err != nil {
				return fmt.Errorf("unmarshaling activity %s: %w", id, err)
			}
			items = append(items, &activity)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get activity feed: %w", err)
	}

	return items, nil
}
