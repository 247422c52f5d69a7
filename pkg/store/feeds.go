package store

import (
	"encoding/json"
	"errors"

	"github.com/cockroachdb/pebble"

	"fedisync/pkg/models"
)

func GetFeed(scope, feedID string) (*models.Feed, error) {
	var f models.Feed
	if err := getJSON(feedKey(scope, feedID), &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func PutFeed(b *pebble.Batch, f *models.Feed) error {
	return putJSON(b, feedKey(f.Scope, f.ID), f)
}

// SaveFeed writes a feed descriptor in its own transaction.
func SaveFeed(f *models.Feed) error {
	return setJSON(feedKey(f.Scope, f.ID), f)
}

// ListFeeds returns all feed descriptors in a scope.
func ListFeeds(scope string) ([]models.Feed, error) {
	var out []models.Feed
	err := iterPrefix(feedPrefix(scope), func(_, value []byte) error {
		var f models.Feed
		if err := json.Unmarshal(value, &f); err != nil {
			return err
		}
		out = append(out, f)
		return nil
	})
	return out, err
}

// HasFeedSeen reports whether an activity id is already in the feed's
// deduplication set.
func HasFeedSeen(scope, feedID, activityID string) (bool, error) {
	var ignored struct{}
	err := getJSON(feedSeenKey(scope, feedID, activityID), &ignored)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// PutFeedSeen adds an activity id to the feed's deduplication set. The
// set only ever grows; there is no corresponding delete.
func PutFeedSeen(b *pebble.Batch, scope, feedID, activityID string) error {
	return b.Set(feedSeenKey(scope, feedID, activityID), []byte("{}"), nil)
}

func PutPage(b *pebble.Batch, scope string, p *models.Page) error {
	return putJSON(b, feedPageKey(scope, p.FeedID, p.Index), p)
}

// ListPages returns a feed's pages in index order.
func ListPages(scope, feedID string) ([]models.Page, error) {
	var out []models.Page
	err := iterPrefix(feedPagePrefix(scope, feedID), func(_, value []byte) error {
		var p models.Page
		if err := json.Unmarshal(value, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}
