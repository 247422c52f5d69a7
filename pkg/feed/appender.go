// Package feed appends paginated listing results to a feed while
// guaranteeing that a post's presentation slot, once assigned, never
// moves. Deduplication runs on the server-independent activity id, not
// the instance-local numeric id.
package feed

import (
	"time"

	"go.uber.org/zap"

	"github.com/oklog/ulid/v2"

	"fedisync/pkg/logger"
	"fedisync/pkg/models"
	"fedisync/pkg/reconcile"
	"fedisync/pkg/remote"
	"fedisync/pkg/store"
	"fedisync/pkg/telemetry"
)

// Create persists a new feed descriptor for a query spec.
func Create(scope string, spec models.FeedSpec) (*models.Feed, error) {
	f := &models.Feed{
		ID:        ulid.Make().String(),
		Scope:     scope,
		Spec:      spec,
		CreatedTS: time.Now().UTC().UnixNano(),
		UpdatedTS: time.Now().UTC().UnixNano(),
	}
	if err := store.SaveFeed(f); err != nil {
		return nil, err
	}
	logger.Log.Info("feed_created",
		zap.String("scope", scope),
		zap.String("feed", f.ID),
		zap.String("listing", string(spec.Listing)),
		zap.String("sort", string(spec.Sort)))
	return f, nil
}

// Append reconciles one fetch result into the feed. Entries whose
// activity id the feed has never seen become exactly one new page, in
// incoming order; entries already represented anywhere in the feed are
// refreshed in place and never repositioned. Appending overlapping
// results twice therefore never duplicates a presentation slot.
func Append(scope, feedID string, incoming []remote.PostSummary) error {
	f, err := store.GetFeed(scope, feedID)
	if err != nil {
		return err
	}

	// Partition against the dedup set. inBatch guards against the same
	// activity id appearing twice within one response.
	var fresh []remote.PostSummary
	inBatch := make(map[string]bool, len(incoming))
	for _, sum := range incoming {
		if sum.ActivityID == "" || inBatch[sum.ActivityID] {
			telemetry.FeedDedupSkipsTotal.Inc()
			continue
		}
		seen, serr := store.HasFeedSeen(scope, feedID, sum.ActivityID)
		if serr != nil {
			return serr
		}
		inBatch[sum.ActivityID] = true
		if seen {
			telemetry.FeedDedupSkipsTotal.Inc()
			continue
		}
		fresh = append(fresh, sum)
	}

	b, err := store.NewBatch()
	if err != nil {
		return err
	}
	defer b.Close()

	// Every incoming entry refreshes the cached post, new or not.
	// Listing payloads are summaries, so the merge is partial. A repeated
	// activity id keeps the first-seen handle so the page slot binds the
	// same post the dedup pass admitted.
	posts := make(map[string]*models.Post, len(incoming))
	for i := range incoming {
		p, uerr := reconcile.UpsertPost(b, scope, &incoming[i], reconcile.Partial)
		if uerr != nil {
			return uerr
		}
		if aid := incoming[i].ActivityID; aid != "" {
			if _, ok := posts[aid]; !ok {
				posts[aid] = p
			}
		}
	}

	if len(fresh) > 0 {
		page := &models.Page{
			FeedID:    feedID,
			Index:     f.PageCount,
			CreatedTS: time.Now().UTC().UnixNano(),
		}
		for i, sum := range fresh {
			if err := store.PutFeedSeen(b, scope, feedID, sum.ActivityID); err != nil {
				return err
			}
			page.Elements = append(page.Elements, models.PageElement{
				Index:  i,
				PostID: posts[sum.ActivityID].ID,
			})
		}
		if err := store.PutPage(b, scope, page); err != nil {
			return err
		}
		f.PageCount++
		f.UpdatedTS = time.Now().UTC().UnixNano()
		if err := store.PutFeed(b, f); err != nil {
			return err
		}
		telemetry.FeedPagesTotal.Inc()
	}

	if err := store.Commit(b); err != nil {
		return err
	}
	logger.Log.Debug("feed_appended",
		zap.String("scope", scope),
		zap.String("feed", feedID),
		zap.Int("incoming", len(incoming)),
		zap.Int("new", len(fresh)),
		zap.Int("pages", f.PageCount))
	return nil
}
