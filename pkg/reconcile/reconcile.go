// Package reconcile merges remote representations into the local cache.
// Every upsert looks an entity up by its identity key (numeric id +
// account scope), creating it on first sight and updating it afterwards.
// Partial updates come from list/summary payloads and must not erase
// fields the payload does not carry; full updates come from detail
// payloads and refresh the record's UpdatedTS.
package reconcile

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cockroachdb/pebble"

	"fedisync/pkg/logger"
	"fedisync/pkg/models"
	"fedisync/pkg/remote"
	"fedisync/pkg/store"
	"fedisync/pkg/telemetry"
)

// UpdateMode makes the partial/full payload distinction explicit.
type UpdateMode int

const (
	// Partial merges a summary payload: absent fields keep their local
	// values and UpdatedTS is left alone (incidental enrichment is not a
	// canonical refresh).
	Partial UpdateMode = iota
	// Full merges a detail payload and bumps UpdatedTS.
	Full
)

func (m UpdateMode) String() string {
	if m == Full {
		return "full"
	}
	return "partial"
}

func now() int64 { return time.Now().UTC().UnixNano() }

// lookupFailed logs a degraded lookup. Query failures never drop the
// incoming record; the reconciler proceeds as if the entity were absent.
func lookupFailed(entity, scope string, id int64, err error) {
	logger.Log.Warn("entity_lookup_failed_degrading_to_create",
		zap.String("entity", entity),
		zap.String("scope", scope),
		zap.Int64("id", id),
		zap.Error(err))
}

// UpsertPerson merges a remote person record within the caller's batch.
func UpsertPerson(b *pebble.Batch, scope string, rec *remote.PersonRecord, mode UpdateMode) (*models.Person, error) {
	p, err := store.GetPerson(scope, rec.ID)
	created := false
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lookupFailed("person", scope, rec.ID, err)
		}
		p = &models.Person{ID: rec.ID, Scope: scope, CreatedTS: now()}
		created = true
	}
	if rec.Name != "" {
		p.Name = rec.Name
	}
	if rec.ActorID != "" {
		p.ActorID = rec.ActorID
	}
	if mode == Full || created {
		p.UpdatedTS = now()
	}
	if err := store.PutPerson(b, p); err != nil {
		return nil, err
	}
	if err := upsertPersonInfo(b, scope, rec, mode); err != nil {
		return nil, err
	}
	telemetry.UpsertsTotal.WithLabelValues("person", outcome(created)).Inc()
	return p, nil
}

func upsertPersonInfo(b *pebble.Batch, scope string, rec *remote.PersonRecord, mode UpdateMode) error {
	if rec.DisplayName == nil && rec.AvatarURL == nil && rec.Bio == nil &&
		rec.PostCount == nil && rec.CommentCount == nil {
		// Header-only payload; the info side record stays lazy.
		return nil
	}
	info, err := store.GetPersonInfo(scope, rec.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lookupFailed("person_info", scope, rec.ID, err)
		}
		info = &models.PersonInfo{PersonID: rec.ID, Scope: scope}
	}
	if rec.DisplayName != nil {
		info.DisplayName = *rec.DisplayName
	}
	if rec.AvatarURL != nil {
		info.AvatarURL = *rec.AvatarURL
	}
	if rec.Bio != nil {
		info.Bio = *rec.Bio
	}
	if rec.PostCount != nil {
		info.PostCount = *rec.PostCount
	}
	if rec.CommentCount != nil {
		info.CommentCount = *rec.CommentCount
	}
	if mode == Full {
		info.UpdatedTS = now()
	}
	return store.PutPersonInfo(b, info)
}

// UpsertCommunity merges a remote community record within the caller's
// batch.
func UpsertCommunity(b *pebble.Batch, scope string, rec *remote.CommunityRecord, mode UpdateMode) (*models.Community, error) {
	c, err := store.GetCommunity(scope, rec.ID)
	created := false
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lookupFailed("community", scope, rec.ID, err)
		}
		c = &models.Community{ID: rec.ID, Scope: scope, CreatedTS: now()}
		created = true
	}
	if rec.Name != "" {
		c.Name = rec.Name
	}
	if rec.ActorID != "" {
		c.ActorID = rec.ActorID
	}
	if mode == Full || created {
		c.UpdatedTS = now()
	}
	if err := store.PutCommunity(b, c); err != nil {
		return nil, err
	}
	if err := upsertCommunityInfo(b, scope, rec, mode); err != nil {
		return nil, err
	}
	telemetry.UpsertsTotal.WithLabelValues("community", outcome(created)).Inc()
	return c, nil
}

func upsertCommunityInfo(b *pebble.Batch, scope string, rec *remote.CommunityRecord, mode UpdateMode) error {
	if rec.Title == nil && rec.Description == nil && rec.IconURL == nil &&
		rec.SubscriberCount == nil && rec.PostCount == nil {
		return nil
	}
	info, err := store.GetCommunityInfo(scope, rec.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lookupFailed("community_info", scope, rec.ID, err)
		}
		info = &models.CommunityInfo{CommunityID: rec.ID, Scope: scope}
	}
	if rec.Title != nil {
		info.Title = *rec.Title
	}
	if rec.Description != nil {
		info.Description = *rec.Description
	}
	if rec.IconURL != nil {
		info.IconURL = *rec.IconURL
	}
	if rec.SubscriberCount != nil {
		info.SubscriberCount = *rec.SubscriberCount
	}
	if rec.PostCount != nil {
		info.PostCount = *rec.PostCount
	}
	if mode == Full {
		info.UpdatedTS = now()
	}
	return store.PutCommunityInfo(b, info)
}

// UpsertPost merges a feed listing entry (or detail payload) within the
// caller's batch, cascading to the referenced creator and community in
// the same transaction.
func UpsertPost(b *pebble.Batch, scope string, sum *remote.PostSummary, mode UpdateMode) (*models.Post, error) {
	if sum.Creator != nil {
		if _, err := UpsertPerson(b, scope, sum.Creator, mode); err != nil {
			return nil, err
		}
	}
	if sum.Community != nil {
		if _, err := UpsertCommunity(b, scope, sum.Community, mode); err != nil {
			return nil, err
		}
	}

	p, err := store.GetPost(scope, sum.ID)
	created := false
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lookupFailed("post", scope, sum.ID, err)
		}
		p = &models.Post{ID: sum.ID, Scope: scope, CreatedTS: now()}
		created = true
	}
	if sum.ActivityID != "" {
		p.ActivityID = sum.ActivityID
	}
	if mode == Full || created {
		p.UpdatedTS = now()
	}
	if err := store.PutPost(b, p); err != nil {
		return nil, err
	}
	if p.ActivityID != "" {
		if err := store.PutActivityRef(b, scope, p.ActivityID, p.ID); err != nil {
			return nil, err
		}
	}
	if err := upsertPostInfo(b, scope, sum, mode); err != nil {
		return nil, err
	}
	telemetry.UpsertsTotal.WithLabelValues("post", outcome(created)).Inc()
	return p, nil
}

func upsertPostInfo(b *pebble.Batch, scope string, sum *remote.PostSummary, mode UpdateMode) error {
	if sum.Title == nil && sum.Body == nil && sum.URL == nil && sum.Score == nil &&
		sum.UpvoteCount == nil && sum.DownvoteCount == nil && sum.CommentCount == nil &&
		sum.MyVote == nil && sum.PublishedTS == nil && sum.Creator == nil && sum.Community == nil {
		return nil
	}
	info, err := store.GetPostInfo(scope, sum.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lookupFailed("post_info", scope, sum.ID, err)
		}
		info = &models.PostInfo{PostID: sum.ID, Scope: scope}
	}
	if sum.Title != nil {
		info.Title = *sum.Title
	}
	if sum.Body != nil {
		info.Body = *sum.Body
	}
	if sum.URL != nil {
		info.URL = *sum.URL
	}
	if sum.Score != nil {
		info.Score = *sum.Score
	}
	if sum.UpvoteCount != nil {
		info.UpvoteCount = *sum.UpvoteCount
	}
	if sum.DownvoteCount != nil {
		info.DownvoteCount = *sum.DownvoteCount
	}
	if sum.CommentCount != nil {
		info.CommentCount = *sum.CommentCount
	}
	if sum.MyVote != nil {
		info.MyVote = sum.MyVote.Normalize()
	}
	if sum.PublishedTS != nil {
		info.PublishedTS = *sum.PublishedTS
	}
	if sum.Creator != nil {
		info.CreatorID = sum.Creator.ID
	}
	if sum.Community != nil {
		info.CommunityID = sum.Community.ID
	}
	if mode == Full {
		info.UpdatedTS = now()
	}
	return store.PutPostInfo(b, info)
}

// UpsertComment merges a comment record within the caller's batch.
// Comment listings return complete records, so every field is applied;
// the mode still controls the UpdatedTS bump.
func UpsertComment(b *pebble.Batch, scope string, rec *remote.CommentRecord, mode UpdateMode) (*models.Comment, error) {
	if rec.Creator != nil {
		if _, err := UpsertPerson(b, scope, rec.Creator, Partial); err != nil {
			return nil, err
		}
	}

	c, err := store.GetComment(scope, rec.PostID, rec.ID)
	created := false
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			lookupFailed("comment", scope, rec.ID, err)
		}
		c = &models.Comment{ID: rec.ID, Scope: scope, PostID: rec.PostID}
		created = true
	}
	c.Path = rec.Path
	c.Content = rec.Content
	c.Score = rec.Score
	c.MyVote = rec.MyVote.Normalize()
	c.ChildCount = rec.ChildCount
	c.ActivityID = rec.ActivityID
	c.PublishedTS = rec.PublishedTS
	if rec.Creator != nil {
		c.CreatorID = rec.Creator.ID
	}
	if mode == Full || created {
		c.UpdatedTS = now()
	}
	if err := store.PutComment(b, c); err != nil {
		return nil, err
	}
	telemetry.UpsertsTotal.WithLabelValues("comment", outcome(created)).Inc()
	return c, nil
}

// EnsurePost returns the post header for an identity key, creating an
// empty header if none exists. Idempotent and safe from the main context.
func EnsurePost(scope string, id int64) (*models.Post, error) {
	p, err := store.GetPost(scope, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		lookupFailed("post", scope, id, err)
	}
	b, berr := store.NewBatch()
	if berr != nil {
		return nil, berr
	}
	defer b.Close()
	p = &models.Post{ID: id, Scope: scope, CreatedTS: now(), UpdatedTS: now()}
	if err := store.PutPost(b, p); err != nil {
		return nil, err
	}
	if err := store.Commit(b); err != nil {
		return nil, err
	}
	return p, nil
}

// EnsurePerson mirrors EnsurePost for person headers.
func EnsurePerson(scope string, id int64) (*models.Person, error) {
	p, err := store.GetPerson(scope, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		lookupFailed("person", scope, id, err)
	}
	b, berr := store.NewBatch()
	if berr != nil {
		return nil, berr
	}
	defer b.Close()
	p = &models.Person{ID: id, Scope: scope, CreatedTS: now(), UpdatedTS: now()}
	if err := store.PutPerson(b, p); err != nil {
		return nil, err
	}
	if err := store.Commit(b); err != nil {
		return nil, err
	}
	return p, nil
}

func outcome(created bool) string {
	if created {
		return "created"
	}
	return "updated"
}
