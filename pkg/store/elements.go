package store

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"fedisync/pkg/logger"
	"fedisync/pkg/models"
)

// ReplaceCommentElements swaps the derived element set for a (post, sort)
// pair in one transaction. Elements from other sort types for the same
// post are untouched.
func ReplaceCommentElements(scope string, postID int64, sort models.SortType, elems []models.CommentElement) error {
	b, err := NewBatch()
	if err != nil {
		return err
	}
	defer b.Close()
	prefix := elementSortPrefix(scope, postID, string(sort))
	if err := b.DeleteRange(prefix, prefixUpperBound(prefix), nil); err != nil {
		return err
	}
	for i := range elems {
		if err := putJSON(b, elementKey(scope, postID, string(sort), elems[i].Index), &elems[i]); err != nil {
			return err
		}
	}
	return Commit(b)
}

// ListCommentElements returns the derived element set for a (post, sort)
// pair in presentation order.
func ListCommentElements(scope string, postID int64, sort models.SortType) ([]models.CommentElement, error) {
	var out []models.CommentElement
	err := iterPrefix(elementSortPrefix(scope, postID, string(sort)), func(_, value []byte) error {
		var e models.CommentElement
		if err := json.Unmarshal(value, &e); err != nil {
			return err
		}
		out = append(out, e)
		return nil
	})
	return out, err
}

// DeletePost cascades a post deletion: header, info, activity index,
// comments, derived element sets and page memberships all go with it.
// This is the only deletion path the engine exposes.
func DeletePost(scope string, id int64) error {
	post, err := GetPost(scope, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	b, nerr := NewBatch()
	if nerr != nil {
		return nerr
	}
	defer b.Close()

	if err := b.Delete(postKey(scope, id), nil); err != nil {
		return err
	}
	if err := b.Delete(postInfoKey(scope, id), nil); err != nil {
		return err
	}
	if post != nil && post.ActivityID != "" {
		if err := b.Delete(activityRefKey(scope, post.ActivityID, id), nil); err != nil {
			return err
		}
	}
	for _, prefix := range [][]byte{commentPrefix(scope, id), elementPrefix(scope, id)} {
		if err := b.DeleteRange(prefix, prefixUpperBound(prefix), nil); err != nil {
			return err
		}
	}

	// Drop the post from page memberships. Page order is otherwise
	// immutable; removal via owner cascade is the one allowed mutation.
	feeds, err := ListFeeds(scope)
	if err != nil {
		return err
	}
	for _, f := range feeds {
		pages, perr := ListPages(scope, f.ID)
		if perr != nil {
			return perr
		}
		for i := range pages {
			kept := pages[i].Elements[:0]
			for _, el := range pages[i].Elements {
				if el.PostID != id {
					kept = append(kept, el)
				}
			}
			if len(kept) != len(pages[i].Elements) {
				pages[i].Elements = kept
				if err := PutPage(b, scope, &pages[i]); err != nil {
					return err
				}
			}
		}
	}

	if err := Commit(b); err != nil {
		return err
	}
	logger.Log.Info("post_deleted", zap.String("scope", scope), zap.Int64("post", id))
	return nil
}
