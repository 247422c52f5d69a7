package comments

import (
	"go.uber.org/zap"

	"fedisync/pkg/logger"
	"fedisync/pkg/models"
	"fedisync/pkg/reconcile"
	"fedisync/pkg/remote"
	"fedisync/pkg/store"
	"fedisync/pkg/telemetry"
)

// BuildElements materializes the presentation-order element records for
// one comment fetch: one element per comment in DFS order, plus a "more"
// placeholder directly after each node known to have unfetched children.
func BuildElements(sort models.SortType, batch []remote.CommentRecord) []models.CommentElement {
	ordered := SortForPresentation(batch)
	missing := make(map[int64]int64)
	for _, id := range FindMissingChildren(batch) {
		for _, c := range batch {
			if c.ID == id {
				missing[id] = c.ChildCount
				break
			}
		}
	}

	out := make([]models.CommentElement, 0, len(ordered)+len(missing))
	idx := 0
	for _, c := range ordered {
		depth := depthOf(c.Path)
		out = append(out, models.CommentElement{
			Kind:      models.ElementComment,
			Sort:      sort,
			Index:     idx,
			Depth:     depth,
			CommentID: c.ID,
		})
		idx++
		if count, ok := missing[c.ID]; ok {
			out = append(out, models.CommentElement{
				Kind:         models.ElementMore,
				Sort:         sort,
				Index:        idx,
				Depth:        depth + 1,
				ParentID:     c.ID,
				MissingCount: count,
			})
			idx++
		}
	}
	return out
}

// Reconcile upserts a fetched comment batch and replaces the derived
// element set for (post, sort). Element sets for other sort types of the
// same post are untouched.
func Reconcile(scope string, postID int64, sort models.SortType, batch []remote.CommentRecord) error {
	b, err := store.NewBatch()
	if err != nil {
		return err
	}
	defer b.Close()
	for i := range batch {
		if _, err := reconcile.UpsertComment(b, scope, &batch[i], reconcile.Full); err != nil {
			return err
		}
	}
	if err := store.Commit(b); err != nil {
		return err
	}

	elems := BuildElements(sort, batch)
	if err := store.ReplaceCommentElements(scope, postID, sort, elems); err != nil {
		return err
	}
	telemetry.CommentBatchesTotal.Inc()
	logger.Log.Debug("comment_batch_reconciled",
		zap.String("scope", scope),
		zap.Int64("post", postID),
		zap.String("sort", string(sort)),
		zap.Int("comments", len(batch)),
		zap.Int("elements", len(elems)))
	return nil
}
