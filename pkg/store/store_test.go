package store

import (
	"errors"
	"testing"

	"fedisync/pkg/models"
)

func openStore(t *testing.T) {
	t.Helper()
	if err := Open(t.TempDir()); err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = Close() })
}

func TestGetPost_NotFound(t *testing.T) {
	openStore(t)
	if _, err := GetPost("alice@lemmy.ml", 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPostRoundTrip(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	b, err := NewBatch()
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	defer b.Close()
	p := &models.Post{ID: 42, Scope: scope, ActivityID: "act-42", CreatedTS: 1, UpdatedTS: 2}
	if err := PutPost(b, p); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := Commit(b); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err := GetPost(scope, 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ActivityID != "act-42" || got.CreatedTS != 1 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestLookupPostByActivity_PicksFirstOnAmbiguity(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	b, err := NewBatch()
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	defer b.Close()
	// Two posts claim the same activity id (a federation artifact). The
	// lookup resolves deterministically to the first in key order.
	if err := PutActivityRef(b, scope, "act-dup", 7); err != nil {
		t.Fatalf("put ref: %v", err)
	}
	if err := PutActivityRef(b, scope, "act-dup", 3); err != nil {
		t.Fatalf("put ref: %v", err)
	}
	if err := Commit(b); err != nil {
		t.Fatalf("commit: %v", err)
	}

	id, ok, err := LookupPostByActivity(scope, "act-dup")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok || id != 3 {
		t.Fatalf("expected first id in key order (3), got id=%d ok=%v", id, ok)
	}
}

func TestFindCommentByID(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	if err := SaveComment(&models.Comment{ID: 9, Scope: scope, PostID: 7, Path: "0.9"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	c, err := FindCommentByID(scope, 9)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if c.PostID != 7 {
		t.Fatalf("unexpected comment: %+v", c)
	}
	if _, err := FindCommentByID(scope, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReplaceCommentElements_IsolatedPerSort(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	hot := []models.CommentElement{
		{Kind: models.ElementComment, Sort: models.SortHot, Index: 0, CommentID: 1},
		{Kind: models.ElementComment, Sort: models.SortHot, Index: 1, CommentID: 2},
	}
	if err := ReplaceCommentElements(scope, 7, models.SortHot, hot); err != nil {
		t.Fatalf("replace hot: %v", err)
	}
	newer := []models.CommentElement{
		{Kind: models.ElementComment, Sort: models.SortNew, Index: 0, CommentID: 2},
	}
	if err := ReplaceCommentElements(scope, 7, models.SortNew, newer); err != nil {
		t.Fatalf("replace new: %v", err)
	}

	gotHot, err := ListCommentElements(scope, 7, models.SortHot)
	if err != nil {
		t.Fatalf("list hot: %v", err)
	}
	if len(gotHot) != 2 {
		t.Fatalf("hot set disturbed: %+v", gotHot)
	}

	// Replacement is wholesale, never a merge.
	if err := ReplaceCommentElements(scope, 7, models.SortHot, hot[:1]); err != nil {
		t.Fatalf("replace hot again: %v", err)
	}
	gotHot, err = ListCommentElements(scope, 7, models.SortHot)
	if err != nil {
		t.Fatalf("list hot: %v", err)
	}
	if len(gotHot) != 1 || gotHot[0].CommentID != 1 {
		t.Fatalf("stale elements survived: %+v", gotHot)
	}
}

func TestDeletePost_Cascades(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	b, err := NewBatch()
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	defer b.Close()
	if err := PutPost(b, &models.Post{ID: 42, Scope: scope, ActivityID: "act-42"}); err != nil {
		t.Fatalf("put post: %v", err)
	}
	if err := PutPostInfo(b, &models.PostInfo{PostID: 42, Scope: scope, Score: 5}); err != nil {
		t.Fatalf("put info: %v", err)
	}
	if err := PutActivityRef(b, scope, "act-42", 42); err != nil {
		t.Fatalf("put ref: %v", err)
	}
	if err := PutComment(b, &models.Comment{ID: 9, Scope: scope, PostID: 42, Path: "0.9"}); err != nil {
		t.Fatalf("put comment: %v", err)
	}
	f := &models.Feed{ID: "f1", Scope: scope, PageCount: 1}
	if err := PutFeed(b, f); err != nil {
		t.Fatalf("put feed: %v", err)
	}
	page := &models.Page{FeedID: "f1", Index: 0, Elements: []models.PageElement{
		{Index: 0, PostID: 42},
		{Index: 1, PostID: 43},
	}}
	if err := PutPage(b, scope, page); err != nil {
		t.Fatalf("put page: %v", err)
	}
	if err := Commit(b); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := ReplaceCommentElements(scope, 42, models.SortHot, []models.CommentElement{
		{Kind: models.ElementComment, Sort: models.SortHot, Index: 0, CommentID: 9},
	}); err != nil {
		t.Fatalf("replace elements: %v", err)
	}

	if err := DeletePost(scope, 42); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := GetPost(scope, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("post survived: %v", err)
	}
	if _, err := GetPostInfo(scope, 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("post info survived: %v", err)
	}
	if _, ok, _ := LookupPostByActivity(scope, "act-42"); ok {
		t.Fatalf("activity ref survived")
	}
	if _, err := GetComment(scope, 42, 9); !errors.Is(err, ErrNotFound) {
		t.Fatalf("comment survived: %v", err)
	}
	elems, err := ListCommentElements(scope, 42, models.SortHot)
	if err != nil {
		t.Fatalf("list elements: %v", err)
	}
	if len(elems) != 0 {
		t.Fatalf("elements survived: %+v", elems)
	}
	pages, err := ListPages(scope, "f1")
	if err != nil {
		t.Fatalf("list pages: %v", err)
	}
	if len(pages) != 1 || len(pages[0].Elements) != 1 || pages[0].Elements[0].PostID != 43 {
		t.Fatalf("page membership not rewritten: %+v", pages)
	}
}

func TestFeedSeen(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	seen, err := HasFeedSeen(scope, "f1", "act-1")
	if err != nil {
		t.Fatalf("has seen: %v", err)
	}
	if seen {
		t.Fatalf("fresh id reported as seen")
	}
	b, err := NewBatch()
	if err != nil {
		t.Fatalf("new batch: %v", err)
	}
	defer b.Close()
	if err := PutFeedSeen(b, scope, "f1", "act-1"); err != nil {
		t.Fatalf("put seen: %v", err)
	}
	if err := Commit(b); err != nil {
		t.Fatalf("commit: %v", err)
	}
	seen, err = HasFeedSeen(scope, "f1", "act-1")
	if err != nil {
		t.Fatalf("has seen: %v", err)
	}
	if !seen {
		t.Fatalf("recorded id not reported as seen")
	}
	// The set is per feed.
	seen, err = HasFeedSeen(scope, "f2", "act-1")
	if err != nil {
		t.Fatalf("has seen: %v", err)
	}
	if seen {
		t.Fatalf("dedup set leaked across feeds")
	}
}
