package comments

import (
	"testing"

	"fedisync/pkg/models"
	"fedisync/pkg/remote"
	"fedisync/pkg/store"
)

func openStore(t *testing.T) {
	t.Helper()
	if err := store.Open(t.TempDir()); err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
}

func TestBuildElements_MorePlaceholderAfterMissingNode(t *testing.T) {
	batch := []remote.CommentRecord{
		rec(1, "0.1", 1),
		rec(2, "0.1.2", 0),
		rec(4, "0.4", 2),
	}
	elems := BuildElements(models.SortHot, batch)
	if len(elems) != 4 {
		t.Fatalf("expected 4 elements, got %d", len(elems))
	}
	for i, e := range elems {
		if e.Index != i {
			t.Fatalf("element %d has index %d", i, e.Index)
		}
		if e.Sort != models.SortHot {
			t.Fatalf("element %d has sort %q", i, e.Sort)
		}
	}
	if elems[0].Kind != models.ElementComment || elems[0].CommentID != 1 || elems[0].Depth != 1 {
		t.Fatalf("unexpected first element: %+v", elems[0])
	}
	if elems[1].Kind != models.ElementComment || elems[1].CommentID != 2 || elems[1].Depth != 2 {
		t.Fatalf("unexpected second element: %+v", elems[1])
	}
	if elems[2].Kind != models.ElementComment || elems[2].CommentID != 4 {
		t.Fatalf("unexpected third element: %+v", elems[2])
	}
	more := elems[3]
	if more.Kind != models.ElementMore || more.ParentID != 4 || more.MissingCount != 2 {
		t.Fatalf("unexpected more placeholder: %+v", more)
	}
	if more.Depth != elems[2].Depth+1 {
		t.Fatalf("more placeholder depth %d, want parent+1 = %d", more.Depth, elems[2].Depth+1)
	}
}

func TestBuildElements_NoPlaceholdersWhenComplete(t *testing.T) {
	batch := []remote.CommentRecord{
		rec(1, "0.1", 1),
		rec(2, "0.1.2", 0),
	}
	elems := BuildElements(models.SortNew, batch)
	if len(elems) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elems))
	}
	for _, e := range elems {
		if e.Kind == models.ElementMore {
			t.Fatalf("unexpected more placeholder: %+v", e)
		}
	}
}

func TestReconcile_ReplacesElementSetPerSort(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	hotBatch := []remote.CommentRecord{
		rec(1, "0.1", 0),
		rec(2, "0.2", 0),
		rec(3, "0.3", 0),
	}
	if err := Reconcile(scope, 7, models.SortHot, hotBatch); err != nil {
		t.Fatalf("reconcile hot: %v", err)
	}
	newBatch := []remote.CommentRecord{
		rec(3, "0.3", 0),
		rec(1, "0.1", 0),
	}
	if err := Reconcile(scope, 7, models.SortNew, newBatch); err != nil {
		t.Fatalf("reconcile new: %v", err)
	}

	hot, err := store.ListCommentElements(scope, 7, models.SortHot)
	if err != nil {
		t.Fatalf("list hot: %v", err)
	}
	if len(hot) != 3 {
		t.Fatalf("hot element set disturbed by other sort: %d elements", len(hot))
	}
	newer, err := store.ListCommentElements(scope, 7, models.SortNew)
	if err != nil {
		t.Fatalf("list new: %v", err)
	}
	if len(newer) != 2 || newer[0].CommentID != 3 {
		t.Fatalf("unexpected new-sort elements: %+v", newer)
	}

	// A refetch under the same sort replaces wholesale: no stale tail.
	if err := Reconcile(scope, 7, models.SortHot, hotBatch[:1]); err != nil {
		t.Fatalf("reconcile hot again: %v", err)
	}
	hot, err = store.ListCommentElements(scope, 7, models.SortHot)
	if err != nil {
		t.Fatalf("list hot: %v", err)
	}
	if len(hot) != 1 {
		t.Fatalf("stale elements survived replacement: %+v", hot)
	}
}

func TestReconcile_PersistsComments(t *testing.T) {
	openStore(t)
	scope := "alice@lemmy.ml"

	batch := []remote.CommentRecord{
		{ID: 9, PostID: 7, Path: "0.9", Content: "hello", Score: 3, ChildCount: 0},
	}
	if err := Reconcile(scope, 7, models.SortHot, batch); err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	c, err := store.GetComment(scope, 7, 9)
	if err != nil {
		t.Fatalf("get comment: %v", err)
	}
	if c.Content != "hello" || c.Score != 3 {
		t.Fatalf("unexpected comment: %+v", c)
	}
}
