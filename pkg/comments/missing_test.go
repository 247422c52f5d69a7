package comments

import (
	"testing"

	"fedisync/pkg/remote"
)

func rec(id int64, path string, childCount int64) remote.CommentRecord {
	return remote.CommentRecord{ID: id, PostID: 7, Path: path, Content: "body", ChildCount: childCount}
}

func TestFindMissingChildren_Empty(t *testing.T) {
	if got := FindMissingChildren(nil); len(got) != 0 {
		t.Fatalf("expected no missing ids for empty batch, got %v", got)
	}
}

func TestFindMissingChildren_SingleWithChildren(t *testing.T) {
	got := FindMissingChildren([]remote.CommentRecord{rec(1, "0.1", 1)})
	if len(got) != 1 || got[0] != 1 {
		t.Fatalf("expected [1], got %v", got)
	}
}

func TestFindMissingChildren_SingleLeaf(t *testing.T) {
	if got := FindMissingChildren([]remote.CommentRecord{rec(1, "0.1", 0)}); len(got) != 0 {
		t.Fatalf("expected no missing ids, got %v", got)
	}
}

func TestFindMissingChildren_FullyFetchedBranch(t *testing.T) {
	batch := []remote.CommentRecord{
		rec(1, "0.1", 1),
		rec(2, "0.1.2", 0),
	}
	if got := FindMissingChildren(batch); len(got) != 0 {
		t.Fatalf("expected no missing ids, got %v", got)
	}
}

func TestFindMissingChildren_TwoSiblingsFullyFetched(t *testing.T) {
	// Both declared children present as siblings; the transition between
	// their prefixed paths must not register as a missing child.
	batch := []remote.CommentRecord{
		rec(1, "0.1", 2),
		rec(2, "0.1.2", 0),
		rec(3, "0.1.3", 0),
	}
	if got := FindMissingChildren(batch); len(got) != 0 {
		t.Fatalf("expected no missing ids, got %v", got)
	}
}

func TestFindMissingChildren_BranchEndWithUndisclosed(t *testing.T) {
	batch := []remote.CommentRecord{
		rec(1, "0.1", 2),
		rec(2, "0.1.2", 3),
		rec(4, "0.4", 0),
	}
	got := FindMissingChildren(batch)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
}

func TestFindMissingChildren_FinalElementChecked(t *testing.T) {
	batch := []remote.CommentRecord{
		rec(1, "0.1", 0),
		rec(4, "0.4", 2),
	}
	got := FindMissingChildren(batch)
	if len(got) != 1 || got[0] != 4 {
		t.Fatalf("expected [4], got %v", got)
	}
}

func TestFindMissingChildren_InputOrderIrrelevant(t *testing.T) {
	batch := []remote.CommentRecord{
		rec(4, "0.4", 0),
		rec(2, "0.1.2", 3),
		rec(1, "0.1", 2),
	}
	got := FindMissingChildren(batch)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected [2], got %v", got)
	}
}
