package comments

import (
	"testing"

	"fedisync/pkg/remote"
)

func ids(batch []remote.CommentRecord) []int64 {
	out := make([]int64, len(batch))
	for i, c := range batch {
		out[i] = c.ID
	}
	return out
}

func TestSortForPresentation_ParentBeforeChild(t *testing.T) {
	in := []remote.CommentRecord{
		rec(9, "0.5.9", 0),
		rec(5, "0.5", 1),
		rec(7, "0.7", 0),
	}
	got := ids(SortForPresentation(in))
	want := []int64{5, 9, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestSortForPresentation_DeepChain(t *testing.T) {
	in := []remote.CommentRecord{
		rec(3, "0.1.2.3", 0),
		rec(1, "0.1", 1),
		rec(2, "0.1.2", 1),
	}
	got := ids(SortForPresentation(in))
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestSortForPresentation_OrphanKeptTopLevel(t *testing.T) {
	// Parent 99 is absent from the batch; the orphan stays visible at the
	// top level instead of being dropped.
	in := []remote.CommentRecord{
		rec(3, "0.99.3", 0),
		rec(5, "0.5", 0),
	}
	got := ids(SortForPresentation(in))
	want := []int64{3, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestSortForPresentation_SiblingArrivalOrder(t *testing.T) {
	in := []remote.CommentRecord{
		rec(1, "0.9", 0),
		rec(2, "0.3", 0),
		rec(3, "0.6", 0),
	}
	got := ids(SortForPresentation(in))
	// Siblings keep arrival order; nothing re-sorts by id or path.
	want := []int64{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order mismatch: got %v, want %v", got, want)
		}
	}
}

func TestSortForPresentation_MalformedPathTopLevel(t *testing.T) {
	in := []remote.CommentRecord{
		rec(1, "0.5", 0),
		rec(2, "garbage.path", 0),
	}
	got := ids(SortForPresentation(in))
	if len(got) != 2 {
		t.Fatalf("malformed path dropped a comment: %v", got)
	}
}
