package comments

import (
	"sort"
	"strings"

	"fedisync/pkg/remote"
)

// FindMissingChildren returns the ids of comments whose server-declared
// child count exceeds what the batch actually contains, i.e. the nodes
// that need a "more" placeholder.
//
// The walk sorts paths as literal strings. Ids are not zero-padded, so
// lexicographic order is only a locally correct proxy for tree adjacency
// ("0.10" sorts before "0.9"). That tie-break is load-bearing for
// compatibility with existing data and is deliberately not corrected.
func FindMissingChildren(comments []remote.CommentRecord) []int64 {
	if len(comments) == 0 {
		return nil
	}

	sorted := make([]remote.CommentRecord, len(comments))
	copy(sorted, comments)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	var missing []int64
	prev := sorted[0]
	for _, next := range sorted[1:] {
		if strings.HasPrefix(next.Path, prev.Path) {
			// Deeper in the same branch.
			prev = next
			continue
		}
		// prev is the deepest-known node of its branch; an undisclosed
		// child count means children exist that this batch did not carry.
		if prev.ChildCount > 0 {
			missing = append(missing, prev.ID)
		}
		prev = next
	}
	// The final node has no successor to compare against but may still
	// declare children.
	if prev.ChildCount > 0 {
		missing = append(missing, prev.ID)
	}
	return missing
}
