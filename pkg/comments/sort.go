package comments

import "fedisync/pkg/remote"

// SortForPresentation orders a flat comment batch parent-before-children
// by pre-order depth-first traversal. Siblings keep their relative arrival
// order; nothing is re-sorted by id or score. Comments whose parent is
// not present in the batch are grouped under the synthetic root alongside
// top-level comments.
func SortForPresentation(comments []remote.CommentRecord) []remote.CommentRecord {
	if len(comments) <= 1 {
		return append([]remote.CommentRecord(nil), comments...)
	}

	present := make(map[int64]bool, len(comments))
	for _, c := range comments {
		present[c.ID] = true
	}

	children := make(map[int64][]int, len(comments))
	var roots []int
	for i, c := range comments {
		parent, ok := parentOf(c.Path)
		if ok && present[parent] {
			children[parent] = append(children[parent], i)
		} else {
			roots = append(roots, i)
		}
	}

	out := make([]remote.CommentRecord, 0, len(comments))
	var visit func(idx int)
	visit = func(idx int) {
		out = append(out, comments[idx])
		for _, child := range children[comments[idx].ID] {
			visit(child)
		}
	}
	for _, r := range roots {
		visit(r)
	}
	return out
}
