// Package comments rebuilds hierarchical comment trees from the flat,
// path-addressed listings the remote API returns, and derives the
// presentation-order element sets stored per (post, sort type).
package comments

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"fedisync/pkg/logger"
)

// Segments parses a dot-separated ancestor chain ("0.123.789") into ids.
// The leading 0 is the synthetic root.
func Segments(path string) ([]int64, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(path, ".")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad path segment %q: %w", p, err)
		}
		out = append(out, id)
	}
	return out, nil
}

// parentOf returns the immediate parent comment id encoded in a path, or
// ok=false for top-level comments. A malformed path degrades to
// top-level rather than dropping the comment.
func parentOf(path string) (int64, bool) {
	segs, err := Segments(path)
	if err != nil {
		logger.Log.Warn("malformed_tree_path", zap.String("path", path), zap.Error(err))
		return 0, false
	}
	if len(segs) < 2 {
		return 0, false
	}
	parent := segs[len(segs)-2]
	if parent == 0 {
		// Parent is the synthetic root.
		return 0, false
	}
	return parent, true
}

// depthOf is the path segment count minus one; malformed paths count as
// top-level.
func depthOf(path string) int {
	if _, err := Segments(path); err != nil {
		return 0
	}
	return strings.Count(path, ".")
}
