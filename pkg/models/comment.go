package models

import "strings"

// Comment is keyed by (instance-local id, post). Unlike posts there is no
// header/info split; score and vote status live on the record itself.
//
// Path is the dot-separated ancestor-id chain (e.g. "0.123.789") encoding
// tree position; the leading 0 is the synthetic root.
type Comment struct {
	ID          int64      `json:"id"`
	Scope       string     `json:"scope"`
	PostID      int64      `json:"post_id"`
	Path        string     `json:"path"`
	Content     string     `json:"content,omitempty"`
	Score       int64      `json:"score"`
	MyVote      VoteStatus `json:"my_vote,omitempty"`
	ChildCount  int64      `json:"child_count,omitempty"`
	CreatorID   int64      `json:"creator_id,omitempty"`
	ActivityID  string     `json:"activity_id,omitempty"`
	PublishedTS int64      `json:"published_ts,omitempty"`
	UpdatedTS   int64      `json:"updated_ts,omitempty"`
}

// Depth is the path segment count minus one.
func (c *Comment) Depth() int {
	if c.Path == "" {
		return 0
	}
	return strings.Count(c.Path, ".")
}

// ElementKind distinguishes concrete comment elements from "more"
// placeholders standing in for children the server reported but did not
// return.
type ElementKind string

const (
	ElementComment ElementKind = "comment"
	ElementMore    ElementKind = "more"
)

// CommentElement is a presentation-order record derived from one comment
// fetch. The set for a given (post, sort) pair is replaced wholesale on
// every fetch; it is never merged.
type CommentElement struct {
	Kind  ElementKind `json:"kind"`
	Sort  SortType    `json:"sort"`
	Index int         `json:"index"`
	Depth int         `json:"depth"`
	// CommentID backs ElementComment entries.
	CommentID int64 `json:"comment_id,omitempty"`
	// ParentID and MissingCount back ElementMore entries.
	ParentID     int64 `json:"parent_id,omitempty"`
	MissingCount int64 `json:"missing_count,omitempty"`
}
