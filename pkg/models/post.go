package models

// Post is the header record for a remote post, keyed by (instance-local
// id, account scope). ActivityID is the server-independent stable
// identifier used for cross-fetch feed deduplication.
type Post struct {
	ID         int64  `json:"id"`
	Scope      string `json:"scope"`
	ActivityID string `json:"activity_id,omitempty"`
	CreatedTS  int64  `json:"created_ts,omitempty"`
	UpdatedTS  int64  `json:"updated_ts,omitempty"`
}

// PostInfo is the lazily hydrated post detail. Score and MyVote are the
// fields mutated optimistically by the vote coordinator.
type PostInfo struct {
	PostID        int64      `json:"post_id"`
	Scope         string     `json:"scope"`
	Title         string     `json:"title,omitempty"`
	Body          string     `json:"body,omitempty"`
	URL           string     `json:"url,omitempty"`
	Score         int64      `json:"score"`
	UpvoteCount   int64      `json:"upvote_count,omitempty"`
	DownvoteCount int64      `json:"downvote_count,omitempty"`
	CommentCount  int64      `json:"comment_count,omitempty"`
	MyVote        VoteStatus `json:"my_vote,omitempty"`
	CreatorID     int64      `json:"creator_id,omitempty"`
	CommunityID   int64      `json:"community_id,omitempty"`
	PublishedTS   int64      `json:"published_ts,omitempty"`
	UpdatedTS     int64      `json:"updated_ts,omitempty"`
}
