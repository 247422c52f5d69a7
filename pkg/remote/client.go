// Package remote defines the abstract Remote API collaborator the sync
// engine consumes. Wire format and transport live outside this module;
// implementations return typed records.
package remote

import (
	"context"

	"fedisync/pkg/models"
)

// PersonRecord is a remote person representation. Pointer fields are
// optional: a summary payload leaves them nil and a partial upsert must
// not erase the locally cached values.
type PersonRecord struct {
	ID      int64
	Name    string
	ActorID string

	DisplayName  *string
	AvatarURL    *string
	Bio          *string
	PostCount    *int64
	CommentCount *int64
}

// CommunityRecord is a remote community representation.
type CommunityRecord struct {
	ID      int64
	Name    string
	ActorID string

	Title           *string
	Description     *string
	IconURL         *string
	SubscriberCount *int64
	PostCount       *int64
}

// PostSummary is one entry of a paginated feed listing. ActivityID is the
// server-independent stable identifier used for deduplication.
type PostSummary struct {
	ID         int64
	ActivityID string

	Title         *string
	Body          *string
	URL           *string
	Score         *int64
	UpvoteCount   *int64
	DownvoteCount *int64
	CommentCount  *int64
	MyVote        *models.VoteStatus
	PublishedTS   *int64

	Creator   *PersonRecord
	Community *CommunityRecord
}

// CommentRecord is one entry of a flat comment listing. Path is the
// dot-separated ancestor chain; ChildCount is the server-declared number
// of direct children, fetched or not.
type CommentRecord struct {
	ID          int64
	PostID      int64
	Path        string
	Content     string
	Score       int64
	MyVote      models.VoteStatus
	ChildCount  int64
	ActivityID  string
	PublishedTS int64

	Creator *PersonRecord
}

// VoteResponse is the authoritative post-vote state returned by the
// server; it supersedes any optimistic local values.
type VoteResponse struct {
	Score         int64
	UpvoteCount   int64
	DownvoteCount int64
	MyVote        models.VoteStatus
}

// TargetKind selects what a vote applies to.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// VoteAction is the effective action sent over the wire after toggle-off
// resolution.
type VoteAction string

const (
	VoteActionUp     VoteAction = "upvote"
	VoteActionDown   VoteAction = "downvote"
	VoteActionUnvote VoteAction = "unvote"
)

// SiteInfo is the site-level aggregate record.
type SiteInfo struct {
	Name           string
	Description    string
	Version        string
	UserCount      int64
	CommunityCount int64
	PostCount      int64
}

// Client is the Remote API collaborator. Calls may suspend, fail or never
// complete; the engine must tolerate all three.
type Client interface {
	FetchFeedPage(ctx context.Context, spec models.FeedSpec, page, limit int, cred *Credential) ([]PostSummary, error)
	FetchComments(ctx context.Context, postID int64, sort models.SortType, maxDepth int, cred *Credential) ([]CommentRecord, error)
	Vote(ctx context.Context, targetID int64, kind TargetKind, action VoteAction, cred *Credential) (*VoteResponse, error)
	FetchSiteInfo(ctx context.Context, cred *Credential) (*SiteInfo, error)
}
