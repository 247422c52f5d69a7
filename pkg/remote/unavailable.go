package remote

import (
	"context"
	"errors"

	"fedisync/pkg/models"
)

// ErrUnavailable is returned by Unavailable for every call.
var ErrUnavailable = errors.New("no remote transport configured")

// Unavailable is a Client for deployments that drive their own transport
// and feed results in through the engine's append entry points. Every
// call fails fast with ErrUnavailable.
type Unavailable struct{}

func (Unavailable) FetchFeedPage(context.Context, models.FeedSpec, int, int, *Credential) ([]PostSummary, error) {
	return nil, WrapCall("feed_page", ErrUnavailable)
}

func (Unavailable) FetchComments(context.Context, int64, models.SortType, int, *Credential) ([]CommentRecord, error) {
	return nil, WrapCall("comments", ErrUnavailable)
}

func (Unavailable) Vote(context.Context, int64, TargetKind, VoteAction, *Credential) (*VoteResponse, error) {
	return nil, WrapCall("vote", ErrUnavailable)
}

func (Unavailable) FetchSiteInfo(context.Context, *Credential) (*SiteInfo, error) {
	return nil, WrapCall("site_info", ErrUnavailable)
}
