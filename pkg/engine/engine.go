// Package engine is the public surface of the sync engine. It composes
// the store, the remote client, per-scope serial workers, per-scope rate
// limiting, the vote coordinator and the site cache behind one handle.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fedisync/pkg/comments"
	"fedisync/pkg/feed"
	"fedisync/pkg/logger"
	"fedisync/pkg/models"
	"fedisync/pkg/reconcile"
	"fedisync/pkg/remote"
	"fedisync/pkg/scope"
	"fedisync/pkg/sitecache"
	"fedisync/pkg/store"
	"fedisync/pkg/vote"
)

// Options configures a new Engine. Remote and Creds are required; the
// rest fall back to the documented defaults.
type Options struct {
	Remote remote.Client
	Creds  remote.CredentialSource

	// Remote call budget per scope.
	RPS   float64
	Burst int

	// Listing page size requested from the remote.
	PageSize int
	// Maximum comment depth requested per comment fetch.
	MaxCommentDepth int
	// Site aggregate cache lifetime.
	SiteTTL time.Duration
	// Pending jobs per scope worker.
	QueueCapacity int
}

// Engine coordinates all cache mutations. All writes for one scope are
// funneled through that scope's serial worker, so readers never observe
// interleaved half-applied batches.
type Engine struct {
	remote remote.Client
	creds  remote.CredentialSource
	scopes *scope.Manager
	sites  *sitecache.Cache
	votes  *vote.Coordinator

	pageSize int
	maxDepth int

	limiters *limiterPool
}

// New creates an Engine. The store must already be open.
func New(opts Options) *Engine {
	if opts.RPS <= 0 {
		opts.RPS = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 4
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.MaxCommentDepth <= 0 {
		opts.MaxCommentDepth = 6
	}
	if opts.SiteTTL <= 0 {
		opts.SiteTTL = 5 * time.Minute
	}
	if opts.QueueCapacity <= 0 {
		opts.QueueCapacity = 1024
	}
	limiters := newLimiterPool(opts.RPS, opts.Burst)
	return &Engine{
		remote: opts.Remote,
		creds:  opts.Creds,
		scopes: scope.NewManager(opts.QueueCapacity),
		sites:  sitecache.New(opts.Remote, opts.SiteTTL),
		votes: &vote.Coordinator{
			Remote: opts.Remote,
			Creds:  opts.Creds,
			Limit:  func(scopeID string) vote.Waiter { return limiters.get(scopeID) },
		},
		pageSize: opts.PageSize,
		maxDepth: opts.MaxCommentDepth,
		limiters: limiters,
	}
}

// Close drains the scope workers and stops the site cache janitor.
func (e *Engine) Close() {
	e.scopes.Close()
	e.sites.Stop()
}

// perform runs fn on the scope's serial worker and waits for it.
func (e *Engine) perform(scopeID string, fn func() error) error {
	done := make(chan error, 1)
	if err := e.scopes.Perform(scopeID, func() { done <- fn() }); err != nil {
		return err
	}
	return <-done
}

// CreateFeed registers a new feed for a query spec.
func (e *Engine) CreateFeed(scopeID string, spec models.FeedSpec) (*models.Feed, error) {
	var f *models.Feed
	err := e.perform(scopeID, func() error {
		var ferr error
		f, ferr = feed.Create(scopeID, spec)
		return ferr
	})
	return f, err
}

// Feeds lists the feeds registered for a scope.
func (e *Engine) Feeds(scopeID string) ([]models.Feed, error) {
	return store.ListFeeds(scopeID)
}

// Pages returns a feed's pages in presentation order.
func (e *Engine) Pages(scopeID, feedID string) ([]models.Page, error) {
	return store.ListPages(scopeID, feedID)
}

// AppendFetchResults reconciles an externally fetched listing batch into
// a feed. Exposed for callers that drive their own transport.
func (e *Engine) AppendFetchResults(scopeID, feedID string, batch []remote.PostSummary) error {
	return e.perform(scopeID, func() error {
		return feed.Append(scopeID, feedID, batch)
	})
}

// RefreshFeed fetches the feed's next page from the remote and appends
// it. Returns the number of entries the remote produced; zero means the
// listing is exhausted for now.
func (e *Engine) RefreshFeed(ctx context.Context, scopeID, feedID string) (int, error) {
	f, err := store.GetFeed(scopeID, feedID)
	if err != nil {
		return 0, err
	}
	if err := e.limiters.get(scopeID).Wait(ctx); err != nil {
		return 0, err
	}
	batch, err := e.remote.FetchFeedPage(ctx, f.Spec, f.PageCount, e.pageSize, e.creds.Credential(scopeID))
	if err != nil {
		return 0, remote.WrapCall("feed_page", err)
	}
	if len(batch) == 0 {
		logger.Log.Debug("feed_page_empty",
			zap.String("scope", scopeID), zap.String("feed", feedID))
		return 0, nil
	}
	if err := e.perform(scopeID, func() error {
		return feed.Append(scopeID, feedID, batch)
	}); err != nil {
		return 0, err
	}
	return len(batch), nil
}

// UpsertComments reconciles an externally fetched comment batch for a
// post under one sort type. Exposed for callers that drive their own
// transport.
func (e *Engine) UpsertComments(scopeID string, postID int64, sort models.SortType, batch []remote.CommentRecord) error {
	return e.perform(scopeID, func() error {
		return comments.Reconcile(scopeID, postID, sort, batch)
	})
}

// RefreshComments fetches the comment listing for a post under one sort
// type and rebuilds the derived presentation elements for that sort.
func (e *Engine) RefreshComments(ctx context.Context, scopeID string, postID int64, sort models.SortType) error {
	if err := e.limiters.get(scopeID).Wait(ctx); err != nil {
		return err
	}
	batch, err := e.remote.FetchComments(ctx, postID, sort, e.maxDepth, e.creds.Credential(scopeID))
	if err != nil {
		return remote.WrapCall("comments", err)
	}
	return e.perform(scopeID, func() error {
		return comments.Reconcile(scopeID, postID, sort, batch)
	})
}

// CommentElements returns the derived presentation elements for a post
// under one sort type.
func (e *Engine) CommentElements(scopeID string, postID int64, sort models.SortType) ([]models.CommentElement, error) {
	return store.ListCommentElements(scopeID, postID, sort)
}

// VotePost applies a post vote asynchronously on the scope's worker. The
// returned channel delivers exactly one result once the mutation has
// committed, rolled back or been rejected.
func (e *Engine) VotePost(ctx context.Context, scopeID string, postID int64, action vote.Action) <-chan error {
	done := make(chan error, 1)
	if err := e.scopes.Perform(scopeID, func() {
		done <- e.votes.VotePost(ctx, scopeID, postID, action)
	}); err != nil {
		done <- err
	}
	return done
}

// VoteComment applies a comment vote asynchronously on the scope's
// worker.
func (e *Engine) VoteComment(ctx context.Context, scopeID string, commentID int64, action vote.Action) <-chan error {
	done := make(chan error, 1)
	if err := e.scopes.Perform(scopeID, func() {
		done <- e.votes.VoteComment(ctx, scopeID, commentID, action)
	}); err != nil {
		done <- err
	}
	return done
}

// GetOrCreatePost returns the cached post header, creating a skeleton
// for later hydration when the id has never been seen.
func (e *Engine) GetOrCreatePost(scopeID string, id int64) (*models.Post, error) {
	var p *models.Post
	err := e.perform(scopeID, func() error {
		var perr error
		p, perr = reconcile.EnsurePost(scopeID, id)
		return perr
	})
	return p, err
}

// GetOrCreatePerson returns the cached person header, creating a
// skeleton when the id has never been seen.
func (e *Engine) GetOrCreatePerson(scopeID string, id int64) (*models.Person, error) {
	var p *models.Person
	err := e.perform(scopeID, func() error {
		var perr error
		p, perr = reconcile.EnsurePerson(scopeID, id)
		return perr
	})
	return p, err
}

// SiteInfo returns the site aggregate for a scope, cached per SiteTTL.
func (e *Engine) SiteInfo(ctx context.Context, scopeID string) (*remote.SiteInfo, error) {
	return e.sites.Get(ctx, scopeID, e.creds.Credential(scopeID))
}

// DeletePost removes a post and everything hanging off it: info record,
// identity index entry, comments, derived elements and page membership.
func (e *Engine) DeletePost(scopeID string, id int64) error {
	return e.perform(scopeID, func() error {
		return store.DeletePost(scopeID, id)
	})
}
