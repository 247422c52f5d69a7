package vote

import (
	"context"

	"go.uber.org/zap"

	"github.com/oklog/ulid/v2"

	"fedisync/pkg/logger"
	"fedisync/pkg/remote"
	"fedisync/pkg/store"
	"fedisync/pkg/telemetry"
)

// Waiter gates a remote call until the scope's budget allows it.
// *rate.Limiter satisfies it.
type Waiter interface {
	Wait(ctx context.Context) error
}

// Coordinator drives the optimistic mutation state machine for votes on
// posts and comments.
type Coordinator struct {
	Remote remote.Client
	Creds  remote.CredentialSource
	// Limit returns the scope's remote-call gate. Nil means unthrottled.
	Limit func(scope string) Waiter
}

func (c *Coordinator) wait(ctx context.Context, scope string) error {
	if c.Limit == nil {
		return nil
	}
	return c.Limit(scope).Wait(ctx)
}

// VotePost votes on a post. Persistence failures along the way are
// logged, never returned; only credential and remote-call failures reach
// the caller.
func (c *Coordinator) VotePost(ctx context.Context, scope string, postID int64, requested Action) error {
	info, err := store.GetPostInfo(scope, postID)
	if err != nil {
		return err
	}
	mid := ulid.Make().String()

	// Rollback snapshot.
	prevVote := info.MyVote.Normalize()
	prevScore := info.Score

	eff := EffectiveAction(prevVote, requested)
	info.Score += ScoreDelta(prevVote, requested)
	info.MyVote = StatusAfter(eff)
	if serr := store.SavePostInfo(info); serr != nil {
		logger.Log.Error("vote_optimistic_save_failed",
			zap.String("mutation", mid), zap.Error(serr))
	}

	cred := c.Creds.Credential(scope)
	if !cred.Valid() {
		telemetry.VotesTotal.WithLabelValues("missing_credential").Inc()
		logger.Log.Warn("vote_missing_credential",
			zap.String("mutation", mid),
			zap.String("scope", scope),
			zap.Int64("post", postID))
		return ErrMissingCredential
	}

	// Throttled like every other remote call. A cancelled wait never
	// reached the server, so the optimistic state is rolled back.
	if werr := c.wait(ctx, scope); werr != nil {
		info.MyVote = prevVote
		info.Score = prevScore
		if serr := store.SavePostInfo(info); serr != nil {
			logger.Log.Error("vote_rollback_save_failed",
				zap.String("mutation", mid), zap.Error(serr))
		}
		telemetry.VotesTotal.WithLabelValues("rolled_back").Inc()
		logger.Log.Warn("vote_throttle_cancelled",
			zap.String("mutation", mid),
			zap.String("scope", scope),
			zap.Int64("post", postID),
			zap.Error(werr))
		return werr
	}

	resp, rerr := c.Remote.Vote(ctx, postID, remote.TargetPost, eff, cred)
	if rerr != nil {
		info.MyVote = prevVote
		info.Score = prevScore
		if serr := store.SavePostInfo(info); serr != nil {
			logger.Log.Error("vote_rollback_save_failed",
				zap.String("mutation", mid), zap.Error(serr))
		}
		telemetry.VotesTotal.WithLabelValues("rolled_back").Inc()
		logger.Log.Warn("vote_rolled_back",
			zap.String("mutation", mid),
			zap.String("scope", scope),
			zap.Int64("post", postID),
			zap.Error(rerr))
		return remote.WrapCall("vote", rerr)
	}

	// Authoritative server state supersedes the optimistic values.
	info.Score = resp.Score
	info.UpvoteCount = resp.UpvoteCount
	info.DownvoteCount = resp.DownvoteCount
	info.MyVote = resp.MyVote.Normalize()
	if serr := store.SavePostInfo(info); serr != nil {
		logger.Log.Error("vote_commit_save_failed",
			zap.String("mutation", mid), zap.Error(serr))
	}
	telemetry.VotesTotal.WithLabelValues("committed").Inc()
	logger.Log.Debug("vote_committed",
		zap.String("mutation", mid),
		zap.String("scope", scope),
		zap.Int64("post", postID),
		zap.String("effective", string(eff)))
	return nil
}

// VoteComment votes on a comment. Same state machine as VotePost but the
// counters live on the comment record itself.
func (c *Coordinator) VoteComment(ctx context.Context, scope string, commentID int64, requested Action) error {
	cm, err := store.FindCommentByID(scope, commentID)
	if err != nil {
		return err
	}
	mid := ulid.Make().String()

	prevVote := cm.MyVote.Normalize()
	prevScore := cm.Score

	eff := EffectiveAction(prevVote, requested)
	cm.Score += ScoreDelta(prevVote, requested)
	cm.MyVote = StatusAfter(eff)
	if serr := store.SaveComment(cm); serr != nil {
		logger.Log.Error("vote_optimistic_save_failed",
			zap.String("mutation", mid), zap.Error(serr))
	}

	cred := c.Creds.Credential(scope)
	if !cred.Valid() {
		telemetry.VotesTotal.WithLabelValues("missing_credential").Inc()
		logger.Log.Warn("vote_missing_credential",
			zap.String("mutation", mid),
			zap.String("scope", scope),
			zap.Int64("comment", commentID))
		return ErrMissingCredential
	}

	if werr := c.wait(ctx, scope); werr != nil {
		cm.MyVote = prevVote
		cm.Score = prevScore
		if serr := store.SaveComment(cm); serr != nil {
			logger.Log.Error("vote_rollback_save_failed",
				zap.String("mutation", mid), zap.Error(serr))
		}
		telemetry.VotesTotal.WithLabelValues("rolled_back").Inc()
		logger.Log.Warn("vote_throttle_cancelled",
			zap.String("mutation", mid),
			zap.String("scope", scope),
			zap.Int64("comment", commentID),
			zap.Error(werr))
		return werr
	}

	resp, rerr := c.Remote.Vote(ctx, commentID, remote.TargetComment, eff, cred)
	if rerr != nil {
		cm.MyVote = prevVote
		cm.Score = prevScore
		if serr := store.SaveComment(cm); serr != nil {
			logger.Log.Error("vote_rollback_save_failed",
				zap.String("mutation", mid), zap.Error(serr))
		}
		telemetry.VotesTotal.WithLabelValues("rolled_back").Inc()
		logger.Log.Warn("vote_rolled_back",
			zap.String("mutation", mid),
			zap.String("scope", scope),
			zap.Int64("comment", commentID),
			zap.Error(rerr))
		return remote.WrapCall("vote", rerr)
	}

	cm.Score = resp.Score
	cm.MyVote = resp.MyVote.Normalize()
	if serr := store.SaveComment(cm); serr != nil {
		logger.Log.Error("vote_commit_save_failed",
			zap.String("mutation", mid), zap.Error(serr))
	}
	telemetry.VotesTotal.WithLabelValues("committed").Inc()
	return nil
}
