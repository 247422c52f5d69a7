// Package vote applies vote mutations optimistically: the local score and
// vote status change synchronously before the network round-trip, the
// remote call carries the toggle-resolved effective action, and a failed
// call restores the pre-mutation snapshot.
package vote

import (
	"errors"

	"fedisync/pkg/models"
	"fedisync/pkg/remote"
)

// Action is what the user requested; toggle-off resolution happens in
// EffectiveAction.
type Action string

const (
	ActionUpvote   Action = "upvote"
	ActionDownvote Action = "downvote"
)

// ErrMissingCredential is returned when a vote is attempted on a
// signed-out scope. No remote call is made; the already-applied
// optimistic local change is intentionally left in place since nothing
// was ever sent.
var ErrMissingCredential = errors.New("vote requires an authenticated credential")

// EffectiveAction resolves the vote transition to send remotely:
// repeating the current vote toggles it off (unvote), anything else is
// the requested action.
func EffectiveAction(current models.VoteStatus, requested Action) remote.VoteAction {
	switch current.Normalize() {
	case models.VoteUp:
		if requested == ActionUpvote {
			return remote.VoteActionUnvote
		}
	case models.VoteDown:
		if requested == ActionDownvote {
			return remote.VoteActionUnvote
		}
	}
	if requested == ActionDownvote {
		return remote.VoteActionDown
	}
	return remote.VoteActionUp
}

// ScoreDelta is the synchronous local counter adjustment for a requested
// action against the current vote status.
func ScoreDelta(current models.VoteStatus, requested Action) int64 {
	switch current.Normalize() {
	case models.VoteNeutral:
		if requested == ActionUpvote {
			return 1
		}
		return -1
	case models.VoteUp:
		if requested == ActionUpvote {
			return -1
		}
		return -2
	default: // down
		if requested == ActionDownvote {
			return 1
		}
		return 2
	}
}

// StatusAfter maps an effective action onto the resulting local vote
// status.
func StatusAfter(eff remote.VoteAction) models.VoteStatus {
	switch eff {
	case remote.VoteActionUp:
		return models.VoteUp
	case remote.VoteActionDown:
		return models.VoteDown
	default:
		return models.VoteNeutral
	}
}
