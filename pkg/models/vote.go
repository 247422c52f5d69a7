package models

// VoteStatus is the locally known vote state on a post or comment.
type VoteStatus string

const (
	VoteNeutral VoteStatus = "neutral"
	VoteUp      VoteStatus = "up"
	VoteDown    VoteStatus = "down"
)

// Normalize maps the zero value to neutral so records written before a
// vote was ever cast compare cleanly.
func (v VoteStatus) Normalize() VoteStatus {
	if v == "" {
		return VoteNeutral
	}
	return v
}
