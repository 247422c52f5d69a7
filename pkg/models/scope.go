package models

// AccountScope pairs a local user context with a remote instance. It is
// the unit of data isolation: every entity key carries the scope id, and
// all writes for one scope funnel through one serial worker.
type AccountScope struct {
	Instance string `json:"instance"`
	Username string `json:"username"`
}

// ID returns the canonical scope identifier used in store keys.
func (s AccountScope) ID() string {
	if s.Username == "" {
		return "anon@" + s.Instance
	}
	return s.Username + "@" + s.Instance
}
