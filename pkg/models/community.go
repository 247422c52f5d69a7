package models

// Community is the header record for a remote community, keyed by
// (instance-local id, account scope). Same header/info split as Person.
type Community struct {
	ID        int64  `json:"id"`
	Scope     string `json:"scope"`
	Name      string `json:"name,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
	CreatedTS int64  `json:"created_ts,omitempty"`
	UpdatedTS int64  `json:"updated_ts,omitempty"`
}

// CommunityInfo holds the lazily hydrated community detail.
type CommunityInfo struct {
	CommunityID     int64  `json:"community_id"`
	Scope           string `json:"scope"`
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	IconURL         string `json:"icon_url,omitempty"`
	SubscriberCount int64  `json:"subscriber_count,omitempty"`
	PostCount       int64  `json:"post_count,omitempty"`
	UpdatedTS       int64  `json:"updated_ts,omitempty"`
}
