package models

// Person is the header record for a remote user. It is keyed by the
// instance-local numeric id plus the account scope and may exist without
// its PersonInfo side record until a profile is actually opened.
type Person struct {
	ID    int64  `json:"id"`
	Scope string `json:"scope"`
	// Name is the handle as known by the home instance.
	Name string `json:"name,omitempty"`
	// ActorID is the instance-independent identity URL.
	ActorID   string `json:"actor_id,omitempty"`
	CreatedTS int64  `json:"created_ts,omitempty"`
	UpdatedTS int64  `json:"updated_ts,omitempty"`
}

// PersonInfo is the lazily hydrated extended profile, 1:1 with a Person
// header and only deleted together with it.
type PersonInfo struct {
	PersonID     int64  `json:"person_id"`
	Scope        string `json:"scope"`
	DisplayName  string `json:"display_name,omitempty"`
	AvatarURL    string `json:"avatar_url,omitempty"`
	Bio          string `json:"bio,omitempty"`
	PostCount    int64  `json:"post_count,omitempty"`
	CommentCount int64  `json:"comment_count,omitempty"`
	UpdatedTS    int64  `json:"updated_ts,omitempty"`
}
