package models

// SortType selects the server-side ordering of a listing.
type SortType string

const (
	SortHot SortType = "hot"
	SortNew SortType = "new"
	SortTop SortType = "top"
	SortOld SortType = "old"
)

// ListingType selects the source of a feed.
type ListingType string

const (
	ListingFrontpage  ListingType = "frontpage"
	ListingLocal      ListingType = "local"
	ListingCommunity  ListingType = "community"
	ListingSubscribed ListingType = "subscribed"
)

// FeedSpec is the query descriptor a feed was created from.
type FeedSpec struct {
	Listing ListingType `json:"listing"`
	// CommunityID is set when Listing is ListingCommunity.
	CommunityID int64    `json:"community_id,omitempty"`
	Sort        SortType `json:"sort"`
}

// Feed is an ordered set of pages plus a monotonically growing
// deduplication set of post activity ids (stored under separate keys, see
// pkg/store). PageCount is the index the next appended page will take.
type Feed struct {
	ID        string   `json:"id"`
	Scope     string   `json:"scope"`
	Spec      FeedSpec `json:"spec"`
	PageCount int      `json:"page_count"`
	CreatedTS int64    `json:"created_ts,omitempty"`
	UpdatedTS int64    `json:"updated_ts,omitempty"`
}

// PageElement binds a post into a page's presentation order.
type PageElement struct {
	Index  int   `json:"index"`
	PostID int64 `json:"post_id"`
}

// Page is an append-only batch of page elements produced by one fetch.
type Page struct {
	FeedID    string        `json:"feed_id"`
	Index     int           `json:"index"`
	Elements  []PageElement `json:"elements"`
	CreatedTS int64         `json:"created_ts,omitempty"`
}
