// Package telemetry exposes prometheus metrics for the sync engine.
// Served on the local status endpoint via promhttp.
package telemetry

import "github.com/prometheus/client_golang/prometheus"

var (
	// UpsertsTotal counts entity upserts by entity type and outcome
	// (created vs updated).
	UpsertsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fedisync",
		Name:      "upserts_total",
		Help:      "Entity upserts by type and outcome.",
	}, []string{"entity", "outcome"})

	// FeedPagesTotal counts pages appended to feeds.
	FeedPagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fedisync",
		Name:      "feed_pages_total",
		Help:      "Pages appended to feeds.",
	})

	// FeedDedupSkipsTotal counts listing entries dropped because their
	// activity id was already represented in the feed.
	FeedDedupSkipsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fedisync",
		Name:      "feed_dedup_skips_total",
		Help:      "Listing entries deduplicated against earlier pages.",
	})

	// VotesTotal counts vote attempts by outcome: committed, rolled_back,
	// missing_credential.
	VotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fedisync",
		Name:      "votes_total",
		Help:      "Vote mutations by outcome.",
	}, []string{"outcome"})

	// CommentBatchesTotal counts comment-tree reconcile passes.
	CommentBatchesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fedisync",
		Name:      "comment_batches_total",
		Help:      "Comment fetch batches reconciled.",
	})
)

func init() {
	prometheus.MustRegister(
		UpsertsTotal,
		FeedPagesTotal,
		FeedDedupSkipsTotal,
		VotesTotal,
		CommentBatchesTotal,
	)
}
