// Package sitecache keeps per-scope site aggregates behind a TTL so
// repeated lookups within the window never hit the network.
package sitecache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"fedisync/pkg/logger"
	"fedisync/pkg/remote"
)

// Cache is a fetch-on-miss TTL cache of SiteInfo keyed by account scope.
type Cache struct {
	client remote.Client
	items  *ttlcache.Cache[string, *remote.SiteInfo]
}

// New creates a Cache with the given entry lifetime and starts the
// expiry janitor.
func New(client remote.Client, ttl time.Duration) *Cache {
	items := ttlcache.New[string, *remote.SiteInfo](
		ttlcache.WithTTL[string, *remote.SiteInfo](ttl),
	)
	go items.Start()
	return &Cache{client: client, items: items}
}

// Get returns the cached site aggregate for a scope, fetching it from
// the remote on a miss or after expiry.
func (c *Cache) Get(ctx context.Context, scope string, cred *remote.Credential) (*remote.SiteInfo, error) {
	if item := c.items.Get(scope); item != nil {
		return item.Value(), nil
	}
	info, err := c.client.FetchSiteInfo(ctx, cred)
	if err != nil {
		return nil, remote.WrapCall("site_info", err)
	}
	c.items.Set(scope, info, ttlcache.DefaultTTL)
	logger.Log.Debug("site_info_refreshed", zap.String("scope", scope))
	return info, nil
}

// Invalidate drops the cached aggregate for a scope.
func (c *Cache) Invalidate(scope string) {
	c.items.Delete(scope)
}

// Stop halts the expiry janitor.
func (c *Cache) Stop() {
	c.items.Stop()
}
