// Package cache provides a Redis-backed cache for analysis reports. The
// report for a given (datasets, region) pair is identical for every caller,
// so entries are keyed on a digest of the request parameters rather than on
// the user. The cache sits inside the handler, after authentication and
// before the audit insert, so every request is still audited on a hit.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farmsync/farmsync-api/internal/analysis"
	"github.com/farmsync/farmsync-api/internal/config"
)

// ReportCache wraps a Redis client. A nil client or a disabled config turns
// every operation into a no-op, so callers never branch on availability.
type ReportCache struct {
	rdb *redis.Client
	cfg config.CacheConfig
}

func NewReportCache(cfg config.CacheConfig, rdb *redis.Client) *ReportCache {
	return &ReportCache{rdb: rdb, cfg: cfg}
}

func (c *ReportCache) enabled() bool { return c != nil && c.cfg.Enabled && c.rdb != nil }

// Key builds a stable cache key from the request parameters. Dataset order
// must not matter, so the identifiers are sorted before hashing.
func (c *ReportCache) Key(datasets []string, region string) string {
	sorted := make([]string, len(datasets))
	copy(sorted, datasets)
	sort.Strings(sorted)
	sum := sha1.Sum([]byte(region + "|" + strings.Join(sorted, ",")))
	return fmt.Sprintf("%s:%x", c.cfg.Prefix, sum[:])
}

// Get returns the cached report for the parameters, or ok=false on a miss,
// a decode failure or any Redis error. Errors are swallowed; a broken cache
// must never fail the request.
func (c *ReportCache) Get(ctx context.Context, datasets []string, region string) (analysis.Report, bool) {
	var r analysis.Report
	if !c.enabled() {
		return r, false
	}
	bs, err := c.rdb.Get(ctx, c.Key(datasets, region)).Bytes()
	if err != nil {
		return r, false
	}
	if err := json.Unmarshal(bs, &r); err != nil {
		return r, false
	}
	return r, true
}

// Set stores the report under the parameter key with the configured TTL.
func (c *ReportCache) Set(ctx context.Context, datasets []string, region string, r analysis.Report) {
	if !c.enabled() {
		return
	}
	bs, err := json.Marshal(r)
	if err != nil {
		return
	}
	ttl := c.cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	_ = c.rdb.Set(ctx, c.Key(datasets, region), bs, ttl).Err()
}
