// Package cache is the advisory read-through cache in front of the schema
// adapters. Redis being down or unconfigured is never an error: Get
// degrades to a miss and Set to a no-op, and the request falls through to
// a direct query.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Endpoint TTLs. Player identity lookups tolerate less staleness than
// aggregate summaries.
const (
	TTLListing   = 30 * time.Second
	TTLAggregate = 60 * time.Second
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nhl_cache_hits_total",
		Help: "Total number of cache hits",
	})
	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nhl_cache_misses_total",
		Help: "Total number of cache misses",
	})
	cacheErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "nhl_cache_errors_total",
		Help: "Total number of Redis errors silently degraded to misses",
	})
)

// Client is the slice of go-redis the store needs. *redis.Client satisfies
// it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

type Store struct {
	rdb    Client
	logger *zap.SugaredLogger
}

// New builds a store. A nil client disables caching entirely; every Get is
// a miss.
func New(rdb Client, logger *zap.Logger) *Store {
	return &Store{rdb: rdb, logger: logger.Sugar()}
}

// Get returns the cached serialized JSON for key and whether it was
// present and fresh. Expiry is Redis-side; a stale entry is simply gone.
func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	if s == nil || s.rdb == nil {
		return "", false
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			cacheErrors.Inc()
			s.logger.Debugw("cache get failed", "key", key, "error", err)
		}
		cacheMisses.Inc()
		return "", false
	}
	cacheHits.Inc()
	return val, true
}

// Set stores serialized JSON with a TTL. Failures are logged and dropped;
// the response has already been computed.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		cacheErrors.Inc()
		s.logger.Debugw("cache set failed", "key", key, "error", err)
	}
}

// Keys builds cache keys for one mounted variant:
// {namespace}:{routePrefix}:{tag}[:{args...}].
type Keys struct {
	Namespace   string
	RoutePrefix string
}

func (k Keys) build(parts ...string) string {
	all := append([]string{k.Namespace, strings.Trim(k.RoutePrefix, "/")}, parts...)
	return strings.Join(all, ":")
}

func (k Keys) Players() string { return k.build("players") }

func (k Keys) Player(gamertag string) string { return k.build("player", gamertag) }

func (k Keys) Games() string { return k.build("games") }

func (k Keys) Leaderboard(rng string) string { return k.build("leaderboard", rng) }

func (k Keys) GlobalStats() string { return k.build("stats", "global") }
