// Package cache is a small string key/value cache used to memoize predictions.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
)

//go:generate mockgen -destination=mock/mockcache.go -package=mockcache . Cache

// Cache stores string values with a TTL.
type Cache interface {
	// Get returns the value stored under key and whether it was found.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key for ttl. A zero ttl never expires.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Close() error
}

// Key derives a fixed-size cache key from a namespace and the parts that
// identify a value.
func Key(namespace string, parts ...[]byte) string {
	h := xxhash.New()
	for _, p := range parts {
		_, _ = h.Write(p)
		_, _ = h.Write([]byte{0})
	}

	return namespace + ":" + strconv.FormatUint(h.Sum64(), 16)
}

// Noop never stores anything.
type Noop struct{}

var _ Cache = Noop{}

func (Noop) Get(context.Context, string) (string, bool, error) { return "", false, nil }

func (Noop) Set(context.Context, string, string, time.Duration) error { return nil }

func (Noop) Close() error { return nil }
