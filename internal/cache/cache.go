// Package cache memoizes evidence lookups so repeated pipeline passes over
// the same claim text do not refetch sources.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching serialized payloads
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a claim's text
func Key(claimText string) string {
	hash := sha256.Sum256([]byte(claimText))
	return "veracity:v1:" + hex.EncodeToString(hash[:])
}
