// Package cache provides an in-memory TTL cache for analytics results so
// that repeated CLI invocations within a session do not recompute reports.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"
)

// Durations holds the default TTL per report type.
var Durations = map[string]time.Duration{
	"analyze":          2 * time.Hour,
	"recommend":        2 * time.Hour,
	"predict":          2 * time.Hour,
	"optimal_schedule": 4 * time.Hour,
	"quality":          30 * time.Minute,
	"burnout":          6 * time.Hour,
	"anomalies":        6 * time.Hour,
	"diversity":        2 * time.Hour,
	"insights":         2 * time.Hour,
}

// DefaultTTL applies to report types not listed in Durations.
const DefaultTTL = time.Hour

type entry struct {
	data      any
	expiresAt time.Time
}

// Cache is a concurrency-safe TTL cache keyed by report type and parameters.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New returns a cache using the given clock. A nil clock means time.Now.
func New(now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Key derives a stable cache key from the report type and its parameters.
func Key(reportType string, params map[string]string) string {
	if len(params) == 0 {
		return reportType
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
		b.WriteByte(';')
	}
	sum := md5.Sum([]byte(b.String()))
	return reportType + ":" + hex.EncodeToString(sum[:])[:16]
}

// Get returns the cached value for key if it has not expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set stores data under key with the TTL of reportType.
func (c *Cache) Set(reportType, key string, data any) {
	ttl, ok := Durations[reportType]
	if !ok {
		ttl = DefaultTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, expiresAt: c.now().Add(ttl)}
}

// InvalidateAll drops every entry. Called when a new session is logged so
// all reports reflect the latest data.
func (c *Cache) InvalidateAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[string]entry)
	return n
}

// Len reports the number of live entries, expiring stale ones first.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	return len(c.entries)
}
