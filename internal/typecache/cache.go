// Package typecache resolves type definitions for the binding: an
// in-memory LRU in front of an optional Postgres store in front of the
// server.
package typecache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

var (
	cacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cmis_type_cache_hits_total",
		Help: "Type definition lookups served from the in-memory cache.",
	})
	cacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cmis_type_cache_misses_total",
		Help: "Type definition lookups not found in the in-memory cache.",
	})
)

// Cache stores type definitions per repository.
type Cache interface {
	Get(repositoryID, typeID string) (*cmis.TypeDefinition, bool)
	Put(repositoryID string, def *cmis.TypeDefinition)
	Remove(repositoryID, typeID string)
	RemoveRepository(repositoryID string)
}

// LRUCache is a size-bounded Cache whose entries expire after a TTL.
type LRUCache struct {
	cache *expirable.LRU[string, *cmis.TypeDefinition]
}

// NewLRUCache creates a cache holding at most maxSize definitions for ttl.
// A zero ttl keeps entries until they are evicted.
func NewLRUCache(maxSize int, ttl time.Duration) *LRUCache {
	if maxSize <= 0 {
		maxSize = 500
	}
	return &LRUCache{cache: expirable.NewLRU[string, *cmis.TypeDefinition](maxSize, nil, ttl)}
}

func cacheKey(repositoryID, typeID string) string {
	return repositoryID + "\x00" + typeID
}

// Get returns a cached definition and records a hit or miss.
func (c *LRUCache) Get(repositoryID, typeID string) (*cmis.TypeDefinition, bool) {
	def, ok := c.cache.Get(cacheKey(repositoryID, typeID))
	if ok {
		cacheHitsTotal.Inc()
		return def, true
	}
	cacheMissesTotal.Inc()
	return nil, false
}

// Put adds or replaces a definition.
func (c *LRUCache) Put(repositoryID string, def *cmis.TypeDefinition) {
	if def == nil || def.ID == "" {
		return
	}
	c.cache.Add(cacheKey(repositoryID, def.ID), def)
}

// Remove drops one definition.
func (c *LRUCache) Remove(repositoryID, typeID string) {
	c.cache.Remove(cacheKey(repositoryID, typeID))
}

// RemoveRepository drops every definition of a repository.
func (c *LRUCache) RemoveRepository(repositoryID string) {
	prefix := repositoryID + "\x00"
	for _, k := range c.cache.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.cache.Remove(k)
		}
	}
}

// Len returns the number of cached definitions.
func (c *LRUCache) Len() int {
	return c.cache.Len()
}
