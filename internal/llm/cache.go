package llm

import (
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 512

// Cache is a bounded, content-addressed store of model responses keyed by
// the hash of the rendered prompt. Eviction is LRU; a Put for an existing
// key overwrites (last write wins).
type Cache struct {
	entries *lru.Cache[string, Response]
}

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, Response](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// HashPrompt returns the cache key for a rendered prompt.
func HashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) Get(key string) (Response, bool) {
	return c.entries.Get(key)
}

func (c *Cache) Put(key string, resp Response) {
	c.entries.Add(key, resp)
}

func (c *Cache) Len() int { return c.entries.Len() }
