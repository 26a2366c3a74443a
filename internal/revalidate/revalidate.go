package revalidate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Trigger tells the rendered-page cache that a path must be regenerated.
// Callers treat failures as best-effort: the pipeline logs them and moves on.
// Revalidating the same path twice is harmless.
type Trigger interface {
	Revalidate(ctx context.Context, path string) error
}

// PageCache holds rendered page payloads in Redis under "page:<path>" keys.
// Read handlers fill it cache-aside; Revalidate drops the key so the next
// read regenerates the page.
type PageCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewPageCache creates a page cache. Prefix may be empty (defaults to "page:").
func NewPageCache(client *redis.Client, prefix string, ttl time.Duration) *PageCache {
	if prefix == "" {
		prefix = "page:"
	}
	return &PageCache{client: client, prefix: prefix, ttl: ttl}
}

func (p *PageCache) key(path string) string {
	return p.prefix + path
}

// Get returns the cached payload for a path, and whether it was present.
func (p *PageCache) Get(ctx context.Context, path string) (string, bool) {
	v, err := p.client.Get(ctx, p.key(path)).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

// Set stores a rendered payload for a path with the configured TTL.
func (p *PageCache) Set(ctx context.Context, path string, payload string) error {
	return p.client.Set(ctx, p.key(path), payload, p.ttl).Err()
}

// Revalidate drops the cached rendering for a path.
func (p *PageCache) Revalidate(ctx context.Context, path string) error {
	return p.client.Del(ctx, p.key(path)).Err()
}

// Noop satisfies Trigger when no page cache is configured.
type Noop struct{}

func (Noop) Revalidate(ctx context.Context, path string) error { return nil }
