package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/inkpress/inkpress/internal/post"
)

// MemoryStore is an in-memory document store used for unit tests and as a
// dev fallback when MongoDB is unreachable.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[string]*post.Post
	order map[string]int64
	seq   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*post.Post), order: make(map[string]int64)}
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.docs[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) GetBySlug(ctx context.Context, slug string) (*post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.docs {
		if p.Slug.Current == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) List(ctx context.Context) ([]*post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*post.Post, 0, len(m.docs))
	for _, p := range m.docs {
		cp := *p
		out = append(out, &cp)
	}
	// newest first; insertion order breaks creation-time ties
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.order[out[i].ID] > m.order[out[j].ID]
	})
	return out, nil
}

func (m *MemoryStore) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.docs[p.ID] = &cp
	m.seq++
	m.order[p.ID] = m.seq
	return p, nil
}

func (m *MemoryStore) Patch(ctx context.Context, id string, set map[string]any) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	for k, v := range set {
		switch k {
		case "title":
			p.Title = v.(string)
		case "slug":
			p.Slug = v.(post.Slug)
		case "description":
			p.Description = v.(string)
		case "body":
			p.Body = v.([]post.Block)
		case "mainImage":
			p.MainImage = v.(*post.ImageRef)
		}
	}
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrNotFound
	}
	delete(m.docs, id)
	delete(m.order, id)
	return nil
}
