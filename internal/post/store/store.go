package store

import (
	"context"
	"errors"

	"github.com/inkpress/inkpress/internal/post"
)

var (
	ErrNotFound = errors.New("post not found")
)

// Store is the document-store client used by the mutation pipeline. Patch is a
// merge-patch: only the keys present in set are written, everything else on
// the stored document is left untouched.
type Store interface {
	GetByID(ctx context.Context, id string) (*post.Post, error)
	GetBySlug(ctx context.Context, slug string) (*post.Post, error)
	// List returns all posts ordered newest-first by creation time.
	List(ctx context.Context) ([]*post.Post, error)
	Create(ctx context.Context, p *post.Post) (*post.Post, error)
	Patch(ctx context.Context, id string, set map[string]any) (*post.Post, error)
	Delete(ctx context.Context, id string) error
}
