package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/internal/post"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	p := &post.Post{Type: "post", Title: "First", Slug: post.NewSlug("first"), Description: "d"}
	created, err := s.Create(ctx, p)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "First", got.Title)

	bySlug, err := s.GetBySlug(ctx, "first")
	require.NoError(t, err)
	require.Equal(t, created.ID, bySlug.ID)

	_, err = s.GetBySlug(ctx, "nope")
	require.ErrorIs(t, err, ErrNotFound)

	err = s.Delete(ctx, created.ID)
	require.NoError(t, err)
	_, err = s.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// deleting again reports not found, never a silent success
	err = s.Delete(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, title := range []string{"one", "two", "three"} {
		_, err := s.Create(ctx, &post.Post{Type: "post", Title: title, Slug: post.NewSlug(title)})
		require.NoError(t, err)
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "three", list[0].Title)
	require.Equal(t, "two", list[1].Title)
	require.Equal(t, "one", list[2].Title)
}

func TestMemoryStorePatchMerges(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.Create(ctx, &post.Post{
		Type:        "post",
		Title:       "Keep",
		Slug:        post.NewSlug("keep"),
		Description: "original",
		Body:        post.BodyFromDescription("original"),
	})
	require.NoError(t, err)

	updated, err := s.Patch(ctx, created.ID, map[string]any{
		"description": "changed",
		"body":        post.BodyFromDescription("changed"),
	})
	require.NoError(t, err)
	// untouched fields survive a merge-patch
	require.Equal(t, "Keep", updated.Title)
	require.Equal(t, "keep", updated.Slug.Current)
	require.Equal(t, "changed", updated.Description)
	require.Equal(t, "changed", updated.Body[0].Children[0].Text)

	_, err = s.Patch(ctx, "missing-id", map[string]any{"description": "x"})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePatchImageSwap(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	created, err := s.Create(ctx, &post.Post{Type: "post", Title: "Pic", Slug: post.NewSlug("pic")})
	require.NoError(t, err)
	require.Nil(t, created.MainImage)

	ref := post.NewImageRef("image-1")
	updated, err := s.Patch(ctx, created.ID, map[string]any{"mainImage": ref})
	require.NoError(t, err)
	require.Equal(t, "image-1", updated.MainImage.Asset.Ref)

	// replacing swaps the reference, the old asset is untouched by design
	ref2 := post.NewImageRef("image-2")
	updated, err = s.Patch(ctx, created.ID, map[string]any{"mainImage": ref2})
	require.NoError(t, err)
	require.Equal(t, "image-2", updated.MainImage.Asset.Ref)
}
