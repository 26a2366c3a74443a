package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/inkpress/inkpress/internal/assets"
	"github.com/inkpress/inkpress/internal/post"
	"github.com/inkpress/inkpress/internal/post/store"
	"github.com/inkpress/inkpress/internal/revalidate"
	"github.com/inkpress/inkpress/pkg/logger"
	"github.com/inkpress/inkpress/pkg/metrics"
)

// IndexPath is the cached rendering of the post listing.
const IndexPath = "/"

// DetailPath returns the cached rendering path for one post.
func DetailPath(slug string) string {
	return "/blog/" + slug
}

// ImageUpload carries the raw image bytes from a decoded form submission.
type ImageUpload struct {
	Reader   io.Reader
	Size     int64
	Filename string
}

// CreateInput is a validated create submission. Title and description are
// required; Image is optional.
type CreateInput struct {
	Title       string
	Description string
	Image       *ImageUpload
}

// UpdateInput is a validated update submission. Only ID is required; nil
// pointers mean "leave unchanged". An empty Description (non-nil pointer)
// clears the description, distinct from absent.
type UpdateInput struct {
	ID          string
	Title       *string
	Description *string
	Image       *ImageUpload
}

// Result is the outcome of a successful mutation. Diagnostics records
// swallowed upload and revalidation failures; it never gates success.
type Result struct {
	Post        *post.Post
	Diagnostics []string
}

// Pipeline orchestrates one mutation per call: validation, slug derivation,
// optional asset upload, the store call, then best-effort revalidation.
// Steps are strictly sequential; nothing is retried.
type Pipeline struct {
	store    store.Store
	uploader assets.Uploader
	trigger  revalidate.Trigger
}

// New wires a pipeline. uploader may be nil (image submissions are then
// skipped with a diagnostic); trigger must not be nil (use revalidate.Noop).
func New(s store.Store, uploader assets.Uploader, trigger revalidate.Trigger) *Pipeline {
	return &Pipeline{store: s, uploader: uploader, trigger: trigger}
}

// Create validates the submission, uploads the image when present (upload
// failure is logged and the post is created without an image), writes the
// full document and revalidates the index and the new detail page.
func (pl *Pipeline) Create(ctx context.Context, in CreateInput) (*Result, error) {
	if in.Title == "" || in.Description == "" {
		metrics.PostMutations.WithLabelValues("create", "invalid").Inc()
		return nil, &ValidationError{Msg: "missing title or description"}
	}

	slug := post.DeriveSlug(in.Title)
	if err := pl.checkCollision(ctx, slug, ""); err != nil {
		metrics.PostMutations.WithLabelValues("create", "invalid").Inc()
		return nil, err
	}

	diags := []string{}
	image := pl.uploadImage(ctx, in.Image, &diags)

	doc := newPostDoc(in.Title, in.Description, image)
	created, err := pl.store.Create(ctx, doc)
	if err != nil {
		metrics.PostMutations.WithLabelValues("create", "error").Inc()
		return nil, &StoreError{Op: "create", Err: err}
	}

	pl.runRevalidations(ctx, []string{IndexPath, DetailPath(created.Slug.Current)}, &diags)
	metrics.PostMutations.WithLabelValues("create", "ok").Inc()
	return &Result{Post: created, Diagnostics: diags}, nil
}

// Update pre-fetches the current slug (needed before the store forgets it),
// uploads the image when present, applies a merge-patch of the supplied
// fields, then revalidates the index plus the old and new detail pages.
func (pl *Pipeline) Update(ctx context.Context, in UpdateInput) (*Result, error) {
	if in.ID == "" {
		metrics.PostMutations.WithLabelValues("update", "invalid").Inc()
		return nil, &ValidationError{Msg: "missing post id"}
	}

	diags := []string{}

	// the old slug is unrecoverable after a title change, so fetch first;
	// if the fetch fails the patch still runs and the old path is skipped
	oldSlug := ""
	if prev, err := pl.store.GetByID(ctx, in.ID); err != nil {
		logger.Warnf("update %s: pre-update slug lookup failed: %v", in.ID, err)
		diags = append(diags, fmt.Sprintf("pre-update slug lookup failed: %v", err))
	} else {
		oldSlug = prev.Slug.Current
	}

	if in.Title != nil && *in.Title != "" {
		newSlug := post.DeriveSlug(*in.Title)
		if newSlug != oldSlug {
			if err := pl.checkCollision(ctx, newSlug, in.ID); err != nil {
				metrics.PostMutations.WithLabelValues("update", "invalid").Inc()
				return nil, err
			}
		}
	}

	image := pl.uploadImage(ctx, in.Image, &diags)

	set := patchSet(in.Title, in.Description, image)
	updated, err := pl.store.Patch(ctx, in.ID, set)
	if err != nil {
		metrics.PostMutations.WithLabelValues("update", "error").Inc()
		return nil, &StoreError{Op: "patch", Err: err}
	}

	paths := []string{IndexPath}
	if oldSlug != "" {
		paths = append(paths, DetailPath(oldSlug))
	}
	paths = append(paths, DetailPath(updated.Slug.Current))
	pl.runRevalidations(ctx, paths, &diags)
	metrics.PostMutations.WithLabelValues("update", "ok").Inc()
	return &Result{Post: updated, Diagnostics: diags}, nil
}

// Delete fetches the slug before the document disappears, deletes it and
// revalidates the index and the former detail page. Deleting an id that is
// already gone is a store error, not a silent success.
func (pl *Pipeline) Delete(ctx context.Context, id string) (*Result, error) {
	if id == "" {
		metrics.PostMutations.WithLabelValues("delete", "invalid").Inc()
		return nil, &ValidationError{Msg: "missing post id"}
	}

	diags := []string{}

	// slug must be read before the delete; when this fails the delete still
	// proceeds and only the index is revalidated
	slug := ""
	if p, err := pl.store.GetByID(ctx, id); err != nil {
		logger.Warnf("delete %s: pre-delete slug lookup failed: %v", id, err)
		diags = append(diags, fmt.Sprintf("pre-delete slug lookup failed: %v", err))
	} else {
		slug = p.Slug.Current
	}

	if err := pl.store.Delete(ctx, id); err != nil {
		metrics.PostMutations.WithLabelValues("delete", "error").Inc()
		return nil, &StoreError{Op: "delete", Err: err}
	}

	paths := []string{IndexPath}
	if slug != "" {
		paths = append(paths, DetailPath(slug))
	}
	pl.runRevalidations(ctx, paths, &diags)
	metrics.PostMutations.WithLabelValues("delete", "ok").Inc()
	return &Result{Diagnostics: diags}, nil
}

// checkCollision rejects a derived slug that already belongs to a different
// document. selfID is empty on create.
func (pl *Pipeline) checkCollision(ctx context.Context, slug, selfID string) error {
	existing, err := pl.store.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return &StoreError{Op: "fetch", Err: err}
	}
	if existing.ID != selfID {
		return &ValidationError{Msg: fmt.Sprintf("slug %q already belongs to another post", slug)}
	}
	return nil
}

// uploadImage runs the optional asset upload. Failures are logged and
// recorded, never returned: the mutation proceeds with no image change.
func (pl *Pipeline) uploadImage(ctx context.Context, img *ImageUpload, diags *[]string) *post.ImageRef {
	if img == nil {
		return nil
	}
	if pl.uploader == nil {
		*diags = append(*diags, "asset uploads not configured; image skipped")
		return nil
	}
	ref, err := pl.uploader.UploadImage(ctx, img.Reader, img.Size, img.Filename)
	if err != nil {
		uerr := &UploadError{Err: err}
		logger.Warnf("image upload failed, continuing without image: %v", uerr)
		metrics.UploadFailures.Inc()
		*diags = append(*diags, uerr.Error())
		return nil
	}
	return ref
}

// runRevalidations fires the post-commit hooks. Each path is tried once;
// failures are logged and recorded but never affect the result.
func (pl *Pipeline) runRevalidations(ctx context.Context, paths []string, diags *[]string) {
	seen := map[string]bool{}
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		if err := pl.trigger.Revalidate(ctx, p); err != nil {
			logger.Warnf("revalidate %s failed: %v", p, err)
			metrics.RevalidationFailures.Inc()
			*diags = append(*diags, fmt.Sprintf("revalidate %s: %v", p, err))
		}
	}
}
