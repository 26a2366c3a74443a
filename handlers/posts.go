package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/internal/post/pipeline"
	"github.com/inkpress/inkpress/internal/post/store"
	"github.com/inkpress/inkpress/internal/revalidate"
	"github.com/inkpress/inkpress/pkg/logger"
)

// PostHandler exposes the blog post CRUD surface. Reads go straight to the
// store (optionally through the page cache); mutations go through the
// pipeline.
type PostHandler struct {
	pipe  *pipeline.Pipeline
	store store.Store
	cache *revalidate.PageCache // nil when cache mode is off
}

func NewPostHandler(pipe *pipeline.Pipeline, s store.Store, cache *revalidate.PageCache) *PostHandler {
	return &PostHandler{pipe: pipe, store: s, cache: cache}
}

// Register mounts the post routes. PATCH and DELETE also accept the id in the
// request body for clients that cannot set a path parameter.
func (h *PostHandler) Register(r *gin.Engine) {
	r.POST("/api/posts", h.CreatePost)
	r.GET("/api/posts", h.ListPosts)
	r.GET("/api/posts/:slug", h.GetPost)
	r.PATCH("/api/posts/:id", h.UpdatePost)
	r.PATCH("/api/posts", h.UpdatePost)
	r.DELETE("/api/posts/:id", h.DeletePost)
	r.DELETE("/api/posts", h.DeletePost)
}

// submission is a decoded form body normalized to one value per field. The
// pipeline never sees array-vs-scalar ambiguity or multipart internals.
type submission struct {
	fields  map[string]string
	present map[string]bool
	image   *pipeline.ImageUpload
	cleanup func()
}

func (s *submission) value(name string) (string, bool) {
	v, ok := s.fields[name]
	return v, ok && s.present[name]
}

// decodeSubmission accepts multipart/form-data (fields + optional "image"
// file) or a plain JSON body. Multipart temp files are released through
// cleanup on every exit path once the handler is done reading.
func decodeSubmission(c *gin.Context) (*submission, error) {
	sub := &submission{fields: map[string]string{}, present: map[string]bool{}, cleanup: func() {}}

	if c.ContentType() == "multipart/form-data" {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		sub.cleanup = func() { _ = form.RemoveAll() }
		for name, vals := range form.Value {
			if len(vals) > 0 {
				sub.fields[name] = vals[0]
				sub.present[name] = true
			}
		}
		if files := form.File["image"]; len(files) > 0 {
			fh := files[0]
			f, err := fh.Open()
			if err != nil {
				sub.cleanup()
				return nil, err
			}
			base := sub.cleanup
			sub.cleanup = func() {
				f.Close()
				base()
			}
			sub.image = &pipeline.ImageUpload{Reader: f, Size: fh.Size, Filename: fh.Filename}
		}
		return sub, nil
	}

	var req struct {
		ID          *string `json:"id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
	}
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
	}
	if req.ID != nil {
		sub.fields["id"] = *req.ID
		sub.present["id"] = true
	}
	if req.Title != nil {
		sub.fields["title"] = *req.Title
		sub.present["title"] = true
	}
	if req.Description != nil {
		sub.fields["description"] = *req.Description
		sub.present["description"] = true
	}
	return sub, nil
}

// CreatePost handles POST /api/posts.
func (h *PostHandler) CreatePost(c *gin.Context) {
	sub, err := decodeSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer sub.cleanup()

	res, err := h.pipe.Create(c.Request.Context(), pipeline.CreateInput{
		Title:       sub.fields["title"],
		Description: sub.fields["description"],
		Image:       sub.image,
	})
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, successBody(res))
}

// UpdatePost handles PATCH /api/posts[/:id]. Any subset of title,
// description and image may be supplied.
func (h *PostHandler) UpdatePost(c *gin.Context) {
	sub, err := decodeSubmission(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	defer sub.cleanup()

	id := c.Param("id")
	if id == "" {
		id = sub.fields["id"]
	}

	in := pipeline.UpdateInput{ID: id, Image: sub.image}
	if v, ok := sub.value("title"); ok {
		in.Title = &v
	}
	if v, ok := sub.value("description"); ok {
		in.Description = &v
	}

	res, err := h.pipe.Update(c.Request.Context(), in)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, successBody(res))
}

// DeletePost handles DELETE /api/posts[/:id].
func (h *PostHandler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		sub, err := decodeSubmission(c)
		if err == nil {
			id = sub.fields["id"]
			sub.cleanup()
		}
	}

	res, err := h.pipe.Delete(c.Request.Context(), id)
	if err != nil {
		writeMutationError(c, err)
		return
	}
	body := gin.H{"success": true, "message": "Post deleted successfully"}
	if len(res.Diagnostics) > 0 {
		body["diagnostics"] = res.Diagnostics
	}
	c.JSON(http.StatusOK, body)
}

// ListPosts handles GET /api/posts: all posts, newest first, cache-aside on
// the index path when the page cache is on.
func (h *PostHandler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()
	if h.cache != nil {
		if payload, ok := h.cache.Get(ctx, pipeline.IndexPath); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
			return
		}
	}

	posts, err := h.store.List(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	body, err := json.Marshal(gin.H{"posts": posts})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, pipeline.IndexPath, string(body)); err != nil {
			logger.Warnf("page cache set %s: %v", pipeline.IndexPath, err)
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// GetPost handles GET /api/posts/:slug — the server-side lookup backing a
// rendered detail page.
func (h *PostHandler) GetPost(c *gin.Context) {
	ctx := c.Request.Context()
	slug := c.Param("slug")
	path := pipeline.DetailPath(slug)

	if h.cache != nil {
		if payload, ok := h.cache.Get(ctx, path); ok {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(payload))
			return
		}
	}

	p, err := h.store.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	body, err := json.Marshal(p)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if h.cache != nil {
		if err := h.cache.Set(ctx, path, string(body)); err != nil {
			logger.Warnf("page cache set %s: %v", path, err)
		}
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// successBody shapes the binary success envelope; diagnostics ride along
// without affecting the outcome.
func successBody(res *pipeline.Result) gin.H {
	body := gin.H{"success": true, "post": res.Post}
	if len(res.Diagnostics) > 0 {
		body["diagnostics"] = res.Diagnostics
	}
	return body
}

// writeMutationError maps pipeline failures onto the response contract:
// validation problems are 400s with a message, store failures are 500s with
// the store's error text passed through.
func writeMutationError(c *gin.Context, err error) {
	var verr *pipeline.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": verr.Msg})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
}
