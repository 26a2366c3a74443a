package main

import (
	"context"
	"net/http"
	"time"

	"github.com/inkpress/inkpress/internal/assets"
	"github.com/inkpress/inkpress/internal/config"
	"github.com/inkpress/inkpress/internal/database"
	"github.com/inkpress/inkpress/internal/post"
	"github.com/inkpress/inkpress/internal/post/store"
	"github.com/inkpress/inkpress/pkg/logger"
)

type samplePost struct {
	title       string
	description string
	body        []post.Block
	imageURL    string
}

func block(style, text string) post.Block {
	return post.Block{Type: "block", Style: style, Children: []post.Span{{Type: "span", Text: text}}}
}

var samplePosts = []samplePost{
	{
		title:       "Getting Started with Headless Content",
		description: "Learn how to run a blog on a headless content store. This guide covers everything from setup to deployment.",
		body: []post.Block{
			block("h2", "Why a headless store?"),
			block("normal", "A headless content store separates where content lives from how it is rendered, so the same documents can back a website, a feed and an app."),
			block("h2", "Key Benefits"),
			block("normal", "• Fast performance with cached renderings\n• Real-time content updates\n• Flexible content modeling\n• SEO-friendly out of the box"),
		},
		imageURL: "https://images.unsplash.com/photo-1498050108023-c5249f4df085?w=800&h=600&fit=crop",
	},
	{
		title:       "10 Tips for Writing Clean Posts",
		description: "Discover the practices that keep a blog maintainable: short paragraphs, stable slugs and images that are uploaded once and referenced everywhere.",
		body: []post.Block{
			block("h2", "1. One Idea per Paragraph"),
			block("normal", "Readers scan. Keep each paragraph to a single idea and let the headings carry the structure."),
			block("h2", "2. Let the Slug Follow the Title"),
			block("normal", "Slugs derived from titles stay predictable; renaming a post moves its page and the old path must be regenerated."),
		},
		imageURL: "https://images.unsplash.com/photo-1555066931-4365d14bab8c?w=800&h=600&fit=crop",
	},
	{
		title:       "Caching Rendered Pages",
		description: "Static renderings are cheap to serve and cheap to throw away. Regenerate them only when the content underneath actually changes.",
		body: []post.Block{
			block("h2", "Invalidate, Don't Expire"),
			block("normal", "A mutation knows exactly which pages it touched: the index and the affected detail pages. Dropping just those keys keeps the rest of the cache warm."),
		},
		imageURL: "https://images.unsplash.com/photo-1558494949-ef010cbdcc31?w=800&h=600&fit=crop",
	},
}

func main() {
	logger.Init("info")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required for seeding")
	}

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	st := store.NewMongoStore(database.PostsCollection(client, cfg.Store.ProjectID, cfg.Store.Dataset))

	var uploader assets.Uploader
	if minioCfg := assets.LoadConfig(); minioCfg.Endpoint != "" {
		up, err := assets.NewMinIOUploader(minioCfg)
		if err != nil {
			logger.Warnf("asset uploader unavailable, seeding without images: %v", err)
		} else {
			uploader = up
		}
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	for _, sp := range samplePosts {
		slug := post.DeriveSlug(sp.title)
		if _, err := st.GetBySlug(ctx, slug); err == nil {
			logger.Infof("skipping %q: slug %q already exists", sp.title, slug)
			continue
		}

		doc := &post.Post{
			Type:        "post",
			Title:       sp.title,
			Slug:        post.NewSlug(slug),
			Description: sp.description,
			Body:        sp.body,
		}

		if uploader != nil && sp.imageURL != "" {
			doc.MainImage = fetchAndUpload(ctx, httpClient, uploader, sp.imageURL)
		}

		created, err := st.Create(ctx, doc)
		if err != nil {
			logger.Errorf("seeding %q failed: %v", sp.title, err)
			continue
		}
		logger.Infof("seeded %q as %s (slug %s)", created.Title, created.ID, created.Slug.Current)
	}
}

// fetchAndUpload pulls a remote image and stores it as an asset. Seeding
// follows the pipeline's policy: an image failure never blocks the post.
func fetchAndUpload(ctx context.Context, hc *http.Client, uploader assets.Uploader, url string) *post.ImageRef {
	resp, err := hc.Get(url)
	if err != nil {
		logger.Warnf("image download %s: %v", url, err)
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Warnf("image download %s: status %d", url, resp.StatusCode)
		return nil
	}
	ref, err := uploader.UploadImage(ctx, resp.Body, resp.ContentLength, "seed.jpg")
	if err != nil {
		logger.Warnf("image upload %s: %v", url, err)
		return nil
	}
	return ref
}
