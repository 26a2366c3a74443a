package pipeline

import "github.com/inkpress/inkpress/internal/post"

// newPostDoc assembles the full document for a create. Title and description
// are validated by the caller; image is optional.
func newPostDoc(title, description string, image *post.ImageRef) *post.Post {
	return &post.Post{
		Type:        "post",
		Title:       title,
		Slug:        post.NewSlug(post.DeriveSlug(title)),
		Description: description,
		Body:        post.BodyFromDescription(description),
		MainImage:   image,
	}
}

// patchSet assembles the merge-patch for an update: only supplied fields
// appear in the returned map. A new title recomputes the slug; a supplied
// description (empty string included) rebuilds the body; a supplied image
// swaps the reference. Absent fields stay untouched in the store.
func patchSet(title *string, description *string, image *post.ImageRef) map[string]any {
	set := map[string]any{}
	if title != nil && *title != "" {
		set["title"] = *title
		set["slug"] = post.NewSlug(post.DeriveSlug(*title))
	}
	if description != nil {
		set["description"] = *description
		set["body"] = post.BodyFromDescription(*description)
	}
	if image != nil {
		set["mainImage"] = image
	}
	return set
}
