package post

import "time"

// Post is the persisted blog document. Field names mirror the content-store
// document shape so the same struct round-trips through the store and the
// JSON API without translation.
type Post struct {
	ID          string    `json:"_id" bson:"_id,omitempty"`
	Type        string    `json:"_type" bson:"_type"`
	Title       string    `json:"title" bson:"title"`
	Slug        Slug      `json:"slug" bson:"slug"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Body        []Block   `json:"body,omitempty" bson:"body,omitempty"`
	MainImage   *ImageRef `json:"mainImage,omitempty" bson:"mainImage,omitempty"`
	CreatedAt   time.Time `json:"_createdAt" bson:"_createdAt"`
	UpdatedAt   time.Time `json:"_updatedAt" bson:"_updatedAt"`
}

// Slug is the public lookup key, always derived from the title.
type Slug struct {
	Type    string `json:"_type,omitempty" bson:"_type,omitempty"`
	Current string `json:"current" bson:"current"`
}

// Block is one rich-text paragraph. The mutation pipeline only ever emits a
// single normal-style block holding the description; richer bodies come from
// seeded content.
type Block struct {
	Type     string `json:"_type" bson:"_type"`
	Style    string `json:"style" bson:"style"`
	Children []Span `json:"children" bson:"children"`
}

type Span struct {
	Type string `json:"_type" bson:"_type"`
	Text string `json:"text" bson:"text"`
}

// ImageRef points at a previously uploaded asset by id. It never carries
// inline bytes.
type ImageRef struct {
	Asset AssetPointer `json:"asset" bson:"asset"`
}

type AssetPointer struct {
	Type string `json:"_type,omitempty" bson:"_type,omitempty"`
	Ref  string `json:"_ref" bson:"_ref"`
}

// NewSlug builds the structured slug value for a current string.
func NewSlug(current string) Slug {
	return Slug{Type: "slug", Current: current}
}

// NewImageRef wraps an asset id in the reference shape stored on a document.
func NewImageRef(assetID string) *ImageRef {
	return &ImageRef{Asset: AssetPointer{Type: "reference", Ref: assetID}}
}

// BodyFromDescription rebuilds the post body as a single normal paragraph
// containing the description text.
func BodyFromDescription(description string) []Block {
	return []Block{{
		Type:     "block",
		Style:    "normal",
		Children: []Span{{Type: "span", Text: description}},
	}}
}
