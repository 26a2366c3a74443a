package post

import (
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"
)

func TestDeriveSlug(t *testing.T) {
	require.Equal(t, "hello-world", DeriveSlug("Hello   World"))
	require.Equal(t, "getting-started", DeriveSlug("Getting Started"))
	require.Equal(t, "already-lower", DeriveSlug("already lower"))
	require.Equal(t, "", DeriveSlug(""))
	// punctuation is kept, only whitespace runs collapse
	require.Equal(t, "go,-go!", DeriveSlug("Go, Go!"))
	// tabs and newlines count as whitespace
	require.Equal(t, "a-b-c", DeriveSlug("a\tb\nc"))
	// edge runs still map to a hyphen
	require.Equal(t, "-padded-", DeriveSlug("  padded "))
}

func TestDeriveSlug_Deterministic(t *testing.T) {
	for _, title := range []string{"Hello   World", "One", "A  B\tC", "MiXeD Case"} {
		require.Equal(t, DeriveSlug(title), DeriveSlug(title))
	}
}

func TestDeriveSlug_NoWhitespaceInOutput(t *testing.T) {
	for _, title := range []string{"Hello   World", " lead", "trail ", "a b", "x \t\n y"} {
		slug := DeriveSlug(title)
		require.False(t, strings.ContainsFunc(slug, unicode.IsSpace), "slug %q from %q contains whitespace", slug, title)
	}
}

func TestDeriveSlug_CollisionAcrossSpacing(t *testing.T) {
	// titles differing only in case and whitespace collapse to the same slug;
	// the pipeline rejects the second document
	require.Equal(t, DeriveSlug("A B"), DeriveSlug("a   b"))
}

func TestBodyFromDescription(t *testing.T) {
	body := BodyFromDescription("Intro text")
	require.Len(t, body, 1)
	require.Equal(t, "block", body[0].Type)
	require.Equal(t, "normal", body[0].Style)
	require.Len(t, body[0].Children, 1)
	require.Equal(t, "span", body[0].Children[0].Type)
	require.Equal(t, "Intro text", body[0].Children[0].Text)
}
