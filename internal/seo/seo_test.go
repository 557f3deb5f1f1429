package seo

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	m := Build(Page{
		SiteName:    "ESSE",
		BaseURL:     "https://esse.example.org/",
		Locale:      "en",
		Title:       "Hello",
		Description: " A post ",
		Image:       "https://cdn.example.org/a.jpg",
		Type:        "article",
		Paths:       map[string]string{"fr": "/news/bonjour", "en": "/news/hello"},
	})
	assert.Equal(t, "Hello | ESSE", m.Title)
	assert.Equal(t, "A post", m.Description)
	assert.Equal(t, "https://esse.example.org/en/news/hello", m.Canonical)
	assert.Equal(t, "article", m.OG.Type)
	assert.Equal(t, "en_US", m.OG.Locale)
	assert.Equal(t, "summary_large_image", m.Twitter.Card)
	assert.Equal(t, []Alternate{
		{Href: "https://esse.example.org/fr/news/bonjour", Hreflang: "fr"},
		{Href: "https://esse.example.org/en/news/hello", Hreflang: "en"},
		{Href: "https://esse.example.org/fr/news/bonjour", Hreflang: "x-default"},
	}, m.Alternates)
}

func TestBuildHomeKeepsSiteName(t *testing.T) {
	m := Build(Page{SiteName: "ESSE", BaseURL: "http://x", Locale: "fr", Paths: map[string]string{"fr": "/"}})
	assert.Equal(t, "ESSE", m.Title)
	assert.Equal(t, "http://x/fr/", m.Canonical)
	assert.Equal(t, "website", m.OG.Type)
	assert.Equal(t, "summary", m.Twitter.Card)
}

func TestAddJSONLD(t *testing.T) {
	var m Meta
	m.AddJSONLD(Person("Ada Lovelace", "", "", "ada@example.org", []string{"Director"}))
	require.Len(t, m.JSONLD, 1)
	assert.Contains(t, string(m.JSONLD[0]), `"jobTitle":"Director"`)
}

func TestWriteSitemap(t *testing.T) {
	urls := Entry("https://esse.example.org", map[string]string{"fr": "/teams/a", "en": "/teams/a-en"}, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC))
	require.Len(t, urls, 2)

	var buf bytes.Buffer
	require.NoError(t, WriteSitemap(&buf, urls))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
	assert.Contains(t, out, "<loc>https://esse.example.org/en/teams/a-en</loc>")
	assert.Contains(t, out, "<lastmod>2024-05-01</lastmod>")
	assert.Contains(t, out, `hreflang="fr"`)
}
