package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMarksActiveSection(t *testing.T) {
	items := Build("en", "/en/news/hello")
	require.Len(t, items, len(Main))
	assert.Equal(t, "/en/news", items[0].Href)
	assert.True(t, items[0].Active)
	for _, it := range items[1:] {
		assert.False(t, it.Active, it.Href)
	}

	for _, it := range Build("fr", "/fr/") {
		assert.False(t, it.Active)
	}
}

func TestBreadcrumbs(t *testing.T) {
	crumbs := Breadcrumbs("fr", "/fr/members/ada-lovelace", "Ada Lovelace")
	require.Len(t, crumbs, 3)
	assert.Equal(t, "/fr/", crumbs[0].Href)
	assert.Equal(t, "nav.members", crumbs[1].LabelKey)
	assert.Equal(t, "/fr/members/ada-lovelace", crumbs[2].Href)
	assert.Equal(t, "Ada Lovelace", crumbs[2].Label)
	assert.True(t, crumbs[2].Active)

	crumbs = Breadcrumbs("en", "/en/events/spring-school", "")
	assert.Equal(t, "Spring school", crumbs[2].Label)

	home := Breadcrumbs("en", "/en/", "")
	require.Len(t, home, 1)
	assert.True(t, home[0].Active)
}

func TestLocaleLinks(t *testing.T) {
	links := LocaleLinks("fr", map[string]string{"fr": "/news/bonjour", "en": "/news/hello"})
	assert.Equal(t, []LocaleLink{
		{Locale: "fr", Href: "/fr/news/bonjour", Active: true},
		{Locale: "en", Href: "/en/news/hello"},
	}, links)

	partial := LocaleLinks("en", map[string]string{"en": "/news/hello"})
	assert.Equal(t, "/fr/", partial[0].Href)

	section := LocaleLinks("en", SectionLinks("/teams"))
	assert.Equal(t, "/fr/teams", section[0].Href)
	assert.Equal(t, "/en/teams", section[1].Href)
}
