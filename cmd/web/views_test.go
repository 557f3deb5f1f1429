package main

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esselab.org/esse-web/internal/cms"
)

func TestBuildPagination(t *testing.T) {
	assert.Nil(t, buildPagination("/en/news", cms.Pagination{Page: 1, PageCount: 1}))

	v := buildPagination("/en/news", cms.Pagination{Page: 2, PageCount: 3})
	require.NotNil(t, v)
	assert.Equal(t, "/en/news?page=1", v.PrevHref)
	assert.Equal(t, "/en/news?page=3", v.NextHref)
	require.Len(t, v.Items, 3)
	assert.True(t, v.Items[1].Current)

	v = buildPagination("/fr/members", cms.Pagination{Page: 5, PageCount: 10})
	require.NotNil(t, v)
	var pages []int
	for _, it := range v.Items {
		pages = append(pages, it.Page)
		if it.Ellipsis {
			assert.Empty(t, it.Href)
		}
	}
	assert.Equal(t, []int{1, 0, 4, 5, 6, 0, 10}, pages)
}

func TestSplitEvents(t *testing.T) {
	now := time.Date(2025, time.June, 1, 18, 0, 0, 0, time.UTC)
	events := []cms.Event{
		{Slug: "old", Date: "2024-01-01"},
		{Slug: "today", Date: "2025-06-01"},
		{Slug: "undated"},
		{Slug: "later", Date: "2026-01-01"},
		{Slug: "recent", Date: "2025-05-01"},
		{Slug: "soon", Date: "2025-07-01"},
	}
	up, past := splitEvents(events, now)

	slugs := func(evs []cms.Event) []string {
		var out []string
		for _, ev := range evs {
			out = append(out, ev.Slug)
		}
		return out
	}
	assert.Equal(t, []string{"today", "soon", "later"}, slugs(up))
	assert.Equal(t, []string{"recent", "old", "undated"}, slugs(past))
}

func TestEventTime(t *testing.T) {
	assert.Equal(t, "14:30", eventTime("14:30:00.000"))
	assert.Equal(t, "9h", eventTime(" 9h "))
	assert.Empty(t, eventTime(""))
}

func TestButtonTarget(t *testing.T) {
	for _, in := range []string{"", "null", "self", "_self", " _self "} {
		assert.Empty(t, buttonTarget(in), in)
	}
	assert.Equal(t, "_blank", buttonTarget("_blank"))
}

func TestBuildNewsStrip(t *testing.T) {
	var articles []cms.Article
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		articles = append(articles, cms.Article{Title: s, Slug: s})
	}

	v := buildNewsStrip(articles, "en", url.Values{})
	require.Len(t, v.Cards, newsWindow)
	assert.Equal(t, "/en/news/a", v.Cards[0].Href)
	assert.Empty(t, v.PrevHref)
	assert.Equal(t, "?news=1", v.NextHref)

	v = buildNewsStrip(articles, "en", url.Values{"news": {"2"}, "video": {"1"}})
	assert.Equal(t, 2, v.Start)
	assert.Equal(t, "?news=1&video=1", v.PrevHref)
	assert.Empty(t, v.NextHref)

	v = buildNewsStrip(articles, "en", url.Values{"news": {"-4"}})
	assert.Equal(t, 0, v.Start)

	v = buildNewsStrip(articles[:2], "fr", url.Values{"news": {"1"}})
	assert.Equal(t, 0, v.Start)
	assert.Len(t, v.Cards, 2)
	assert.Empty(t, v.NextHref)
}

func TestArticleCardCapsCategories(t *testing.T) {
	c := articleCard(cms.Article{
		Slug:       "x",
		Categories: []cms.Category{{Name: "A"}, {Name: "B"}, {Name: "C"}},
	}, "fr")
	assert.Equal(t, []string{"A", "B"}, c.Categories)
}

func TestTypeFilters(t *testing.T) {
	assert.Nil(t, typeFilters("/fr/publications", nil, ""))

	chips := typeFilters("/fr/publications", []string{"Conférence", "Journal"}, "Journal")
	require.Len(t, chips, 3)
	assert.Equal(t, "/fr/publications", chips[0].Href)
	assert.False(t, chips[0].Active)
	assert.Equal(t, "/fr/publications?type=Conf%C3%A9rence", chips[1].Href)
	assert.True(t, chips[2].Active)
}

func TestBuildRecruitmentsIndex(t *testing.T) {
	recs := []cms.Recruitment{
		{Title: "A", Slug: "a", Types: []cms.RecruitmentType{{Name: "Thèse"}}},
		{Title: "B", Slug: "b", Types: []cms.RecruitmentType{{Name: "Stage"}, {Name: " "}}},
		{Title: "C", Slug: "c"},
	}

	v := buildRecruitmentsIndex(recs, "fr", "Stage")
	require.Len(t, v.Cards, 1)
	assert.Equal(t, "B", v.Cards[0].Title)
	assert.Equal(t, "Stage", v.Cards[0].Subtitle)
	assert.Equal(t, "Stage", v.Filters[1].Value)
	assert.Equal(t, "Thèse", v.Filters[2].Value)

	v = buildRecruitmentsIndex(recs, "fr", "Postdoc")
	assert.Len(t, v.Cards, 3)
	assert.True(t, v.Filters[0].Active)
	assert.Equal(t, "Opportunité", v.Cards[2].Subtitle)
}

func TestDetailPathsKeepsSupportedLocales(t *testing.T) {
	got := detailPaths("/news", map[string]string{"fr": "bonjour", "en": "hello", "de": "hallo"})
	assert.Equal(t, map[string]string{"fr": "/news/bonjour", "en": "/news/hello"}, got)
}

func TestQueryHelpers(t *testing.T) {
	q := url.Values{"page": {"3"}, "bad": {"x"}}
	assert.Equal(t, 3, queryIntValue(q, "page", 1))
	assert.Equal(t, 1, queryIntValue(q, "bad", 1))
	assert.Equal(t, 7, queryIntValue(q, "missing", 7))
	assert.Equal(t, 3, mod(-1, 4))
	assert.Equal(t, "?bad=x&page=4", withQuery(q, "page", 4))
	assert.Equal(t, "3", q.Get("page"))
}
