package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/i18n"
	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/seo"
)

// NewsIndexHandler renders one page of news articles.
func NewsIndexHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	page := cmsClient.Articles(r.Context(), lang, pageParam(r), cms.ArticlesPageSize)

	vm := newPageData(r, seo.Page{
		Title:       i18nBundle.T(lang, "news.title"),
		Description: i18nBundle.T(lang, "news.subtitle"),
		Paths:       nav.SectionLinks("/news"),
	})
	vm.News = buildNewsIndex(page, lang)
	renderPage(w, r, "news", vm)
}

// NewsDetailHandler renders one article.
func NewsDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	slug := chi.URLParam(r, "slug")
	a, err := cmsClient.ArticleBySlug(r.Context(), slug, lang)
	if err != nil {
		renderNotFound(w, r, i18n.Copy(lang, "Article non trouvé", "Article not found"))
		return
	}

	view := buildArticle(a, lang)
	vm := newPageData(r, seo.Page{
		Title:       a.Title,
		Description: a.Description,
		Image:       view.Image,
		Type:        "article",
		Paths:       detailPaths("/news", cms.LocalizedSlugs(lang, a.Slug, a.Localizations)),
	})
	vm.Article = view
	vm.SEO.AddJSONLD(seo.Article(a.Title, vm.SEO.Canonical, view.Image, a.PublishedAt, a.UpdatedAt))
	renderPage(w, r, "news_detail", vm)
}
