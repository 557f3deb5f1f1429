package main

import (
	"net/http"

	"go.uber.org/zap"

	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/observability"
	"esselab.org/esse-web/internal/seo"
)

// NotFoundView is the payload of the 404 page.
type NotFoundView struct {
	Title    string
	Message  string
	HomeHref string
}

// NotFoundHandler renders the localized 404 page for unmatched routes.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	renderNotFound(w, r, "")
}

// renderNotFound writes the 404 page. title overrides the generic heading,
// e.g. with a per-record message.
func renderNotFound(w http.ResponseWriter, r *http.Request, title string) {
	lang := mw.Lang(r)
	if title == "" {
		title = i18nBundle.T(lang, "notfound.title")
	}
	observability.FromContext(r.Context()).Debug("page not found",
		zap.String("path", r.URL.Path),
		zap.String("title", title),
	)

	vm := newPageData(r, seo.Page{
		Title:       title,
		Description: i18nBundle.T(lang, "notfound.message"),
		Paths:       nav.SectionLinks("/"),
	})
	vm.SEO.Robots = "noindex"
	vm.Breadcrumbs = nil
	vm.NotFound = NotFoundView{
		Title:    title,
		Message:  i18nBundle.T(lang, "notfound.message"),
		HomeHref: nav.Href(lang, "/"),
	}
	renderPageStatus(w, r, http.StatusNotFound, "notfound", vm)
}
