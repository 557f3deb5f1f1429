package main

import (
	"net/http"

	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/seo"
)

// PublicationsHandler renders every publication grouped by year, optionally
// restricted to one type with ?type=.
func PublicationsHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	pubs := cmsClient.Publications(r.Context(), lang)
	view := buildPublications(pubs, lang, "/"+lang+"/publications", r.URL.Query().Get("type"))

	vm := newPageData(r, seo.Page{
		Title:       i18nBundle.T(lang, "publications.title"),
		Description: i18nBundle.T(lang, "publications.subtitle"),
		Paths:       nav.SectionLinks("/publications"),
	})
	vm.Publications = view
	if mw.IsHTMX(r.Context()) && r.Header.Get("HX-Target") == "publication-list" {
		w.Header().Set("HX-Push-Url", r.URL.RequestURI())
		renderTemplate(w, r, "frag_publications", view)
		return
	}
	renderPage(w, r, "publications", vm)
}
