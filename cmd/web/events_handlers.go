package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/i18n"
	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/richtext"
	"esselab.org/esse-web/internal/seo"
)

// clock is replaced in tests.
var clock = time.Now

// EventsIndexHandler lists upcoming then past events.
func EventsIndexHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	events := cmsClient.Events(r.Context(), lang)

	vm := newPageData(r, seo.Page{
		Title:       i18nBundle.T(lang, "events.title"),
		Description: i18nBundle.T(lang, "events.subtitle"),
		Paths:       nav.SectionLinks("/events"),
	})
	vm.Events = buildEventsIndex(events, lang, clock())
	renderPage(w, r, "events", vm)
}

// EventDetailHandler renders one event.
func EventDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	ev, err := cmsClient.EventBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		renderNotFound(w, r, i18n.Copy(lang, "Événement introuvable", "Event Not Found"))
		return
	}

	view := buildEvent(ev, lang)
	vm := newPageData(r, seo.Page{
		Title:       ev.Title,
		Description: firstNonEmpty(richtext.Excerpt(ev.Content, metaDescriptionLen), view.Date),
		Paths:       detailPaths("/events", cms.LocalizedSlugs(lang, ev.Slug, ev.Localizations)),
	})
	vm.Event = view
	vm.SEO.AddJSONLD(seo.Event(ev.Title, vm.SEO.Canonical, ev.Date, view.Location, view.Address))
	renderPage(w, r, "event_detail", vm)
}
