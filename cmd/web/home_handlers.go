package main

import (
	"net/http"
	"strings"

	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/seo"
)

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	ctx := r.Context()
	data := fetchHome(ctx, lang)
	view := buildHomeView(data, lang, r.URL.Query())

	page := seo.Page{Title: siteSettings.Name, Paths: nav.SectionLinks("/")}
	if g := cmsClient.Global(ctx, lang); g != nil {
		page.Description = g.Description
		if g.SEO != nil {
			if t := strings.TrimSpace(g.SEO.MetaTitle); t != "" {
				page.Title = t
			}
			if d := strings.TrimSpace(g.SEO.MetaDescription); d != "" {
				page.Description = d
			}
			if g.SEO.MetaImage != nil {
				page.Image = cmsClient.MediaURL(g.SEO.MetaImage.URL)
			}
		}
	}
	if page.Image == "" && view.Hero != nil {
		page.Image = view.Hero.Background
	}

	vm := newPageData(r, page)
	vm.Home = view
	vm.SEO.AddJSONLD(seo.Organization(siteSettings.Name, seo.AbsURL(siteBaseURL, lang, "/"), siteSettings.Logo))
	vm.SEO.AddJSONLD(seo.WebSite(siteSettings.Name, seo.AbsURL(siteBaseURL, lang, "/"), ""))

	renderPage(w, r, "home", vm)
}

// PartnersCarouselFrag renders the partners slider after the queued
// navigation in ?move. ?pos is the item at the left slot before the move.
func PartnersCarouselFrag(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	partners := cmsClient.Partners(r.Context())
	view := buildPartners(partners, lang, r.URL.Query())
	renderTemplate(w, r, "frag_partners", view)
}
