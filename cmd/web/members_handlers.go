package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/i18n"
	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/richtext"
	"esselab.org/esse-web/internal/seo"
)

// MembersIndexHandler renders one page of lab members.
func MembersIndexHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	page := cmsClient.Members(r.Context(), lang, pageParam(r), cms.MembersPageSize)

	vm := newPageData(r, seo.Page{
		Title:       i18nBundle.T(lang, "members.title"),
		Description: i18nBundle.T(lang, "members.subtitle"),
		Paths:       nav.SectionLinks("/members"),
	})
	vm.Members = buildMembersIndex(page, lang)
	renderPage(w, r, "members", vm)
}

// MemberDetailHandler renders a member profile with their publications.
func MemberDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	m, err := cmsClient.MemberBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		renderNotFound(w, r, i18n.Copy(lang, "Membre introuvable", "Member not found"))
		return
	}

	view := buildMember(m, lang, r.URL.Query().Get("type"))
	vm := newPageData(r, seo.Page{
		Title:       view.Name,
		Description: firstNonEmpty(richtext.Excerpt(m.Biography, metaDescriptionLen), i18nBundle.T(lang, "members.subtitle")),
		Image:       view.Image,
		Type:        "profile",
		Paths:       detailPaths("/members", cms.LocalizedSlugs(lang, m.Slug, m.Localizations)),
	})
	vm.Member = view
	vm.SEO.AddJSONLD(seo.Person(view.Name, vm.SEO.Canonical, view.Image, view.Email, view.Roles))
	if mw.IsHTMX(r.Context()) && r.Header.Get("HX-Target") == "publication-list" {
		w.Header().Set("HX-Push-Url", r.URL.RequestURI())
		renderTemplate(w, r, "frag_publications", view.Publications)
		return
	}
	renderPage(w, r, "member_detail", vm)
}
