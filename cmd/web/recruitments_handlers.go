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

// RecruitmentsIndexHandler lists open positions, optionally filtered by ?type=.
func RecruitmentsIndexHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	recs := cmsClient.Recruitments(r.Context(), lang)

	vm := newPageData(r, seo.Page{
		Title:       i18nBundle.T(lang, "recruitments.title"),
		Description: i18nBundle.T(lang, "recruitments.subtitle"),
		Paths:       nav.SectionLinks("/recruitments"),
	})
	vm.Recruitments = buildRecruitmentsIndex(recs, lang, r.URL.Query().Get("type"))
	renderPage(w, r, "recruitments", vm)
}

// RecruitmentDetailHandler renders one open position.
func RecruitmentDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	rec, err := cmsClient.RecruitmentBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		renderNotFound(w, r, i18n.Copy(lang, "Recrutement introuvable", "Recruitment not found"))
		return
	}

	vm := newPageData(r, seo.Page{
		Title:       rec.Title,
		Description: firstNonEmpty(richtext.Excerpt(rec.Content, metaDescriptionLen), i18nBundle.T(lang, "recruitments.subtitle")),
		Paths:       detailPaths("/recruitments", cms.LocalizedSlugs(lang, rec.Slug, rec.Localizations)),
	})
	vm.Recruitment = buildRecruitment(rec, lang)
	renderPage(w, r, "recruitment_detail", vm)
}
