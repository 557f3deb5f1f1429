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

// TeamsIndexHandler lists the research teams.
func TeamsIndexHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	teams := cmsClient.Teams(r.Context(), lang)

	vm := newPageData(r, seo.Page{
		Title:       i18nBundle.T(lang, "teams.title"),
		Description: i18nBundle.T(lang, "teams.subtitle"),
		Paths:       nav.SectionLinks("/teams"),
	})
	vm.Teams = buildTeams(teams, lang)
	renderPage(w, r, "teams", vm)
}

// TeamDetailHandler renders one team with its members and projects.
func TeamDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	t, err := cmsClient.TeamBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		renderNotFound(w, r, i18n.Copy(lang, "Équipe introuvable", "Team Not Found"))
		return
	}

	vm := newPageData(r, seo.Page{
		Title:       t.Name,
		Description: firstNonEmpty(richtext.Excerpt(t.Content, metaDescriptionLen), i18nBundle.T(lang, "teams.subtitle")),
		Paths:       detailPaths("/teams", cms.LocalizedSlugs(lang, t.Slug, t.Localizations)),
	})
	vm.Team = buildTeam(t, lang)
	renderPage(w, r, "team_detail", vm)
}
