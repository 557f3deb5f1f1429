package main

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/i18n"
	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/richtext"
	"esselab.org/esse-web/internal/seo"
)

// ProjectView is the project detail payload.
type ProjectView struct {
	Name        string
	Content     template.HTML
	Manager     string
	ManagerHref string
	Team        string
	TeamHref    string
	BackHref    string
}

func buildProject(p *cms.Project, lang string) ProjectView {
	card := projectCard(*p, lang)
	v := ProjectView{
		Name:     p.Name,
		Content:  richtext.HTML(p.Content),
		Manager:  card.Manager,
		Team:     card.Team,
		TeamHref: card.TeamHref,
		BackHref: "/" + lang + "/projects",
	}
	if m := p.ProjectManager; m != nil && m.Slug != "" {
		v.ManagerHref = "/" + lang + "/members/" + m.Slug
	}
	return v
}

// ProjectsIndexHandler lists the lab's projects.
func ProjectsIndexHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	projects := cmsClient.Projects(r.Context(), lang)
	cards := make([]ProjectCard, 0, len(projects))
	for _, p := range projects {
		cards = append(cards, projectCard(p, lang))
	}

	vm := newPageData(r, seo.Page{
		Title:       i18nBundle.T(lang, "projects.title"),
		Description: i18nBundle.T(lang, "projects.subtitle"),
		Paths:       nav.SectionLinks("/projects"),
	})
	vm.Projects = cards
	renderPage(w, r, "projects", vm)
}

// ProjectDetailHandler renders one project.
func ProjectDetailHandler(w http.ResponseWriter, r *http.Request) {
	lang := mw.Lang(r)
	p, err := cmsClient.ProjectBySlug(r.Context(), chi.URLParam(r, "slug"), lang)
	if err != nil {
		renderNotFound(w, r, i18n.Copy(lang, "Projet introuvable", "Project Not Found"))
		return
	}

	vm := newPageData(r, seo.Page{
		Title:       p.Name,
		Description: firstNonEmpty(richtext.Excerpt(p.Content, metaDescriptionLen), i18nBundle.T(lang, "projects.subtitle")),
		Paths:       detailPaths("/projects", cms.LocalizedSlugs(lang, p.Slug, p.Localizations)),
	})
	vm.Project = buildProject(p, lang)
	renderPage(w, r, "project_detail", vm)
}
