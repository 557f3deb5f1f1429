package main

import (
	"html/template"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/richtext"
)

// TeamCard is a team in the listing.
type TeamCard struct {
	Name         string
	Href         string
	Leader       string
	MemberCount  int
	ProjectCount int
}

// TeamView is the team detail payload.
type TeamView struct {
	Name     string
	Content  template.HTML
	Leader   *MemberCard
	Members  []MemberCard
	Projects []ProjectCard
	BackHref string
}

// ProjectCard is a project in listings.
type ProjectCard struct {
	Name     string
	Href     string
	Excerpt  string
	Manager  string
	Team     string
	TeamHref string
}

// projectExcerptLen is the text preview length on project cards.
const projectExcerptLen = 160

func teamCard(t cms.Team, lang string) TeamCard {
	c := TeamCard{
		Name:         t.Name,
		Href:         "/" + lang + "/teams/" + t.Slug,
		MemberCount:  len(t.Members),
		ProjectCount: len(t.Projects),
	}
	if t.TeamLeader != nil {
		c.Leader = t.TeamLeader.FullName()
	}
	return c
}

func projectCard(p cms.Project, lang string) ProjectCard {
	c := ProjectCard{
		Name:    p.Name,
		Href:    "/" + lang + "/projects/" + p.Slug,
		Excerpt: richtext.Excerpt(p.Content, projectExcerptLen),
	}
	if p.ProjectManager != nil {
		c.Manager = p.ProjectManager.FullName()
	}
	if t := p.ResearchTeam; t != nil {
		c.Team = t.Name
		if t.Slug != "" {
			c.TeamHref = "/" + lang + "/teams/" + t.Slug
		}
	}
	return c
}

func buildTeams(teams []cms.Team, lang string) []TeamCard {
	out := make([]TeamCard, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamCard(t, lang))
	}
	return out
}

func buildTeam(t *cms.Team, lang string) TeamView {
	v := TeamView{
		Name:     t.Name,
		Content:  richtext.HTML(t.Content),
		BackHref: "/" + lang + "/teams",
	}
	if t.TeamLeader != nil {
		leader := memberCard(*t.TeamLeader, lang)
		v.Leader = &leader
	}
	for _, m := range t.Members {
		v.Members = append(v.Members, memberCard(m, lang))
	}
	for _, p := range t.Projects {
		v.Projects = append(v.Projects, projectCard(p, lang))
	}
	return v
}
