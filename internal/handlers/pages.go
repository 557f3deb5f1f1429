package handlers

import (
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/seo"
	"esselab.org/esse-web/internal/site"
)

// PageData is the view model shared by every page using the base layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       seo.Meta
	Analytics Analytics
	Site      site.Settings
	Year      int

	Path        string
	Nav         []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	LocaleLinks []nav.LocaleLink

	// Optional per-page view model payloads
	Home         any
	News         any
	Article      any
	Events       any
	Event        any
	Members      any
	Member       any
	Teams        any
	Team         any
	Projects     any
	Project      any
	Publications any
	Recruitments any
	Recruitment  any
	NotFound     any
}
