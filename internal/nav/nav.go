package nav

import (
	"path"
	"strings"

	"esselab.org/esse-web/internal/i18n"
)

// Item represents a top-level navigation item.
type Item struct {
	Path     string // section path without locale, e.g. "/news"
	LabelKey string // i18n key, e.g. "nav.news"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href     string
	LabelKey string
	Active   bool
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// LocaleLink is one entry of the locale switcher.
type LocaleLink struct {
	Locale string
	Href   string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Path: "/news", LabelKey: "nav.news"},
	{Path: "/events", LabelKey: "nav.events"},
	{Path: "/members", LabelKey: "nav.members"},
	{Path: "/teams", LabelKey: "nav.teams"},
	{Path: "/projects", LabelKey: "nav.projects"},
	{Path: "/publications", LabelKey: "nav.publications"},
	{Path: "/recruitments", LabelKey: "nav.recruitments"},
}

// Href prefixes a section path with the locale.
func Href(locale, p string) string {
	if p == "" || p == "/" {
		return "/" + locale + "/"
	}
	return "/" + locale + "/" + strings.TrimPrefix(p, "/")
}

// Build renders navigation items with active state given the current path.
func Build(locale, currentPath string) []RenderedItem {
	rel := stripLocale(locale, currentPath)
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Href:     Href(locale, it.Path),
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, rel),
		})
	}
	return items
}

func stripLocale(locale, p string) string {
	if p == "" {
		return "/"
	}
	rest := strings.TrimPrefix(p, "/"+locale)
	if rest == p || (rest != "" && rest[0] != '/') {
		return p
	}
	if rest == "" {
		return "/"
	}
	return rest
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	// match exact or prefix boundary: "/news" or "/news/..."
	return currentPath == itemPath || strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path. The last crumb
// takes label when given, otherwise a prettified slug.
func Breadcrumbs(locale, currentPath, label string) []Crumb {
	rel := stripLocale(locale, currentPath)
	crumbs := []Crumb{{Href: Href(locale, "/"), LabelKey: "nav.home", Active: rel == "/"}}
	if rel == "/" {
		return crumbs
	}

	clean := path.Clean(rel)
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")

	top := "/" + parts[0]
	labelKey := ""
	for _, it := range Main {
		if it.Path == top {
			labelKey = it.LabelKey
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: Href(locale, top), LabelKey: labelKey, Label: titleFromSegment(parts[0]), Active: len(parts) == 1})

	href := top
	for i := 1; i < len(parts); i++ {
		href = href + "/" + parts[i]
		c := Crumb{Href: Href(locale, href), Label: titleFromSegment(parts[i]), Active: i == len(parts)-1}
		if c.Active && label != "" {
			c.Label = label
		}
		crumbs = append(crumbs, c)
	}
	return crumbs
}

// LocaleLinks builds switcher links from a locale to path map, e.g.
// {"fr": "/news/bonjour", "en": "/news/hello"}. Locales missing from the map
// point to their home page.
func LocaleLinks(current string, paths map[string]string) []LocaleLink {
	out := make([]LocaleLink, 0, len(i18n.Supported))
	for _, l := range i18n.Supported {
		p, ok := paths[l]
		if !ok {
			p = "/"
		}
		out = append(out, LocaleLink{Locale: l, Href: Href(l, p), Active: l == current})
	}
	return out
}

// SectionLinks maps every locale to the same section path.
func SectionLinks(section string) map[string]string {
	out := make(map[string]string, len(i18n.Supported))
	for _, l := range i18n.Supported {
		out[l] = section
	}
	return out
}

func titleFromSegment(seg string) string {
	if seg == "" {
		return seg
	}
	// replace hyphens/underscores with spaces and capitalize first letter
	s := strings.ReplaceAll(seg, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	r := []rune(s)
	r[0] = toUpper(r[0])
	return string(r)
}

func toUpper(r rune) rune {
	// ASCII only is sufficient for slugs here
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
