// Package seo builds page metadata, hreflang alternates, JSON-LD payloads and
// the XML sitemap.
package seo

import (
	"html/template"
	"strings"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
	Locale      string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

// Alternate is an hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	Robots      string
	OG          OpenGraph
	Twitter     Twitter
	Alternates  []Alternate
	JSONLD      []template.JS
}

// Page describes one rendered page for Build.
type Page struct {
	SiteName    string
	BaseURL     string
	Locale      string
	Title       string
	Description string
	Image       string
	Type        string
	// Paths maps each locale to the page path without locale prefix.
	Paths map[string]string
}

var ogLocales = map[string]string{"fr": "fr_FR", "en": "en_US"}

// Build fills a Meta from p. The title gets the site name appended; the
// canonical URL always uses the page's own supported locale.
func Build(p Page) Meta {
	title := strings.TrimSpace(p.Title)
	full := p.SiteName
	if title != "" && title != p.SiteName {
		full = title + " | " + p.SiteName
	}
	typ := p.Type
	if typ == "" {
		typ = "website"
	}
	m := Meta{
		Title:       full,
		Description: strings.TrimSpace(p.Description),
		Canonical:   AbsURL(p.BaseURL, p.Locale, p.Paths[p.Locale]),
	}
	m.OG = OpenGraph{
		Title:       m.Title,
		Description: m.Description,
		Image:       p.Image,
		Type:        typ,
		URL:         m.Canonical,
		SiteName:    p.SiteName,
		Locale:      ogLocales[p.Locale],
	}
	m.Twitter = Twitter{Card: "summary", Image: p.Image}
	if p.Image != "" {
		m.Twitter.Card = "summary_large_image"
	}
	for _, l := range []string{"fr", "en"} {
		if path, ok := p.Paths[l]; ok {
			m.Alternates = append(m.Alternates, Alternate{Href: AbsURL(p.BaseURL, l, path), Hreflang: l})
		}
	}
	if path, ok := p.Paths["fr"]; ok {
		m.Alternates = append(m.Alternates, Alternate{Href: AbsURL(p.BaseURL, "fr", path), Hreflang: "x-default"})
	}
	return m
}

// AddJSONLD appends a structured-data payload.
func (m *Meta) AddJSONLD(v any) {
	if s := JSON(v); s != "" {
		m.JSONLD = append(m.JSONLD, template.JS(s))
	}
}

// AbsURL joins base, locale and a locale-relative path.
func AbsURL(base, locale, path string) string {
	base = strings.TrimRight(base, "/")
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return base + "/" + locale + "/"
	}
	return base + "/" + locale + "/" + path
}
