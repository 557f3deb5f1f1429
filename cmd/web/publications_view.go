package main

import (
	"net/url"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/publications"
)

// FilterLink is one chip of a type filter. The "all" chip has an empty Value.
type FilterLink struct {
	Value  string
	Href   string
	Active bool
}

// PublicationsView is a formatted publication list with its type filter.
type PublicationsView struct {
	Lang    string
	List    publications.List
	Filters []FilterLink
}

// typeFilters builds the chips for types, the first one clearing the filter.
func typeFilters(basePath string, types []string, selected string) []FilterLink {
	if len(types) == 0 {
		return nil
	}
	out := []FilterLink{{Href: basePath, Active: selected == ""}}
	for _, t := range types {
		out = append(out, FilterLink{
			Value:  t,
			Href:   basePath + "?" + url.Values{"type": {t}}.Encode(),
			Active: t == selected,
		})
	}
	return out
}

func buildPublications(pubs []cms.Publication, lang, basePath, selected string) PublicationsView {
	list := publications.Build(pubs, publications.Options{
		Locale:    lang,
		MediaBase: cmsClient.MediaBase(),
		Type:      selected,
	})
	return PublicationsView{
		Lang:    lang,
		List:    list,
		Filters: typeFilters(basePath, list.Types, list.Selected),
	}
}
