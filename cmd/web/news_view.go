package main

import (
	"fmt"
	"html/template"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/format"
	"esselab.org/esse-web/internal/richtext"
)

// PaginationView drives the pagination partial.
type PaginationView struct {
	Page     int
	Count    int
	PrevHref string
	NextHref string
	Items    []PageLink
}

// PageLink is one entry of the pagination bar. Ellipsis entries have no href.
type PageLink struct {
	Page     int
	Href     string
	Current  bool
	Ellipsis bool
}

// NewsIndexView is the news listing payload.
type NewsIndexView struct {
	Cards      []ArticleCard
	Pagination *PaginationView
}

// ArticleView is the news detail payload.
type ArticleView struct {
	Title       string
	Description string
	Image       string
	ImageAlt    string
	Published   string
	Updated     string
	Categories  []string
	Content     template.HTML
	BackHref    string
}

func buildPagination(basePath string, p cms.Pagination) *PaginationView {
	if p.PageCount <= 1 {
		return nil
	}
	v := &PaginationView{Page: p.Page, Count: p.PageCount}
	href := func(n int) string { return fmt.Sprintf("%s?page=%d", basePath, n) }
	if p.Page > 1 {
		v.PrevHref = href(p.Page - 1)
	}
	if p.Page < p.PageCount {
		v.NextHref = href(p.Page + 1)
	}
	for _, it := range format.Pages(p.Page, p.PageCount) {
		link := PageLink{Page: it.Page, Current: it.Current, Ellipsis: it.Ellipsis}
		if !it.Ellipsis {
			link.Href = href(it.Page)
		}
		v.Items = append(v.Items, link)
	}
	return v
}

func buildNewsIndex(page cms.Page[cms.Article], lang string) NewsIndexView {
	v := NewsIndexView{Pagination: buildPagination("/"+lang+"/news", page.Pagination)}
	for _, a := range page.Items {
		v.Cards = append(v.Cards, articleCard(a, lang))
	}
	return v
}

func buildArticle(a *cms.Article, lang string) ArticleView {
	v := ArticleView{
		Title:       a.Title,
		Description: a.Description,
		Published:   format.Date(firstNonEmpty(a.PublishedAt, a.CreatedAt), lang),
		Content:     richtext.HTML(a.Content),
		BackHref:    "/" + lang + "/news",
	}
	if a.UpdatedAt != "" && a.UpdatedAt != a.PublishedAt {
		if u := format.Date(a.UpdatedAt, lang); u != v.Published {
			v.Updated = u
		}
	}
	if a.Image != nil {
		v.Image = cmsClient.MediaURL(a.Image.Best("large", "medium"))
		v.ImageAlt = firstNonEmpty(a.Image.AlternativeText, a.Title)
	}
	for _, c := range a.Categories {
		v.Categories = append(v.Categories, c.Name)
	}
	return v
}
