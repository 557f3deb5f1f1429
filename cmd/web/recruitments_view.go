package main

import (
	"html/template"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/format"
	"esselab.org/esse-web/internal/i18n"
	"esselab.org/esse-web/internal/richtext"
)

// recruitmentExcerptLen is the text preview length on recruitment cards.
const recruitmentExcerptLen = 180

// RecruitmentCard is one open position in the listing.
type RecruitmentCard struct {
	Title    string
	Subtitle string
	Href     string
	Date     string
	Excerpt  string
}

// RecruitmentsIndexView is the filtered recruitment list.
type RecruitmentsIndexView struct {
	Cards   []RecruitmentCard
	Filters []FilterLink
	Empty   bool
}

// RecruitmentView is the recruitment detail payload.
type RecruitmentView struct {
	Title    string
	Subtitle string
	Date     string
	Content  template.HTML
	BackHref string
}

func recruitmentTypes(rec cms.Recruitment) []string {
	var out []string
	for _, t := range rec.Types {
		if name := strings.TrimSpace(t.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

// recruitmentSubtitle joins the type names, or falls back to a generic label.
func recruitmentSubtitle(rec cms.Recruitment, lang string) string {
	if types := recruitmentTypes(rec); len(types) > 0 {
		return strings.Join(types, ", ")
	}
	return i18n.Copy(lang, "Opportunité", "Opportunity")
}

// recruitmentTypeNames lists distinct type names in collation order.
func recruitmentTypeNames(recs []cms.Recruitment, lang string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, rec := range recs {
		for _, name := range recruitmentTypes(rec) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	tag := language.French
	if lang == i18n.English {
		tag = language.English
	}
	collate.New(tag).SortStrings(out)
	return out
}

func hasType(rec cms.Recruitment, name string) bool {
	for _, t := range recruitmentTypes(rec) {
		if t == name {
			return true
		}
	}
	return false
}

// buildRecruitmentsIndex keeps recs in the given order. An unknown type
// selects every recruitment.
func buildRecruitmentsIndex(recs []cms.Recruitment, lang, selected string) RecruitmentsIndexView {
	types := recruitmentTypeNames(recs, lang)
	selected = strings.TrimSpace(selected)
	known := false
	for _, t := range types {
		if t == selected {
			known = true
			break
		}
	}
	if !known {
		selected = ""
	}

	v := RecruitmentsIndexView{
		Filters: typeFilters("/"+lang+"/recruitments", types, selected),
		Empty:   len(recs) == 0,
	}
	for _, rec := range recs {
		if selected != "" && !hasType(rec, selected) {
			continue
		}
		v.Cards = append(v.Cards, RecruitmentCard{
			Title:    rec.Title,
			Subtitle: recruitmentSubtitle(rec, lang),
			Href:     "/" + lang + "/recruitments/" + rec.Slug,
			Date:     format.Date(firstNonEmpty(rec.CreatedAt, rec.PublishedAt), lang),
			Excerpt:  richtext.Excerpt(rec.Content, recruitmentExcerptLen),
		})
	}
	return v
}

func buildRecruitment(rec *cms.Recruitment, lang string) RecruitmentView {
	return RecruitmentView{
		Title:    rec.Title,
		Subtitle: recruitmentSubtitle(*rec, lang),
		Date:     format.Date(firstNonEmpty(rec.PublishedAt, rec.CreatedAt), lang),
		Content:  richtext.HTML(rec.Content),
		BackHref: "/" + lang + "/recruitments",
	}
}
