package main

import (
	"html/template"
	"strings"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/richtext"
)

// MemberCard is a member in listings.
type MemberCard struct {
	Name     string
	Href     string
	Image    string
	Initials string
	Roles    []string
}

// MembersIndexView is one page of members.
type MembersIndexView struct {
	Cards      []MemberCard
	Pagination *PaginationView
}

// MemberView is the member profile payload.
type MemberView struct {
	Name         string
	Image        string
	Initials     string
	Roles        []string
	Email        string
	Phone        string
	Biography    template.HTML
	Publications PublicationsView
	BackHref     string
}

func memberImage(m cms.Member) string {
	if m.Image == nil {
		return ""
	}
	return cmsClient.MediaURL(m.Image.Best("medium", "small", "thumbnail"))
}

func memberRoles(m cms.Member) []string {
	var out []string
	for _, r := range m.Roles {
		if name := strings.TrimSpace(r.Name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func memberCard(m cms.Member, lang string) MemberCard {
	c := MemberCard{
		Name:     m.FullName(),
		Image:    memberImage(m),
		Initials: m.Initials(),
		Roles:    memberRoles(m),
	}
	if m.Slug != "" {
		c.Href = "/" + lang + "/members/" + m.Slug
	}
	return c
}

func buildMembersIndex(page cms.Page[cms.Member], lang string) MembersIndexView {
	v := MembersIndexView{Pagination: buildPagination("/"+lang+"/members", page.Pagination)}
	for _, m := range page.Items {
		v.Cards = append(v.Cards, memberCard(m, lang))
	}
	return v
}

func buildMember(m *cms.Member, lang, selectedType string) MemberView {
	v := MemberView{
		Name:     m.FullName(),
		Image:    memberImage(*m),
		Initials: m.Initials(),
		Roles:    memberRoles(*m),
		Email:    strings.TrimSpace(m.Email),
		Phone:    strings.TrimSpace(m.PhoneNumber.String()),
		BackHref: "/" + lang + "/members",
	}
	if strings.TrimSpace(m.Biography) != "" {
		v.Biography = richtext.HTML(m.Biography)
	}
	v.Publications = buildPublications(m.Publications, lang, "/"+lang+"/members/"+m.Slug, selectedType)
	return v
}
