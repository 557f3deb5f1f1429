package publications

import (
	"bytes"
	"html/template"
	"strings"

	"esselab.org/esse-web/internal/cms"
)

// Author is one name in a citation. Href is set for lab members.
type Author struct {
	Name string
	Href string
}

// Link is a bracketed external link such as [doi].
type Link struct {
	Label string
	Href  string
}

// Line is one formatted citation.
type Line struct {
	ID          int
	YearHeading string
	Title       string
	Authors     []Author
	Details     []string
	Links       []Link
}

// EditorLabel is "eds." for several authors and "ed." for one.
func (l Line) EditorLabel() string {
	if len(l.Authors) > 1 {
		return "eds."
	}
	return "ed."
}

// FormatLine builds the citation parts for p.
func FormatLine(p cms.Publication, locale, mediaBase string) Line {
	line := Line{ID: p.ID, Title: strings.TrimSpace(p.Title)}

	for _, m := range p.Members {
		if m.Locale != "" && m.Locale != "fr" {
			continue
		}
		name := strings.TrimSpace(m.FirstName + " " + m.LastName)
		if name == "" {
			continue
		}
		line.Authors = append(line.Authors, Author{Name: name, Href: "/" + locale + "/members/" + m.Slug})
	}
	for _, nm := range p.NonMembers {
		if name := strings.TrimSpace(nm.FullName); name != "" {
			line.Authors = append(line.Authors, Author{Name: name})
		}
	}

	if t := p.TypeName(); t != "" {
		line.Details = append(line.Details, t)
	}
	if pub := p.Publisher; pub != nil {
		if name := strings.TrimSpace(pub.Name); name != "" {
			line.Details = append(line.Details, name)
		}
		if vol := strings.TrimSpace(pub.Volume); vol != "" {
			line.Details = append(line.Details, "volume "+vol)
		}
	}
	if when := FormatDate(p.Date()); when != "" {
		line.Details = append(line.Details, when)
	}

	if a := p.Attachments; a != nil {
		if v := strings.TrimSpace(a.DOI); v != "" {
			line.Links = append(line.Links, Link{Label: "doi", Href: v})
		}
		if v := strings.TrimSpace(a.URL); v != "" {
			line.Links = append(line.Links, Link{Label: "url", Href: v})
		}
		if v := strings.TrimSpace(a.Scholar); v != "" {
			line.Links = append(line.Links, Link{Label: "scholar", Href: v})
		}
		for _, pdf := range a.PDF {
			if u := cms.MediaURL(mediaBase, pdf.URL); u != "" {
				line.Links = append(line.Links, Link{Label: "pdf", Href: u})
			}
		}
	}
	return line
}

// Text renders the citation as plain text:
// "Title, (A and B, eds.), type, publisher, volume 3, may 2020. [doi] [pdf]".
func (l Line) Text() string {
	var b strings.Builder
	b.WriteString(l.Title)
	if len(l.Authors) > 0 {
		if l.Title != "" {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for i, a := range l.Authors {
			if i > 0 {
				b.WriteString(" and ")
			}
			b.WriteString(a.Name)
		}
		b.WriteString(", " + l.EditorLabel() + ")")
	}
	if len(l.Details) > 0 {
		if l.Title != "" || len(l.Authors) > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strings.Join(l.Details, ", "))
	}
	if l.Title != "" || len(l.Authors) > 0 || len(l.Details) > 0 {
		b.WriteString(".")
	}
	for _, link := range l.Links {
		b.WriteString(" [" + link.Label + "]")
	}
	return strings.TrimSpace(b.String())
}

var lineTmpl = template.Must(template.New("line").Funcs(template.FuncMap{
	"join": func(parts []string) string { return strings.Join(parts, ", ") },
}).Parse(
	`{{.Title}}` +
		`{{if .Authors}}{{if .Title}}, {{end}}(` +
		`{{range $i, $a := .Authors}}{{if $i}} and {{end}}` +
		`{{if $a.Href}}<a class="pub-author" href="{{$a.Href}}">{{$a.Name}}</a>{{else}}{{$a.Name}}{{end}}` +
		`{{end}}, {{.EditorLabel}}){{end}}` +
		`{{if .Details}}{{if or .Title .Authors}}, {{end}}{{join .Details}}{{end}}` +
		`{{if or .Title .Authors .Details}}.{{end}}` +
		`{{range .Links}} <a class="pub-link" href="{{.Href}}" target="_blank" rel="noopener">[{{.Label}}]</a>{{end}}`,
))

// HTML renders the citation with member and attachment links.
func (l Line) HTML() template.HTML {
	var buf bytes.Buffer
	if err := lineTmpl.Execute(&buf, l); err != nil {
		return template.HTML(template.HTMLEscapeString(l.Text()))
	}
	return template.HTML(buf.String())
}
