// Package richtext turns CMS rich text into safe HTML and plain-text excerpts.
package richtext

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	policy = newPolicy()

	// embedSrc accepts the YouTube and Vimeo players the editor inserts.
	embedSrc = regexp.MustCompile(`^https://(www\.)?(youtube\.com|youtube-nocookie\.com)/embed/[\w-]+|^https://player\.vimeo\.com/video/\d+`)

	htmlLike = regexp.MustCompile(`^\s*<[a-zA-Z!/]`)
	spaces   = regexp.MustCompile(`\s+`)
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "figcaption", "table", "thead", "tbody", "tfoot", "tr", "th", "td", "caption", "iframe")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)).Globally()
	p.AllowAttrs("style").Matching(regexp.MustCompile(`^(width|height|aspect-ratio):[0-9.]+(px|%)?;?$`)).OnElements("figure", "img")
	p.AllowAttrs("src").Matching(embedSrc).OnElements("iframe")
	p.AllowAttrs("width", "height", "allow", "allowfullscreen", "frameborder", "title").OnElements("iframe")
	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// LooksLikeHTML reports whether content starts with a tag.
func LooksLikeHTML(content string) bool {
	return htmlLike.MatchString(content)
}

// HTML renders content as sanitized HTML. Markdown is converted first.
func HTML(content string) template.HTML {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	src := content
	if !LooksLikeHTML(content) {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err == nil {
			src = buf.String()
		}
	}
	return template.HTML(policy.Sanitize(src))
}

// PlainText strips markup and collapses whitespace.
func PlainText(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if !LooksLikeHTML(content) {
		content = string(HTML(content))
	}
	z := xhtml.NewTokenizer(strings.NewReader(content))
	var b strings.Builder
	skip := 0
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			return collapse(b.String())
		case xhtml.StartTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				skip++
			case "br", "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "tr", "figcaption":
				b.WriteByte(' ')
			}
		case xhtml.EndTagToken:
			name, _ := z.TagName()
			switch string(name) {
			case "script", "style":
				if skip > 0 {
					skip--
				}
			case "p", "div", "li", "h1", "h2", "h3", "h4", "h5", "h6", "td", "th":
				b.WriteByte(' ')
			}
		case xhtml.SelfClosingTagToken:
			b.WriteByte(' ')
		case xhtml.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// Excerpt returns the plain text of content cut to at most n runes. A cut
// text ends with an ellipsis and still fits in n runes.
func Excerpt(content string, n int) string {
	text := PlainText(content)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	keep := max(n-3, 1)
	return strings.TrimSpace(string(runes[:keep])) + "…"
}
