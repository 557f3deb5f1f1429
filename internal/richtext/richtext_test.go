package richtext

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestHTMLSanitizes(t *testing.T) {
	out := string(HTML(`<p class="lead">Hi<script>alert(1)</script> <a href="javascript:x()">bad</a></p>`))
	assert.Contains(t, out, `<p class="lead">Hi`)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestHTMLKeepsEditorFigures(t *testing.T) {
	out := string(HTML(`<figure class="image image-style-side"><img src="/uploads/a.png" alt="a"><figcaption>Cap</figcaption></figure>`))
	assert.Contains(t, out, `<figure class="image image-style-side">`)
	assert.Contains(t, out, `<figcaption>Cap</figcaption>`)
}

func TestHTMLRestrictsIframesToVideoPlayers(t *testing.T) {
	out := string(HTML(`<p>v</p><iframe src="https://www.youtube.com/embed/abc123" allowfullscreen></iframe>`))
	assert.Contains(t, out, `src="https://www.youtube.com/embed/abc123"`)

	out = string(HTML(`<p>v</p><iframe src="https://player.vimeo.com/video/42"></iframe>`))
	assert.Contains(t, out, `src="https://player.vimeo.com/video/42"`)

	out = string(HTML(`<p>v</p><iframe src="https://evil.example/phish"></iframe>`))
	assert.NotContains(t, out, "evil.example")
}

func TestHTMLRendersMarkdown(t *testing.T) {
	out := string(HTML("# Title\n\nSome **bold** text"))
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Empty(t, HTML("   "))
}

func TestPlainText(t *testing.T) {
	assert.Equal(t, "Hello world & friends", PlainText("<h2>Hello</h2><p>world &amp; <em>friends</em></p>"))
	assert.Equal(t, "a b", PlainText("<p>a</p><style>p{}</style><p>b</p>"))
	assert.Equal(t, "Title bold", PlainText("# Title\n\n**bold**"))
}

func TestExcerpt(t *testing.T) {
	short := "<p>short text</p>"
	assert.Equal(t, "short text", Excerpt(short, 150))

	long := "<p>" + strings.Repeat("word ", 100) + "</p>"
	got := Excerpt(long, 180)
	assert.True(t, strings.HasSuffix(got, "…"))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 180)
}
