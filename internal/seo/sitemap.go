package seo

import (
	"encoding/xml"
	"io"
	"time"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// URL is one sitemap entry.
type URL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	Alternates []XhtmlRef `xml:"xhtml:link,omitempty"`
}

// XhtmlRef is an hreflang alternate inside a sitemap entry.
type XhtmlRef struct {
	Rel      string `xml:"rel,attr"`
	Hreflang string `xml:"hreflang,attr"`
	Href     string `xml:"href,attr"`
}

type urlset struct {
	XMLName xml.Name `xml:"urlset"`
	NS      string   `xml:"xmlns,attr"`
	XHTML   string   `xml:"xmlns:xhtml,attr"`
	URLs    []URL    `xml:"url"`
}

// Entry builds a sitemap URL for a page available under paths, one per locale.
// It returns one URL per locale, each listing all alternates.
func Entry(base string, paths map[string]string, lastMod time.Time) []URL {
	var refs []XhtmlRef
	for _, l := range []string{"fr", "en"} {
		if p, ok := paths[l]; ok {
			refs = append(refs, XhtmlRef{Rel: "alternate", Hreflang: l, Href: AbsURL(base, l, p)})
		}
	}
	mod := ""
	if !lastMod.IsZero() {
		mod = lastMod.UTC().Format("2006-01-02")
	}
	out := make([]URL, 0, len(refs))
	for _, ref := range refs {
		out = append(out, URL{Loc: ref.Href, LastMod: mod, Alternates: refs})
	}
	return out
}

// WriteSitemap encodes urls as a sitemap document.
func WriteSitemap(w io.Writer, urls []URL) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(urlset{NS: sitemapNS, XHTML: "http://www.w3.org/1999/xhtml", URLs: urls}); err != nil {
		return err
	}
	return enc.Flush()
}
