package main

import (
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"esselab.org/esse-web/internal/i18n"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/observability"
	"esselab.org/esse-web/internal/seo"
)

// sitemapResources maps CMS collections to the section serving their records.
var sitemapResources = []struct {
	resource string
	section  string
}{
	{"articles", "/news"},
	{"events", "/events"},
	{"user-profiles", "/members"},
	{"teams", "/teams"},
	{"projects", "/projects"},
	{"recruitments", "/recruitments"},
}

// RobotsHandler allows crawling and points at the sitemap.
func RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	b.WriteString("Sitemap: " + strings.TrimRight(siteBaseURL, "/") + "/sitemap.xml\n")
	_, _ = w.Write([]byte(b.String()))
}

// SitemapHandler lists section pages in every locale and each record slug.
// Slug listings are fetched concurrently.
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	urls := seo.Entry(siteBaseURL, nav.SectionLinks("/"), clock())
	for _, it := range nav.Main {
		urls = append(urls, seo.Entry(siteBaseURL, nav.SectionLinks(it.Path), clock())...)
	}

	var (
		mu     sync.Mutex
		detail = map[string][]seo.URL{}
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, res := range sitemapResources {
		for _, lang := range i18n.Supported {
			res, lang := res, lang
			g.Go(func() error {
				var out []seo.URL
				for _, slug := range cmsClient.Slugs(gctx, res.resource, lang) {
					out = append(out, seo.Entry(siteBaseURL, map[string]string{lang: res.section + "/" + slug}, clock())...)
				}
				mu.Lock()
				detail[res.resource+"/"+lang] = out
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	// keep a stable order regardless of completion order
	for _, res := range sitemapResources {
		for _, lang := range i18n.Supported {
			urls = append(urls, detail[res.resource+"/"+lang]...)
		}
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	if err := seo.WriteSitemap(w, urls); err != nil {
		observability.FromContext(ctx).Error("sitemap write failed", zap.Error(err))
	}
}
