package main

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"esselab.org/esse-web/internal/format"
	handlersPkg "esselab.org/esse-web/internal/handlers"
	"esselab.org/esse-web/internal/i18n"
	mw "esselab.org/esse-web/internal/middleware"
	"esselab.org/esse-web/internal/nav"
	"esselab.org/esse-web/internal/observability"
	"esselab.org/esse-web/internal/richtext"
	"esselab.org/esse-web/internal/seo"
)

// metaDescriptionLen bounds descriptions derived from rich text.
const metaDescriptionLen = 160

// templateSet holds one template per page, each combining the shared layout
// and partials with the page's own "content" block, plus one set for fragments.
type templateSet struct {
	pages map[string]*template.Template
	frags *template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			if i18nBundle == nil {
				return key
			}
			return i18nBundle.T(lang, key)
		},
		"copy":     i18n.Copy,
		"href":     nav.Href,
		"richtext": richtext.HTML,
		"date":     format.Date,
		"longDate": format.LongDate,
		"number":   format.Number,
		"join":     strings.Join,
		"add":      func(a, b int) int { return a + b },
		"sub":      func(a, b int) int { return a - b },
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, errors.New("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
	}
}

func listTemplates(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return files, nil
}

func parseTemplates() (*templateSet, error) {
	var shared []string
	for _, sub := range []string{"layouts", "partials"} {
		files, err := listTemplates(filepath.Join(templatesDir, sub))
		if err != nil {
			return nil, err
		}
		shared = append(shared, files...)
	}
	if len(shared) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	root, err := template.New("_root").Funcs(templateFuncs()).ParseFiles(shared...)
	if err != nil {
		return nil, err
	}

	set := &templateSet{pages: map[string]*template.Template{}}
	pages, err := listTemplates(filepath.Join(templatesDir, "pages"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		t, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFiles(page); err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		set.pages[strings.TrimSuffix(filepath.Base(page), ".tmpl")] = t
	}

	frags, err := listTemplates(filepath.Join(templatesDir, "frags"))
	if err != nil {
		return nil, err
	}
	if set.frags, err = root.Clone(); err != nil {
		return nil, err
	}
	if len(frags) > 0 {
		if _, err := set.frags.ParseFiles(frags...); err != nil {
			return nil, err
		}
	}
	return set, nil
}

// templates returns the cached set. In dev mode, templates are reparsed on each request.
func templates() (*templateSet, error) {
	if devMode || tmplCache == nil {
		return parseTemplates()
	}
	return tmplCache, nil
}

func writeHTML(w http.ResponseWriter, r *http.Request, status int, exec func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := exec(&buf); err != nil {
		observability.FromContext(r.Context()).Error("template render failed", zap.Error(err))
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderPage executes the base layout with the named page's content block.
func renderPage(w http.ResponseWriter, r *http.Request, name string, vm handlersPkg.PageData) {
	renderPageStatus(w, r, http.StatusOK, name, vm)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, status int, name string, vm handlersPkg.PageData) {
	writeHTML(w, r, status, func(buf *bytes.Buffer) error {
		set, err := templates()
		if err != nil {
			return err
		}
		t, ok := set.pages[name]
		if !ok {
			return fmt.Errorf("page template %q not found", name)
		}
		return t.ExecuteTemplate(buf, "base", vm)
	})
}

// renderTemplate executes a fragment template without the layout.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	writeHTML(w, r, http.StatusOK, func(buf *bytes.Buffer) error {
		set, err := templates()
		if err != nil {
			return err
		}
		return set.frags.ExecuteTemplate(buf, name, data)
	})
}

// newPageData fills the layout fields shared by every page. p.Paths maps each
// locale to the page path without locale prefix and drives the locale
// switcher, canonical and hreflang links.
func newPageData(r *http.Request, p seo.Page) handlersPkg.PageData {
	lang := mw.Lang(r)
	vm := handlersPkg.PageData{
		Title:       p.Title,
		Lang:        lang,
		Analytics:   analytics,
		Site:        siteSettings,
		Year:        time.Now().Year(),
		Path:        r.URL.Path,
		Nav:         nav.Build(lang, r.URL.Path),
		Breadcrumbs: nav.Breadcrumbs(lang, r.URL.Path, p.Title),
		LocaleLinks: nav.LocaleLinks(lang, p.Paths),
	}
	p.SiteName = siteSettings.Name
	p.BaseURL = siteBaseURL
	p.Locale = lang
	if p.Description == "" {
		p.Description = siteSettings.TaglineFor(lang)
	}
	vm.SEO = seo.Build(p)
	return vm
}

// detailPaths turns a locale to slug map into locale to path entries under section.
func detailPaths(section string, slugs map[string]string) map[string]string {
	out := make(map[string]string, len(slugs))
	for l, s := range slugs {
		if l == i18n.French || l == i18n.English {
			out[l] = section + "/" + s
		}
	}
	return out
}

// pageParam reads a 1-based page number from the query.
func pageParam(r *http.Request) int {
	return queryIntValue(r.URL.Query(), "page", 1)
}
