package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	chiMid "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"esselab.org/esse-web/internal/i18n"
	"esselab.org/esse-web/internal/observability"
)

func TestLocaleFromURL(t *testing.T) {
	r := chi.NewRouter()
	r.Route("/{locale:[a-z]{2}}", func(r chi.Router) {
		r.Use(Locale)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(Lang(r)))
		})
	})

	cases := map[string]string{
		"/en/": "en",
		"/fr/": "fr",
		"/de/": "fr",
	}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rec.Body.String(), path)
	}
}

func TestLangDefaultsToFrench(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "fr", Lang(req))
}

func TestRedirectToLocale(t *testing.T) {
	bundle, err := i18n.Load("../../locales", i18n.French, i18n.Supported)
	require.NoError(t, err)
	h := RedirectToLocale(bundle)

	for accept, want := range map[string]string{"en-US,en;q=0.9": "/en/", "": "/fr/", "es": "/fr/"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Accept-Language", accept)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, want, rec.Header().Get("Location"), accept)
	}
}

func TestHTMXFlag(t *testing.T) {
	var got bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { got = IsHTMX(r.Context()) }))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, got)
}

func TestLoggerEmitsOneLinePerRequest(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	var fromCtx *zap.Logger
	r := chi.NewRouter()
	r.Use(chiMid.RequestID)
	r.Use(Logger(zap.New(core)))
	r.Get("/{locale}/missing", func(w http.ResponseWriter, r *http.Request) {
		fromCtx = observability.FromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en/missing", nil))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zap.WarnLevel, entry.Level)
	fields := entry.ContextMap()
	assert.EqualValues(t, 404, fields["status"])
	assert.Equal(t, "/{locale}/missing", fields["route"])
	assert.Equal(t, "en", fields["locale"])
	assert.NotEmpty(t, fields["request_id"])
	assert.NotNil(t, fromCtx)
}

func TestAssetsWithCacheETag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "site.css"), []byte("body{}"), 0o644))
	h := AssetsWithCache(dir, "/assets")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, "body{}", rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/assets/css/site.css", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotModified, rec.Code)
}
