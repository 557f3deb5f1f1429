package cms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"esselab.org/esse-web/internal/cache"
)

// fakeCMS answers /api/{resource} with handlers keyed by resource name.
type fakeCMS struct {
	*httptest.Server
	hits     atomic.Int64
	lastAuth atomic.Value
}

func newFakeCMS(t *testing.T, routes map[string]http.HandlerFunc) *fakeCMS {
	t.Helper()
	f := &fakeCMS{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.hits.Add(1)
		f.lastAuth.Store(r.Header.Get("Authorization"))
		name := strings.TrimPrefix(r.URL.Path, "/api/")
		h, ok := routes[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(f.Close)
	return f
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestFetchCollectionDecodesEnvelope(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"articles": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "fr", r.URL.Query().Get("locale"))
			assert.Equal(t, "publishedAt:desc", r.URL.Query().Get("sort[0]"))
			writeJSON(w, map[string]any{
				"data": []map[string]any{{"id": 1, "title": "Bonjour", "slug": "bonjour"}},
				"meta": map[string]any{"pagination": map[string]any{"page": 1, "pageSize": 9, "total": 19}},
			})
		},
	})
	c := NewClient(srv.URL)

	env, err := FetchCollection[Article](context.Background(), c, "articles", Query{
		Locale: "fr", Sort: []string{"publishedAt:desc"}, Pagination: &PageRequest{Page: 1, PageSize: 9},
	})
	require.NoError(t, err)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Bonjour", env.Data[0].Title)
	assert.Equal(t, 3, env.Meta.Pagination.PageCount, "page count is derived from total")
}

func TestFetchCollectionNotFoundIsEmpty(t *testing.T) {
	srv := newFakeCMS(t, nil)
	env, err := FetchCollection[Event](context.Background(), NewClient(srv.URL), "events", Query{Pagination: &PageRequest{Page: 1, PageSize: 500}})
	require.NoError(t, err)
	assert.Empty(t, env.Data)
	assert.Equal(t, Pagination{Page: 1, PageSize: 500, PageCount: 1}, env.Meta.Pagination)
}

func TestFetchSingleSpread(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"array takes first", `{"data":[{"name":"first"},{"name":"second"}]}`, "first"},
		{"object", `{"data":{"name":"only"}}`, "only"},
		{"null", `{"data":null}`, ""},
		{"empty array", `{"data":[]}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newFakeCMS(t, map[string]http.HandlerFunc{
				"home-page": func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte(tt.body))
				},
			})
			got, err := FetchSingle[HomePage](context.Background(), NewClient(srv.URL), "home-page", Query{})
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Name)
		})
	}
}

func TestFetchSingleNotFound(t *testing.T) {
	srv := newFakeCMS(t, nil)
	got, err := FetchSingle[HomePage](context.Background(), NewClient(srv.URL), "home-page", Query{})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetReportsStatusAndSendsToken(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"teams": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
	})
	c := NewClient(srv.URL+"/", WithToken("secret"))
	_, err := c.Get(context.Background(), "teams", Query{})
	var serr *StatusError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, http.StatusInternalServerError, serr.StatusCode)
	assert.Equal(t, "Bearer secret", srv.lastAuth.Load())
}

func TestGetMergesInlineQuery(t *testing.T) {
	var raw string
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"publications": func(w http.ResponseWriter, r *http.Request) {
			raw = r.URL.RawQuery
			writeJSON(w, map[string]any{"data": []any{}})
		},
	})
	_, err := NewClient(srv.URL).Get(context.Background(), "publications?populate=*", Query{Locale: "en"})
	require.NoError(t, err)
	assert.Equal(t, "populate=*&locale=en", raw)
}

func TestGetUsesCache(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"projects": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"data": []any{}})
		},
	})
	c := NewClient(srv.URL, WithCache(cache.NewMemory(), time.Minute))
	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), "projects", Query{Locale: "fr"})
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, srv.hits.Load())

	_, err := c.Get(context.Background(), "projects", Query{Locale: "en"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, srv.hits.Load(), "different query is a different key")
}

func TestGetDoesNotCacheErrors(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"teams": func(w http.ResponseWriter, r *http.Request) {
			if fail.Load() {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			writeJSON(w, map[string]any{"data": []any{}})
		},
	})
	c := NewClient(srv.URL, WithCache(cache.NewMemory(), time.Minute))
	_, err := c.Get(context.Background(), "teams", Query{})
	require.Error(t, err)
	fail.Store(false)
	_, err = c.Get(context.Background(), "teams", Query{})
	require.NoError(t, err)
}

func TestMediaURL(t *testing.T) {
	assert.Equal(t, "https://cms.example/uploads/a.png", MediaURL("https://cms.example/", "/uploads/a.png"))
	assert.Equal(t, "https://cdn.example/a.png", MediaURL("https://cms.example", "https://cdn.example/a.png"))
	assert.Equal(t, "//cdn.example/a.png", MediaURL("https://cms.example", "//cdn.example/a.png"))
	assert.Empty(t, MediaURL("https://cms.example", " "))

	c := NewClient("https://cms.example", WithMediaBase("https://media.example/"))
	assert.Equal(t, "https://media.example/x.pdf", c.MediaURL("/x.pdf"))
}

func TestMediaRefsShapes(t *testing.T) {
	var a Attachments
	require.NoError(t, json.Unmarshal([]byte(`{"associatedPDF":"/uploads/a.pdf"}`), &a))
	require.Len(t, a.PDF, 1)
	assert.Equal(t, "/uploads/a.pdf", a.PDF[0].URL)

	require.NoError(t, json.Unmarshal([]byte(`{"associatedPDF":{"url":"/uploads/b.pdf"}}`), &a))
	require.Len(t, a.PDF, 1)
	assert.Equal(t, "/uploads/b.pdf", a.PDF[0].URL)

	require.NoError(t, json.Unmarshal([]byte(`{"associatedPDF":[{"url":"/1.pdf"},{"url":"/2.pdf"}]}`), &a))
	assert.Len(t, a.PDF, 2)

	require.NoError(t, json.Unmarshal([]byte(`{"associatedPDF":null}`), &a))
	assert.Empty(t, a.PDF)
}

func TestFlexStringAcceptsNumbers(t *testing.T) {
	var m Member
	require.NoError(t, json.Unmarshal([]byte(`{"phone_number":33612345678}`), &m))
	assert.Equal(t, "33612345678", m.PhoneNumber.String())
	require.NoError(t, json.Unmarshal([]byte(`{"phone_number":"+33 6 12"}`), &m))
	assert.Equal(t, "+33 6 12", m.PhoneNumber.String())
}

func TestMediaBest(t *testing.T) {
	m := &Media{URL: "/orig.jpg", Formats: map[string]MediaFormat{"medium": {URL: "/m.jpg"}}}
	assert.Equal(t, "/m.jpg", m.Best("large", "medium"))
	assert.Equal(t, "/orig.jpg", m.Best("small"))
	var none *Media
	assert.Empty(t, none.Best("small"))
}

func TestMemberInitials(t *testing.T) {
	assert.Equal(t, "ÉD", Member{FirstName: "élise", LastName: "Dupont"}.Initials())
	assert.Equal(t, "Élise Dupont", Member{FirstName: " Élise", LastName: "Dupont "}.FullName())
}
