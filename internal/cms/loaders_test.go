package cms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMembersPageBeyondLastIsEmpty(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"user-profiles": func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "rank:asc", q.Get("sort[0]"))
			assert.Equal(t, "lastName:asc", q.Get("sort[1]"))
			assert.Equal(t, "firstName:asc", q.Get("sort[2]"))
			page, _ := strconv.Atoi(q.Get("pagination[page]"))
			data := []map[string]any{}
			if page <= 3 {
				data = append(data, map[string]any{"id": page, "firstName": "M"})
			}
			writeJSON(w, map[string]any{
				"data": data,
				"meta": map[string]any{"pagination": map[string]any{"page": page, "pageSize": 12, "pageCount": 3, "total": 25}},
			})
		},
	})
	c := NewClient(srv.URL)

	p := c.Members(context.Background(), "fr", 4, MembersPageSize)
	assert.Empty(t, p.Items)
	assert.Equal(t, Pagination{Page: 4, PageSize: 12, PageCount: 3, Total: 25}, p.Pagination)

	p = c.Members(context.Background(), "fr", 0, MembersPageSize)
	assert.Len(t, p.Items, 1)
	assert.Equal(t, 1, p.Pagination.Page, "page is clamped to 1")
}

func TestArticlesFailureDegradesToDefaultPagination(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"articles": func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) },
	})
	p := NewClient(srv.URL).Articles(context.Background(), "fr", 2, ArticlesPageSize)
	assert.Empty(t, p.Items)
	assert.Equal(t, Pagination{Page: 2, PageSize: 9, PageCount: 1, Total: 0}, p.Pagination)
}

func TestStatisticsCountsConcurrently(t *testing.T) {
	totals := map[string]int{"user-profiles": 42, "publications": 130, "projects": 9, "teams": 4}
	routes := map[string]http.HandlerFunc{}
	for name, total := range totals {
		name, total := name, total
		routes[name] = func(w http.ResponseWriter, r *http.Request) {
			if name == "publications" {
				assert.Empty(t, r.URL.Query().Get("locale"))
			} else {
				assert.Equal(t, "en", r.URL.Query().Get("locale"))
			}
			writeJSON(w, map[string]any{
				"data": []map[string]any{{"id": 1}},
				"meta": map[string]any{"pagination": map[string]any{"page": 1, "pageSize": 1, "total": total}},
			})
		}
	}
	srv := newFakeCMS(t, routes)
	stats := NewClient(srv.URL).Statistics(context.Background(), "en")
	assert.Equal(t, Statistics{Members: 42, Publications: 130, Projects: 9, Teams: 4}, stats)
}

func TestRecruitmentsNewestFirst(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"recruitments": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "100", r.URL.Query().Get("pagination[pageSize]"))
			writeJSON(w, map[string]any{"data": []map[string]any{
				{"id": 1, "title": "old", "createdAt": "2023-01-02T10:00:00.000Z"},
				{"id": 2, "title": "new", "createdAt": "2024-06-01T10:00:00.000Z"},
				{"id": 3, "title": "mid", "createdAt": "2023-09-01T10:00:00.000Z"},
			}})
		},
	})
	items := NewClient(srv.URL).Recruitments(context.Background(), "fr")
	require.Len(t, items, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{items[0].Title, items[1].Title, items[2].Title})
}

func TestHomeSingleTypes(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"partner": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"data": map[string]any{"id": 1, "partner": []map[string]any{
				{"id": 1, "link": "https://a.example", "logo": map[string]any{"company": "A", "image": map[string]any{"url": "/a.png"}}},
				{"id": 2, "link": "https://b.example", "logo": map[string]any{"company": "B"}},
			}}})
		},
		"youtube-channel": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, map[string]any{"data": map[string]any{"channel_url": "https://youtube.com/@lab", "videos": []map[string]any{{"url": "https://youtu.be/abc"}}}})
		},
		"home-page": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "true", r.URL.Query().Get("populate[firstButton]"))
			writeJSON(w, map[string]any{"data": map[string]any{"name": "ESSE", "firstButton": map[string]any{"text": "Go", "URL": "/news"}}})
		},
	})
	c := NewClient(srv.URL)
	ctx := context.Background()

	partners := c.Partners(ctx)
	require.Len(t, partners, 2)
	assert.Equal(t, "A", partners[0].Logo.Company)

	yt := c.YouTube(ctx)
	require.NotNil(t, yt)
	assert.Len(t, yt.Videos, 1)

	home := c.HomePage(ctx, "fr")
	require.NotNil(t, home)
	assert.Equal(t, "/news", home.FirstButton.URL)

	assert.Nil(t, c.DirectorWord(ctx, "fr"), "missing single type")
}

func TestSlugsSkipsBlank(t *testing.T) {
	srv := newFakeCMS(t, map[string]http.HandlerFunc{
		"teams": func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "slug", r.URL.Query().Get("fields[0]"))
			writeJSON(w, map[string]any{"data": []map[string]any{{"slug": "a"}, {"slug": ""}, {"slug": "b"}}})
		},
	})
	assert.Equal(t, []string{"a", "b"}, NewClient(srv.URL).Slugs(context.Background(), "teams", "fr"))
}

func TestStatisticsCancelledLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreCurrent(),
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/teams") {
			<-r.Context().Done()
			return
		}
		writeJSON(w, map[string]any{
			"data": []map[string]any{{"id": 1}},
			"meta": map[string]any{"pagination": map[string]any{"page": 1, "pageSize": 1, "pageCount": 7, "total": 7}},
		})
	}))
	defer srv.Close()

	hc := &http.Client{}
	defer hc.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	stats := NewClient(srv.URL, WithHTTPClient(hc)).Statistics(ctx, "fr")
	assert.Equal(t, 7, stats.Members)
	assert.Zero(t, stats.Teams, "a cancelled count reads as zero")
}
