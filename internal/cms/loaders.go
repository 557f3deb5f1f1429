package cms

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Page sizes used by the listing pages.
const (
	ArticlesPageSize     = 9
	MembersPageSize      = 12
	LatestArticlesCount  = 6
	FullListPageSize     = 500
	RecruitmentsPageSize = 100
)

// Page is one page of a collection.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

var (
	articleCardPopulate = Populate{}.With("image", PopulateAll()).With("categories", PopulateAll())
	memberCardPopulate  = Populate{}.With("image", PopulateAll()).With("members_roles", PopulateAll())

	homePagePopulate = Populate{}.With("background", PopulateAll()).Flag("firstButton").Flag("secondButton")

	partnerPopulate = Populate{}.With("partner", Populate{}.With("logo", Populate{}.With("image", PopulateAll())))

	directorPopulate = Populate{}.With("director", Populate{}.With("image", PopulateAll()))
)

// list fetches a collection page, logging failures and degrading to an empty page.
func list[T any](ctx context.Context, c *Client, resource string, q Query) Page[T] {
	env, err := FetchCollection[T](ctx, c, resource, q)
	if err != nil {
		c.log(ctx).Error("cms list failed",
			zap.String("resource", resource),
			zap.String("locale", q.Locale),
			zap.Error(err),
		)
		return Page[T]{Pagination: Pagination{}.normalize(q.Pagination)}
	}
	return Page[T]{Items: env.Data, Pagination: env.Meta.Pagination}
}

// single fetches a single type, logging failures and returning nil.
func single[T any](ctx context.Context, c *Client, resource string, q Query) *T {
	out, err := FetchSingle[T](ctx, c, resource, q)
	if err != nil {
		c.log(ctx).Error("cms single fetch failed",
			zap.String("resource", resource),
			zap.String("locale", q.Locale),
			zap.Error(err),
		)
		return nil
	}
	return out
}

// Articles returns a page of news articles, newest first.
func (c *Client) Articles(ctx context.Context, locale string, page, pageSize int) Page[Article] {
	return list[Article](ctx, c, "articles", Query{
		Populate:   articleCardPopulate,
		Locale:     locale,
		Sort:       []string{"publishedAt:desc"},
		Pagination: &PageRequest{Page: clampPage(page), PageSize: pageSize},
	})
}

// LatestArticles returns the n most recent articles.
func (c *Client) LatestArticles(ctx context.Context, locale string, n int) []Article {
	return c.Articles(ctx, locale, 1, n).Items
}

// Members returns a page of members ordered by rank then name.
func (c *Client) Members(ctx context.Context, locale string, page, pageSize int) Page[Member] {
	return list[Member](ctx, c, "user-profiles", Query{
		Populate:   memberCardPopulate,
		Locale:     locale,
		Sort:       []string{"rank:asc", "lastName:asc", "firstName:asc"},
		Pagination: &PageRequest{Page: clampPage(page), PageSize: pageSize},
	})
}

// Events returns every event in locale.
func (c *Client) Events(ctx context.Context, locale string) []Event {
	return list[Event](ctx, c, "events", Query{
		Populate:   eventPopulate,
		Locale:     locale,
		Pagination: &PageRequest{Page: 1, PageSize: FullListPageSize},
	}).Items
}

// Projects returns every project in locale.
func (c *Client) Projects(ctx context.Context, locale string) []Project {
	return list[Project](ctx, c, "projects", Query{
		Populate:   projectPopulate,
		Locale:     locale,
		Pagination: &PageRequest{Page: 1, PageSize: FullListPageSize},
	}).Items
}

// Teams returns every research team in locale.
func (c *Client) Teams(ctx context.Context, locale string) []Team {
	return list[Team](ctx, c, "teams", Query{
		Populate:   teamPopulate,
		Locale:     locale,
		Pagination: &PageRequest{Page: 1, PageSize: FullListPageSize},
	}).Items
}

// Publications returns every publication in locale with authors and attachments.
func (c *Client) Publications(ctx context.Context, locale string) []Publication {
	return list[Publication](ctx, c, "publications", Query{
		Populate:   publicationPopulate,
		Locale:     locale,
		Pagination: &PageRequest{Page: 1, PageSize: FullListPageSize},
	}).Items
}

// Recruitments returns open positions, most recently created first.
func (c *Client) Recruitments(ctx context.Context, locale string) []Recruitment {
	items := list[Recruitment](ctx, c, "recruitments", Query{
		Populate:   recruitmentPopulate,
		Locale:     locale,
		Pagination: &PageRequest{Page: 1, PageSize: RecruitmentsPageSize},
	}).Items
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items
}

// HomePage returns the home page single type.
func (c *Client) HomePage(ctx context.Context, locale string) *HomePage {
	return single[HomePage](ctx, c, "home-page", Query{Populate: homePagePopulate, Locale: locale})
}

// Partners returns the partners shown in the home slider.
func (c *Client) Partners(ctx context.Context) []Partner {
	pl := single[PartnerList](ctx, c, "partner", Query{Populate: partnerPopulate})
	if pl == nil {
		return nil
	}
	return pl.Partners
}

// YouTube returns the channel single type.
func (c *Client) YouTube(ctx context.Context) *YouTubeChannel {
	return single[YouTubeChannel](ctx, c, "youtube-channel", Query{Populate: PopulateAll()})
}

// DirectorWord returns the director's word in locale.
func (c *Client) DirectorWord(ctx context.Context, locale string) *DirectorWord {
	return single[DirectorWord](ctx, c, "director-word", Query{Populate: directorPopulate, Locale: locale})
}

// Global returns the site-wide defaults in locale.
func (c *Client) Global(ctx context.Context, locale string) *Global {
	return single[Global](ctx, c, "global", Query{
		Populate: Populate{}.With("seo", Populate{}.With("metaImage", PopulateAll())),
		Locale:   locale,
	})
}

// Statistics counts the lab's main collections.
type Statistics struct {
	Members      int
	Publications int
	Projects     int
	Teams        int
}

// Statistics fetches the four counts concurrently. A failing count reads as zero.
func (c *Client) Statistics(ctx context.Context, locale string) Statistics {
	var stats Statistics
	g, gctx := errgroup.WithContext(ctx)
	count := func(resource, loc string, dst *int) {
		g.Go(func() error {
			*dst = c.count(gctx, resource, loc)
			return nil
		})
	}
	count("user-profiles", locale, &stats.Members)
	count("publications", "", &stats.Publications)
	count("projects", locale, &stats.Projects)
	count("teams", locale, &stats.Teams)
	_ = g.Wait()
	return stats
}

type idOnly struct {
	ID int `json:"id"`
}

type slugOnly struct {
	Slug string `json:"slug"`
}

func (c *Client) count(ctx context.Context, resource, locale string) int {
	page := list[idOnly](ctx, c, resource, Query{Locale: locale, Pagination: &PageRequest{Page: 1, PageSize: 1}})
	if page.Pagination.Total > 0 {
		return page.Pagination.Total
	}
	return len(page.Items)
}

// Slugs lists every slug of resource in locale.
func (c *Client) Slugs(ctx context.Context, resource, locale string) []string {
	page := list[slugOnly](ctx, c, resource, Query{
		Fields:     []string{"slug"},
		Locale:     locale,
		Pagination: &PageRequest{Page: 1, PageSize: FullListPageSize},
	})
	out := make([]string, 0, len(page.Items))
	for _, item := range page.Items {
		if s := strings.TrimSpace(item.Slug); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
