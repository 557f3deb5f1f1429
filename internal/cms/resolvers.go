package cms

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

var (
	articlePopulate = Populate{}.With("image", PopulateAll()).With("categories", PopulateAll()).
		With("seo", PopulateAll()).With("localizations", PopulateAll())

	eventPopulate = Populate{}.With("localisation", PopulateAll()).With("localizations", PopulateAll())

	publicationPopulate = Populate{}.With("type", PopulateAll()).With("members", PopulateAll()).
		With("non_members", PopulateAll()).With("publisher", PopulateAll()).
		With("attachements", PopulateAll())

	memberPopulate = Populate{}.With("image", PopulateAll()).With("members_roles", PopulateAll()).
		With("publications", publicationPopulate).With("localizations", PopulateAll())

	projectPopulate = Populate{}.With("project_manager", PopulateAll()).With("research_team", PopulateAll()).
		With("localizations", PopulateAll())

	teamPopulate = Populate{}.With("team_leader", PopulateAll()).With("members", PopulateAll()).
		With("projects", PopulateAll()).With("localizations", PopulateAll())

	recruitmentPopulate = Populate{}.With("recruitments_types", PopulateAll()).With("localizations", PopulateAll())
)

// ArticleBySlug returns the article with slug in locale.
func (c *Client) ArticleBySlug(ctx context.Context, slug, locale string) (*Article, error) {
	return bySlug[Article](ctx, c, "articles", slug, locale, articlePopulate)
}

// EventBySlug returns the event with slug in locale.
func (c *Client) EventBySlug(ctx context.Context, slug, locale string) (*Event, error) {
	return bySlug[Event](ctx, c, "events", slug, locale, eventPopulate)
}

// MemberBySlug returns the member profile with slug in locale, publications included.
func (c *Client) MemberBySlug(ctx context.Context, slug, locale string) (*Member, error) {
	return bySlug[Member](ctx, c, "user-profiles", slug, locale, memberPopulate)
}

// ProjectBySlug returns the project with slug in locale.
func (c *Client) ProjectBySlug(ctx context.Context, slug, locale string) (*Project, error) {
	return bySlug[Project](ctx, c, "projects", slug, locale, projectPopulate)
}

// TeamBySlug returns the research team with slug in locale.
func (c *Client) TeamBySlug(ctx context.Context, slug, locale string) (*Team, error) {
	return bySlug[Team](ctx, c, "teams", slug, locale, teamPopulate)
}

// RecruitmentBySlug returns the recruitment offer with slug in locale.
func (c *Client) RecruitmentBySlug(ctx context.Context, slug, locale string) (*Recruitment, error) {
	return bySlug[Recruitment](ctx, c, "recruitments", slug, locale, recruitmentPopulate)
}

// bySlug takes the first record matching slug. Backend failures are logged and
// reported as ErrNotFound so callers only distinguish found from missing.
func bySlug[T any](ctx context.Context, c *Client, resource, slug, locale string, populate Populate) (*T, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}
	q := Query{
		Filters:  []Filter{Eq("slug", slug)},
		Populate: populate,
		Locale:   locale,
	}
	env, err := FetchCollection[T](ctx, c, resource, q)
	if err != nil {
		c.log(ctx).Error("cms lookup by slug failed",
			zap.String("resource", resource),
			zap.String("slug", slug),
			zap.String("locale", locale),
			zap.Error(err),
		)
		return nil, ErrNotFound
	}
	if len(env.Data) == 0 {
		return nil, ErrNotFound
	}
	return &env.Data[0], nil
}

// LocalizedSlugs maps each locale to the slug of the same record in it.
// References to the current locale or without a slug are skipped.
func LocalizedSlugs(locale, slug string, refs []LocalizationRef) map[string]string {
	out := map[string]string{locale: slug}
	for _, ref := range refs {
		loc := strings.TrimSpace(ref.Locale)
		if loc == "" || loc == locale || strings.TrimSpace(ref.Slug) == "" {
			continue
		}
		out[loc] = ref.Slug
	}
	return out
}
