package main

import (
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"esselab.org/esse-web/internal/carousel"
	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/format"
	"esselab.org/esse-web/internal/richtext"
)

// newsWindow is the number of article cards visible in the home news strip.
const newsWindow = 3

// maxCardCategories caps the category chips on an article card.
const maxCardCategories = 2

// carouselViewport is the nominal width used to lay out the partners slider
// on the server. Only the resulting indices matter.
const carouselViewport = 1200

// HomeView is the home page payload.
type HomeView struct {
	Lang     string
	Hero     *HeroView
	News     NewsStripView
	Director *DirectorView
	Stats    []StatView
	Videos   *VideosView
	Partners PartnersView
}

// HeroView is the home banner.
type HeroView struct {
	Title       string
	Description string
	Background  string
	Buttons     []HeroButton
}

// HeroButton is one call to action of the banner.
type HeroButton struct {
	Text   string
	Href   string
	Target string
}

// ArticleCard is the summary of an article shown in lists.
type ArticleCard struct {
	Title       string
	Description string
	Href        string
	Image       string
	ImageAlt    string
	Date        string
	Categories  []string
}

// NewsStripView is a non-wrapping window over the latest articles.
type NewsStripView struct {
	Cards    []ArticleCard
	Start    int
	Total    int
	PrevHref string
	NextHref string
}

// DirectorView is the director's word section.
type DirectorView struct {
	Word     template.HTML
	Name     string
	Href     string
	Image    string
	Initials string
}

// StatView is one counter of the statistics section.
type StatView struct {
	LabelKey string
	Value    string
}

// VideosView is the YouTube selector.
type VideosView struct {
	ChannelURL string
	Selected   VideoItem
	Items      []VideoItem
}

// VideoItem is one selectable video.
type VideoItem struct {
	Index    int
	ID       string
	Href     string
	Thumb    string
	EmbedURL string
	Active   bool
}

// PartnersView is the partners slider state for one position.
type PartnersView struct {
	Lang     string
	Pos      int
	Endpoint string
	Slides   []PartnerSlide
	Dots     []PartnerDot
	PrevHref string
	NextHref string
}

// PartnerSlide is one visible partner logo.
type PartnerSlide struct {
	Company string
	Image   string
	Link    string
	Center  bool
}

// PartnerDot jumps to one partner.
type PartnerDot struct {
	Index  int
	Href   string
	Move   string
	Active bool
}

type homeData struct {
	page     *cms.HomePage
	articles []cms.Article
	director *cms.DirectorWord
	stats    cms.Statistics
	channel  *cms.YouTubeChannel
	partners []cms.Partner
}

// fetchHome loads every home section concurrently. Loaders degrade to empty
// values on failure so the group never errors.
func fetchHome(ctx context.Context, lang string) homeData {
	var d homeData
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { d.page = cmsClient.HomePage(gctx, lang); return nil })
	g.Go(func() error { d.articles = cmsClient.LatestArticles(gctx, lang, cms.LatestArticlesCount); return nil })
	g.Go(func() error { d.director = cmsClient.DirectorWord(gctx, lang); return nil })
	g.Go(func() error { d.stats = cmsClient.Statistics(gctx, lang); return nil })
	g.Go(func() error { d.channel = cmsClient.YouTube(gctx); return nil })
	g.Go(func() error { d.partners = cmsClient.Partners(gctx); return nil })
	_ = g.Wait()
	return d
}

func buildHomeView(d homeData, lang string, q url.Values) HomeView {
	partners := buildPartners(d.partners, lang, q)
	// other sections link with the settled slider position and no pending move
	q = cloneQuery(q)
	q.Del("move")
	q.Del("pos")
	if partners.Pos != 0 {
		q.Set("pos", strconv.Itoa(partners.Pos))
	}
	return HomeView{
		Lang:     lang,
		Hero:     buildHero(d.page, lang),
		News:     buildNewsStrip(d.articles, lang, q),
		Director: buildDirector(d.director, lang),
		Stats:    buildStats(d.stats, lang),
		Videos:   buildVideos(d.channel, lang, q),
		Partners: partners,
	}
}

func buildHero(p *cms.HomePage, lang string) *HeroView {
	if p == nil {
		return nil
	}
	h := &HeroView{Title: p.Name, Description: p.Description}
	if len(p.Background) > 0 {
		h.Background = cmsClient.MediaURL(p.Background[0].Best("large", "medium"))
	}
	for _, b := range []*cms.Button{p.FirstButton, p.SecondButton} {
		if b == nil || strings.TrimSpace(b.Text) == "" {
			continue
		}
		h.Buttons = append(h.Buttons, HeroButton{
			Text:   b.Text,
			Href:   "/" + lang + b.URL,
			Target: buttonTarget(b.Target),
		})
	}
	return h
}

// buttonTarget drops placeholder targets the CMS stores for "same window".
func buttonTarget(t string) string {
	switch strings.TrimSpace(t) {
	case "", "null", "self", "_self":
		return ""
	default:
		return t
	}
}

func articleCard(a cms.Article, lang string) ArticleCard {
	c := ArticleCard{
		Title:       a.Title,
		Description: a.Description,
		Href:        fmt.Sprintf("/%s/news/%s", lang, a.Slug),
		Date:        format.Date(firstNonEmpty(a.PublishedAt, a.CreatedAt), lang),
	}
	if a.Image != nil {
		c.Image = cmsClient.MediaURL(a.Image.Best("small", "medium"))
		c.ImageAlt = firstNonEmpty(a.Image.AlternativeText, a.Title)
	}
	for i, cat := range a.Categories {
		if i == maxCardCategories {
			break
		}
		c.Categories = append(c.Categories, cat.Name)
	}
	return c
}

func buildNewsStrip(articles []cms.Article, lang string, q url.Values) NewsStripView {
	v := NewsStripView{Total: len(articles)}
	maxStart := len(articles) - newsWindow
	if maxStart < 0 {
		maxStart = 0
	}
	start := queryIntValue(q, "news", 0)
	if start < 0 {
		start = 0
	}
	if start > maxStart {
		start = maxStart
	}
	v.Start = start
	end := start + newsWindow
	if end > len(articles) {
		end = len(articles)
	}
	for _, a := range articles[start:end] {
		v.Cards = append(v.Cards, articleCard(a, lang))
	}
	if start > 0 {
		v.PrevHref = withQuery(q, "news", start-1)
	}
	if start < maxStart {
		v.NextHref = withQuery(q, "news", start+1)
	}
	return v
}

func buildDirector(d *cms.DirectorWord, lang string) *DirectorView {
	if d == nil || strings.TrimSpace(d.Word) == "" {
		return nil
	}
	v := &DirectorView{Word: richtext.HTML(d.Word)}
	if m := d.Director; m != nil {
		v.Name = m.FullName()
		v.Initials = m.Initials()
		if m.Slug != "" {
			v.Href = fmt.Sprintf("/%s/members/%s", lang, m.Slug)
		}
		if m.Image != nil {
			v.Image = cmsClient.MediaURL(m.Image.Best("small", "thumbnail"))
		}
	}
	return v
}

func buildStats(s cms.Statistics, lang string) []StatView {
	return []StatView{
		{LabelKey: "home.stats.members", Value: format.Number(s.Members, lang)},
		{LabelKey: "home.stats.publications", Value: format.Number(s.Publications, lang)},
		{LabelKey: "home.stats.projects", Value: format.Number(s.Projects, lang)},
		{LabelKey: "home.stats.teams", Value: format.Number(s.Teams, lang)},
	}
}

func buildVideos(ch *cms.YouTubeChannel, lang string, q url.Values) *VideosView {
	if ch == nil {
		return nil
	}
	v := &VideosView{ChannelURL: ch.ChannelURL}
	for _, vid := range ch.Videos {
		id := format.YouTubeID(vid.URL)
		if id == "" {
			continue
		}
		idx := len(v.Items)
		v.Items = append(v.Items, VideoItem{
			Index:    idx,
			ID:       id,
			Href:     withQuery(q, "video", idx),
			Thumb:    "https://img.youtube.com/vi/" + id + "/hqdefault.jpg",
			EmbedURL: "https://www.youtube.com/embed/" + id,
		})
	}
	if len(v.Items) == 0 {
		return nil
	}
	sel := queryIntValue(q, "video", 0)
	if sel < 0 || sel >= len(v.Items) {
		sel = 0
	}
	v.Items[sel].Active = true
	v.Selected = v.Items[sel]
	return v
}

// buildPartners positions the slider with item ?pos at the left slot, applies
// ?move and returns the settled window. move is "next", "prev", "step:N" for N
// signed queued steps, or "goto:i".
func buildPartners(partners []cms.Partner, lang string, q url.Values) PartnersView {
	v := PartnersView{Lang: lang}
	pos, move := queryIntValue(q, "pos", 0), strings.TrimSpace(q.Get("move"))
	items := carousel.Normalize(partners)
	n := len(items)
	if n == 0 {
		return v
	}

	e := carousel.NewEngine(n, carousel.WithViewport(carouselViewport))
	e.SetIndex(pos)
	switch {
	case move == "next":
		e.Next()
	case move == "prev":
		e.Prev()
	case strings.HasPrefix(move, "step:"):
		if steps, err := strconv.Atoi(strings.TrimPrefix(move, "step:")); err == nil {
			// whole turns land on the same item
			for i := 0; i < absInt(steps%n); i++ {
				if steps > 0 {
					e.Next()
				} else {
					e.Prev()
				}
			}
		}
	case strings.HasPrefix(move, "goto:"):
		if idx, err := strconv.Atoi(strings.TrimPrefix(move, "goto:")); err == nil {
			e.GoTo(idx)
		}
	}
	e.Settle()

	center := e.CenterIndex()
	v.Pos = mod(center-1, n)
	for _, i := range e.Window() {
		p := items[i]
		s := PartnerSlide{Link: p.Link, Center: i == center}
		if p.Logo != nil {
			s.Company = p.Logo.Company
			if p.Logo.Image != nil {
				s.Image = cmsClient.MediaURL(p.Logo.Image.Best("small", "thumbnail"))
			}
		}
		v.Slides = append(v.Slides, s)
	}
	v.Endpoint = "/" + lang + "/partners/carousel"
	v.PrevHref = partnersHref(lang, q, v.Pos, "prev")
	v.NextHref = partnersHref(lang, q, v.Pos, "next")
	for i := 0; i < n; i++ {
		v.Dots = append(v.Dots, PartnerDot{
			Index: i,
			// goto centres item i, where the dots of the old slider put it at the left slot
			Href:   partnersHref(lang, q, v.Pos, "goto:"+strconv.Itoa(i)),
			Move:   "goto:" + strconv.Itoa(i),
			Active: i == center,
		})
	}
	return v
}

// partnersHref is the no-script link to the home page with the slider moved.
// Other home parameters in q are kept.
func partnersHref(lang string, q url.Values, pos int, move string) string {
	next := cloneQuery(q)
	next.Set("pos", strconv.Itoa(pos))
	next.Set("move", move)
	return "/" + lang + "/?" + next.Encode() + "#partners-carousel"
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}

func queryIntValue(q url.Values, key string, def int) int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil {
		return def
	}
	return n
}

// withQuery returns "?..." with key set to v, keeping the other parameters.
func withQuery(q url.Values, key string, v int) string {
	next := cloneQuery(q)
	next.Set(key, fmt.Sprint(v))
	return "?" + next.Encode()
}

func cloneQuery(q url.Values) url.Values {
	next := url.Values{}
	for k, vals := range q {
		next[k] = append([]string(nil), vals...)
	}
	return next
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
