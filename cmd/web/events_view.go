package main

import (
	"html/template"
	"sort"
	"strings"
	"time"

	"esselab.org/esse-web/internal/cms"
	"esselab.org/esse-web/internal/format"
	"esselab.org/esse-web/internal/richtext"
)

// eventExcerptLen is the length of the text preview on event cards.
const eventExcerptLen = 150

// EventCard is one event in the listing.
type EventCard struct {
	Title    string
	Href     string
	Date     string
	Time     string
	Location string
	Excerpt  string
	Upcoming bool
}

// EventsIndexView splits events around the current day.
type EventsIndexView struct {
	Upcoming []EventCard
	Past     []EventCard
	Empty    bool
}

// EventView is the event detail payload.
type EventView struct {
	Title       string
	Date        string
	Time        string
	Location    string
	Address     string
	ExternalURL string
	Content     template.HTML
	BackHref    string
}

type datedEvent struct {
	ev cms.Event
	at time.Time
	ok bool
}

// splitEvents returns events dated today or later in ascending order and the
// rest in descending order. Undated events are listed last among past events.
func splitEvents(events []cms.Event, now time.Time) (upcoming, past []cms.Event) {
	now = now.UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	var up, down []datedEvent
	for _, ev := range events {
		at, ok := format.ParseDate(ev.Date)
		d := datedEvent{ev: ev, at: at, ok: ok}
		if d.ok && !at.Before(today) {
			up = append(up, d)
		} else {
			down = append(down, d)
		}
	}
	sort.SliceStable(up, func(i, j int) bool { return up[i].at.Before(up[j].at) })
	sort.SliceStable(down, func(i, j int) bool {
		if down[i].ok != down[j].ok {
			return down[i].ok
		}
		return down[i].at.After(down[j].at)
	})
	for _, d := range up {
		upcoming = append(upcoming, d.ev)
	}
	for _, d := range down {
		past = append(past, d.ev)
	}
	return upcoming, past
}

// eventTime trims the seconds from "HH:MM:SS.mmm" times.
func eventTime(t string) string {
	t = strings.TrimSpace(t)
	if len(t) >= 5 && t[2] == ':' {
		return t[:5]
	}
	return t
}

func eventCard(ev cms.Event, lang string, upcoming bool) EventCard {
	c := EventCard{
		Title:    ev.Title,
		Href:     "/" + lang + "/events/" + ev.Slug,
		Date:     format.Date(ev.Date, lang),
		Time:     eventTime(ev.Time),
		Excerpt:  richtext.Excerpt(ev.Content, eventExcerptLen),
		Upcoming: upcoming,
	}
	if ev.Localisation != nil {
		c.Location = ev.Localisation.Name
	}
	return c
}

func buildEventsIndex(events []cms.Event, lang string, now time.Time) EventsIndexView {
	upcoming, past := splitEvents(events, now)
	v := EventsIndexView{Empty: len(events) == 0}
	for _, ev := range upcoming {
		v.Upcoming = append(v.Upcoming, eventCard(ev, lang, true))
	}
	for _, ev := range past {
		v.Past = append(v.Past, eventCard(ev, lang, false))
	}
	return v
}

func buildEvent(ev *cms.Event, lang string) EventView {
	v := EventView{
		Title:       ev.Title,
		Date:        format.LongDate(ev.Date, lang),
		Time:        eventTime(ev.Time),
		ExternalURL: strings.TrimSpace(ev.URL),
		Content:     richtext.HTML(ev.Content),
		BackHref:    "/" + lang + "/events",
	}
	if ev.Localisation != nil {
		v.Location = ev.Localisation.Name
		v.Address = ev.Localisation.Address
	}
	return v
}
