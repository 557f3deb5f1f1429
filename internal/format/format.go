// Package format renders dates, numbers and pagination for the site locales.
package format

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	frMonths = [...]string{
		"janvier", "février", "mars", "avril", "mai", "juin",
		"juillet", "août", "septembre", "octobre", "novembre", "décembre",
	}
	frWeekdays = [...]string{"dimanche", "lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi"}

	printers = map[string]*message.Printer{
		"fr": message.NewPrinter(language.French),
		"en": message.NewPrinter(language.AmericanEnglish),
	}

	dateLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
)

// ParseDate reads a CMS date or timestamp. Plain dates are taken as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// FmtDate formats t as a long date: "10 mars 2019" or "March 10, 2019".
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	if lang == "en" {
		return t.Format("January 2, 2006")
	}
	return strconv.Itoa(t.Day()) + " " + frMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// FmtLongDate adds the weekday: "dimanche 10 mars 2019" or "Sunday, March 10, 2019".
func FmtLongDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	if lang == "en" {
		return t.Format("Monday, January 2, 2006")
	}
	return frWeekdays[t.Weekday()] + " " + FmtDate(t, lang)
}

// Date parses s and formats it with FmtDate. Unparseable input is returned as is.
func Date(s, lang string) string {
	t, ok := ParseDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return FmtDate(t, lang)
}

// LongDate parses s and formats it with FmtLongDate.
func LongDate(s, lang string) string {
	t, ok := ParseDate(s)
	if !ok {
		return strings.TrimSpace(s)
	}
	return FmtLongDate(t, lang)
}

// Number groups thousands the way the locale does.
func Number(n int, lang string) string {
	p, ok := printers[lang]
	if !ok {
		p = printers["fr"]
	}
	return p.Sprintf("%d", n)
}

// PageItem is one entry of a pagination bar. Ellipsis entries have Page 0.
type PageItem struct {
	Page     int
	Current  bool
	Ellipsis bool
}

// Pages lays out a pagination bar. Up to five pages are listed in full; longer
// ranges keep the first and last page and the neighbours of current, with
// ellipses in between. A single page yields nil.
func Pages(current, total int) []PageItem {
	if total <= 1 {
		return nil
	}
	current = min(max(current, 1), total)
	var nums []int
	switch {
	case total <= 5:
		for i := 1; i <= total; i++ {
			nums = append(nums, i)
		}
	case current <= 3:
		nums = []int{1, 2, 3, 4, 0, total}
	case current >= total-2:
		nums = []int{1, 0, total - 3, total - 2, total - 1, total}
	default:
		nums = []int{1, 0, current - 1, current, current + 1, 0, total}
	}
	out := make([]PageItem, len(nums))
	for i, n := range nums {
		out[i] = PageItem{Page: n, Current: n == current, Ellipsis: n == 0}
	}
	return out
}

// YouTubeID extracts the video id from youtu.be, watch?v=, /embed/ and /shorts/ URLs.
func YouTubeID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Hostname() == "youtu.be" {
		return strings.Trim(u.Path, "/")
	}
	if v := u.Query().Get("v"); v != "" {
		return v
	}
	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
	for i, p := range parts {
		if (p == "embed" || p == "shorts") && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}
