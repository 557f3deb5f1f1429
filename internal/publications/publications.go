// Package publications orders publication records by date, groups them under
// year headings and formats one citation line per record.
package publications

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"esselab.org/esse-web/internal/cms"
)

var (
	yearOnly  = regexp.MustCompile(`^\d{4}$`)
	yearMonth = regexp.MustCompile(`^\d{4}-\d{2}$`)
	yearLead  = regexp.MustCompile(`^\d{4}-`)

	monthNames = [...]string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}

	dateLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"2006/01/02",
		"January 2, 2006",
		"Jan 2, 2006",
		"2 January 2006",
	}
)

func parseDate(v string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// SortKey maps a publisher date to its position in time. Year-only dates sort
// as January 1st and year-month dates as the first of the month. The boolean is
// false for empty or unparseable dates.
func SortKey(date string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	switch {
	case date == "":
		return time.Time{}, false
	case yearOnly.MatchString(date):
		t, err := time.Parse("2006", date)
		return t, err == nil
	case yearMonth.MatchString(date):
		t, err := time.Parse("2006-01", date)
		return t, err == nil
	}
	return parseDate(date)
}

func sortValue(date string) float64 {
	t, ok := SortKey(date)
	if !ok {
		return math.Inf(-1)
	}
	return float64(t.Unix())
}

// Year returns the four-digit year of a publisher date, or "".
func Year(date string) string {
	date = strings.TrimSpace(date)
	switch {
	case date == "":
		return ""
	case yearOnly.MatchString(date):
		return date
	case yearLead.MatchString(date):
		return date[:4]
	}
	if t, ok := parseDate(date); ok {
		return strconv.Itoa(t.Year())
	}
	return ""
}

// FormatDate renders a publisher date for a citation: "2020", "may 2020" or
// "march 10, 2019". Unparseable dates render as "".
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	switch {
	case date == "":
		return ""
	case yearOnly.MatchString(date):
		return date
	case yearMonth.MatchString(date):
		month, _ := strconv.Atoi(date[5:])
		idx := min(max(month-1, 0), 11)
		return monthNames[idx] + " " + date[:4]
	}
	t, ok := parseDate(date)
	if !ok {
		return ""
	}
	return monthNames[t.Month()-1] + " " + strconv.Itoa(t.Day()) + ", " + strconv.Itoa(t.Year())
}

// Sort orders publications newest first. Records with equal or unknown dates
// keep their input order; unknown dates go last.
func Sort(pubs []cms.Publication) []cms.Publication {
	type keyed struct {
		pub cms.Publication
		key float64
	}
	items := make([]keyed, len(pubs))
	for i, p := range pubs {
		items[i] = keyed{pub: p, key: sortValue(p.Date())}
	}
	sort.SliceStable(items, func(a, b int) bool {
		return items[a].key > items[b].key
	})
	out := make([]cms.Publication, len(items))
	for i, it := range items {
		out[i] = it.pub
	}
	return out
}

// Types lists the distinct publication type names in collation order.
func Types(pubs []cms.Publication, locale string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, p := range pubs {
		name := p.TypeName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	tag := language.French
	if locale == "en" {
		tag = language.English
	}
	collate.New(tag).SortStrings(out)
	return out
}

// Options controls Build.
type Options struct {
	// Locale prefixes member links.
	Locale string
	// MediaBase is joined with root-relative attachment paths.
	MediaBase string
	// Type keeps only publications of this type name. Empty keeps all.
	Type string
}

// List is a formatted, grouped publication list.
type List struct {
	Types    []string
	Selected string
	Lines    []Line
	// Empty is set when there are no publications at all, before filtering.
	Empty bool
}

// Build sorts pubs, applies the type filter without re-sorting and formats one
// line per record. A year heading is attached to a line only when its year
// differs from the previous heading emitted.
func Build(pubs []cms.Publication, opts Options) List {
	list := List{
		Types:    Types(pubs, opts.Locale),
		Selected: strings.TrimSpace(opts.Type),
		Empty:    len(pubs) == 0,
	}
	if list.Selected != "" && !contains(list.Types, list.Selected) {
		list.Selected = ""
	}

	sorted := Sort(pubs)
	lastYear := ""
	for _, p := range sorted {
		if list.Selected != "" && p.TypeName() != list.Selected {
			continue
		}
		line := FormatLine(p, opts.Locale, opts.MediaBase)
		if y := Year(p.Date()); y != "" && y != lastYear {
			line.YearHeading = y
			lastYear = y
		}
		list.Lines = append(list.Lines, line)
	}
	return list
}

// Headings returns the year headings of the list in order.
func (l List) Headings() []string {
	var out []string
	for _, line := range l.Lines {
		if line.YearHeading != "" {
			out = append(out, line.YearHeading)
		}
	}
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
