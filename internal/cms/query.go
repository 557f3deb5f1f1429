package cms

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Operator is a filter comparison understood by the CMS REST API.
type Operator string

const (
	OpEq        Operator = "$eq"
	OpNe        Operator = "$ne"
	OpLt        Operator = "$lt"
	OpLte       Operator = "$lte"
	OpGt        Operator = "$gt"
	OpGte       Operator = "$gte"
	OpIn        Operator = "$in"
	OpContains  Operator = "$contains"
	OpContainsI Operator = "$containsi"
	OpNull      Operator = "$null"
	OpNotNull   Operator = "$notNull"
)

var (
	// ErrInvalidField is returned for field names outside [A-Za-z0-9_.-].
	ErrInvalidField = errors.New("cms: invalid field name")
	// ErrInvalidOperator is returned for unknown filter operators.
	ErrInvalidOperator = errors.New("cms: invalid filter operator")
)

var knownOperators = map[Operator]struct{}{
	OpEq: {}, OpNe: {}, OpLt: {}, OpLte: {}, OpGt: {}, OpGte: {},
	OpIn: {}, OpContains: {}, OpContainsI: {}, OpNull: {}, OpNotNull: {},
}

// Filter narrows a collection. Dotted fields target relations.
type Filter struct {
	Field  string
	Op     Operator
	Values []string
}

// Eq is shorthand for an equality filter.
func Eq(field, value string) Filter {
	return Filter{Field: field, Op: OpEq, Values: []string{value}}
}

// In matches any of values.
func In(field string, values ...string) Filter {
	return Filter{Field: field, Op: OpIn, Values: values}
}

// Populate describes which relations to expand. The zero value populates nothing.
type Populate struct {
	all     bool
	entries []populateEntry
}

type populateEntry struct {
	name   string
	flag   bool
	nested Populate
}

// PopulateAll expands every first-level relation.
func PopulateAll() Populate {
	return Populate{all: true}
}

// With expands relation name, applying nested to it.
func (p Populate) With(name string, nested Populate) Populate {
	out := Populate{all: p.all, entries: append(append([]populateEntry(nil), p.entries...), populateEntry{name: name, nested: nested})}
	return out
}

// Flag expands relation name without going deeper (encoded as true).
func (p Populate) Flag(name string) Populate {
	out := Populate{all: p.all, entries: append(append([]populateEntry(nil), p.entries...), populateEntry{name: name, flag: true})}
	return out
}

// IsZero reports whether nothing is populated.
func (p Populate) IsZero() bool {
	return !p.all && len(p.entries) == 0
}

// PageRequest selects a page of a collection.
type PageRequest struct {
	Page     int
	PageSize int
}

// Query carries the options accepted by the CMS REST API.
type Query struct {
	Filters    []Filter
	Populate   Populate
	Fields     []string
	Locale     string
	Sort       []string
	Pagination *PageRequest
}

// Encode renders the query in bracket notation with keys left unescaped.
// Output order is stable: filters, populate, fields, locale, sort, pagination.
func (q Query) Encode() (string, error) {
	var b queryBuilder

	for _, f := range q.Filters {
		if err := f.encode(&b); err != nil {
			return "", err
		}
	}
	if err := q.Populate.encode(&b, "populate"); err != nil {
		return "", err
	}
	for i, field := range q.Fields {
		if !isAllowedFieldName(field) {
			return "", fmt.Errorf("%w: %q", ErrInvalidField, field)
		}
		b.add(fmt.Sprintf("fields[%d]", i), field)
	}
	if loc := strings.TrimSpace(q.Locale); loc != "" {
		b.add("locale", loc)
	}
	for i, s := range q.Sort {
		field, dir, _ := strings.Cut(s, ":")
		if !isAllowedFieldName(field) {
			return "", fmt.Errorf("%w: %q", ErrInvalidField, field)
		}
		switch strings.ToLower(dir) {
		case "", "asc", "desc":
		default:
			return "", fmt.Errorf("cms: invalid sort direction %q", dir)
		}
		b.add(fmt.Sprintf("sort[%d]", i), s)
	}
	if p := q.Pagination; p != nil {
		if p.Page > 0 {
			b.add("pagination[page]", strconv.Itoa(p.Page))
		}
		if p.PageSize > 0 {
			b.add("pagination[pageSize]", strconv.Itoa(p.PageSize))
		}
	}
	return b.String(), nil
}

func (f Filter) encode(b *queryBuilder) error {
	if !isAllowedFieldName(f.Field) {
		return fmt.Errorf("%w: %q", ErrInvalidField, f.Field)
	}
	if _, ok := knownOperators[f.Op]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidOperator, f.Op)
	}
	key := "filters"
	for _, part := range strings.Split(f.Field, ".") {
		key += "[" + part + "]"
	}
	key += "[" + string(f.Op) + "]"

	switch {
	case f.Op == OpIn:
		for i, v := range f.Values {
			b.add(fmt.Sprintf("%s[%d]", key, i), v)
		}
	case f.Op == OpNull || f.Op == OpNotNull:
		b.add(key, "true")
	case len(f.Values) > 0:
		b.add(key, f.Values[0])
	default:
		b.add(key, "")
	}
	return nil
}

func (p Populate) encode(b *queryBuilder, prefix string) error {
	if p.all {
		b.add(prefix, "*")
		return nil
	}
	for _, e := range p.entries {
		if !isAllowedFieldName(e.name) {
			return fmt.Errorf("%w: %q", ErrInvalidField, e.name)
		}
		key := prefix + "[" + e.name + "]"
		if e.flag || e.nested.IsZero() {
			b.add(key, "true")
			continue
		}
		if err := e.nested.encode(b, key+"[populate]"); err != nil {
			return err
		}
	}
	return nil
}

type queryBuilder struct {
	parts []string
}

func (b *queryBuilder) add(key, value string) {
	b.parts = append(b.parts, key+"="+escapeValue(value))
}

func (b *queryBuilder) String() string {
	return strings.Join(b.parts, "&")
}

func escapeValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

func isAllowedFieldName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
		default:
			return false
		}
	}
	return true
}
