package cms

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the CMS response wrapper.
type Envelope[T any] struct {
	Data T    `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta carries response metadata.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Pagination describes the page returned for a collection.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// NewPagination builds pagination metadata with PageCount = ceil(total/pageSize).
// An empty collection still has one page.
func NewPagination(page, pageSize, total int) Pagination {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if total < 0 {
		total = 0
	}
	count := (total + pageSize - 1) / pageSize
	if count < 1 {
		count = 1
	}
	return Pagination{Page: page, PageSize: pageSize, PageCount: count, Total: total}
}

// normalize fills a missing page count and clamps nonsense values.
func (p Pagination) normalize(req *PageRequest) Pagination {
	page, size := p.Page, p.PageSize
	if page == 0 && req != nil {
		page = req.Page
	}
	if size == 0 && req != nil {
		size = req.PageSize
	}
	if p.PageCount > 0 && page > 0 && size > 0 {
		return p
	}
	return NewPagination(page, size, p.Total)
}

// spread projects a raw data member onto a single record: arrays yield their
// first element, objects themselves, and null or [] yield nothing.
func spread(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("cms: decode data array: %w", err)
		}
		if len(items) == 0 {
			return nil, nil
		}
		first := bytes.TrimSpace(items[0])
		if bytes.Equal(first, []byte("null")) {
			return nil, nil
		}
		return first, nil
	case '{':
		return trimmed, nil
	default:
		return nil, fmt.Errorf("cms: unexpected data shape %q", string(trimmed[:1]))
	}
}
