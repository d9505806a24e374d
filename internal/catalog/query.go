// Package catalog implements the directory's search, filter, sort, and
// pagination over the full published library set. Everything here is a pure
// computation over rows already fetched from the database; callers re-invoke
// Query on every criteria change.
package catalog

import (
	"errors"
	"sort"
	"strings"

	"uilibs/internal/models"
)

// Sort identifies a supported result ordering.
type Sort string

const (
	SortNewest Sort = "newest"
	SortOldest Sort = "oldest"
	SortName   Sort = "name"
	SortAuthor Sort = "author"
)

// DefaultPageSize is the directory's page length.
const DefaultPageSize = 6

// ErrInvalidSort is returned for an unrecognized, non-empty sort value.
// An empty Sort means the caller made no choice and defaults to newest.
var ErrInvalidSort = errors.New("unrecognized sort option")

// Criteria describes one directory query.
type Criteria struct {
	// Search is matched case-insensitively as whitespace-split terms. A
	// library matches when every term is a substring of its name,
	// description, author, or one of its tags.
	Search string

	// Paid/free filter. A library passes when (is_paid && ShowPaid) or
	// (!is_paid && ShowFree); both false yields an empty result set.
	ShowPaid bool
	ShowFree bool

	// MobileFriendly restricts to mobile-friendly libraries when true.
	MobileFriendly bool

	// OnlyFavorites restricts to the Favorites id set when true.
	OnlyFavorites bool
	Favorites     []string

	// Tags must all be present on a library for it to match.
	Tags []string

	Sort     Sort
	Page     int // 1-based
	PageSize int // 0 means DefaultPageSize
}

// Result is the ordered page of matches plus the pre-pagination total.
type Result struct {
	Items      []models.Library
	TotalCount int
}

// TotalPages computes the page count for the given page size.
func (r Result) TotalPages(pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return (r.TotalCount + pageSize - 1) / pageSize
}

// Query filters, sorts, and paginates libraries according to c. It is a pure
// function of its inputs: identical inputs produce identical results, and the
// input slice is never modified.
func Query(libraries []models.Library, c Criteria) (Result, error) {
	less, err := comparator(c.Sort)
	if err != nil {
		return Result{}, err
	}

	terms := strings.Fields(strings.ToLower(c.Search))

	var favorites map[string]bool
	if c.OnlyFavorites {
		favorites = make(map[string]bool, len(c.Favorites))
		for _, id := range c.Favorites {
			favorites[id] = true
		}
	}

	var filtered []models.Library
	for _, lib := range libraries {
		if !matchesSearch(&lib, terms) {
			continue
		}
		if !((lib.IsPaid && c.ShowPaid) || (!lib.IsPaid && c.ShowFree)) {
			continue
		}
		if c.MobileFriendly && !lib.IsMobileFriendly {
			continue
		}
		if c.OnlyFavorites && !favorites[lib.ID.String()] {
			continue
		}
		if !hasAllTags(&lib, c.Tags) {
			continue
		}
		filtered = append(filtered, lib)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return less(&filtered[i], &filtered[j])
	})

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := c.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	total := len(filtered)

	var items []models.Library
	if start < total {
		if end > total {
			end = total
		}
		items = filtered[start:end]
	}

	return Result{Items: items, TotalCount: total}, nil
}

// matchesSearch reports whether every term is a substring of at least one of
// the library's name, description, author, or tags.
func matchesSearch(lib *models.Library, terms []string) bool {
	if len(terms) == 0 {
		return true
	}

	name := strings.ToLower(lib.Name)
	description := strings.ToLower(lib.Description)
	author := strings.ToLower(lib.Author)

	for _, term := range terms {
		if strings.Contains(name, term) ||
			strings.Contains(description, term) ||
			strings.Contains(author, term) {
			continue
		}
		found := false
		for _, tag := range lib.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasAllTags(lib *models.Library, tags []string) bool {
	for _, tag := range tags {
		if !lib.HasTag(tag) {
			return false
		}
	}
	return true
}

func comparator(s Sort) (func(a, b *models.Library) bool, error) {
	switch s {
	case SortNewest, "":
		return func(a, b *models.Library) bool { return a.CreatedAt.After(b.CreatedAt) }, nil
	case SortOldest:
		return func(a, b *models.Library) bool { return a.CreatedAt.Before(b.CreatedAt) }, nil
	case SortName:
		return func(a, b *models.Library) bool { return a.Name < b.Name }, nil
	case SortAuthor:
		return func(a, b *models.Library) bool { return a.Author < b.Author }, nil
	default:
		return nil, ErrInvalidSort
	}
}
