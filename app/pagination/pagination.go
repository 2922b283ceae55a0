// Package pagination provides the bounded page helper used by every post
// listing. Bad page input never errors: anything non-numeric or below 1
// resolves to the first page, anything past the end resolves to the last.
package pagination

import (
	"strconv"

	"quill/app/models"
)

// PostsPerPage is the fixed page size for all post listings.
const PostsPerPage = 10

// Page is one bounded slice of a post listing plus the metadata needed to
// render next/previous controls.
type Page struct {
	Items      []*models.Post
	Number     int
	NumPages   int
	TotalCount int
}

// NumPages returns the number of pages a listing of count records spans.
// An empty listing still has one (empty) page.
func NumPages(count, perPage int) int {
	if count <= 0 {
		return 1
	}
	return (count + perPage - 1) / perPage
}

// PageNumber resolves a raw page query parameter against a listing of count
// records. Missing, non-numeric or below-range input yields page 1;
// above-range input is clamped to the last page.
func PageNumber(raw string, count, perPage int) int {
	number, err := strconv.Atoi(raw)
	if err != nil || number < 1 {
		return 1
	}
	if last := NumPages(count, perPage); number > last {
		return last
	}
	return number
}

// Offset returns the record offset of the page.
func (p *Page) Offset() int {
	return (p.Number - 1) * PostsPerPage
}

// HasPrevious reports whether a previous page exists.
func (p *Page) HasPrevious() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists.
func (p *Page) HasNext() bool {
	return p.Number < p.NumPages
}

// PreviousPageNumber returns the number of the previous page.
func (p *Page) PreviousPageNumber() int {
	return p.Number - 1
}

// NextPageNumber returns the number of the next page.
func (p *Page) NextPageNumber() int {
	return p.Number + 1
}
