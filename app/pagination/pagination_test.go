package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNumPages(t *testing.T) {
	tests := []struct {
		count    int
		expected int
	}{
		{0, 1},
		{1, 1},
		{10, 1},
		{11, 2},
		{13, 2},
		{20, 2},
		{21, 3},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.count), func(t *testing.T) {
			assert.Equal(t, tt.expected, NumPages(tt.count, PostsPerPage))
		})
	}
}

func TestPageNumber(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		count    int
		expected int
	}{
		{"missing parameter", "", 13, 1},
		{"non-numeric", "abc", 13, 1},
		{"zero", "0", 13, 1},
		{"negative", "-2", 13, 1},
		{"first page", "1", 13, 1},
		{"last page", "2", 13, 2},
		{"past the end clamps to last", "3", 13, 2},
		{"far past the end clamps to last", "999", 13, 2},
		{"empty listing", "5", 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PageNumber(tt.raw, tt.count, PostsPerPage))
		})
	}
}

func TestPageNavigation(t *testing.T) {
	p := &Page{Number: 2, NumPages: 3, TotalCount: 25}
	assert.True(t, p.HasPrevious())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PreviousPageNumber())
	assert.Equal(t, 3, p.NextPageNumber())
	assert.Equal(t, 10, p.Offset())

	first := &Page{Number: 1, NumPages: 1, TotalCount: 4}
	assert.False(t, first.HasPrevious())
	assert.False(t, first.HasNext())
	assert.Equal(t, 0, first.Offset())
}
