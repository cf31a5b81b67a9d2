package app

import (
	"strconv"

	"github.com/plumeworks/plume-be/model"
)

// Page is one window of a feed listing. Pages are numbered from 1; page 1
// holds the most recent posts.
type Page struct {
	Items      []*model.Post `json:"items"`
	Number     int           `json:"number"`
	NumPages   int           `json:"numPages"`
	TotalCount int           `json:"totalCount"`
	HasNext    bool          `json:"hasNext"`
	HasPrev    bool          `json:"hasPrev"`
}

// ParsePageToken maps a raw page query value to a page number. Missing,
// non-numeric and non-positive tokens all mean page 1.
func ParsePageToken(token string) int {
	number, err := strconv.Atoi(token)
	if err != nil || number < 1 {
		return 1
	}
	return number
}

// numPages is never 0: an empty result set still has one (empty) page.
func numPages(total, pageSize int) int {
	if total == 0 {
		return 1
	}
	return (total + pageSize - 1) / pageSize
}

// clampPage saturates out-of-range page numbers to the nearest valid page
// instead of failing.
func clampPage(requested, pages int) int {
	if requested < 1 {
		return 1
	}
	if requested > pages {
		return pages
	}
	return requested
}
