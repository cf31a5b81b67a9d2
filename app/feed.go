package app

import (
	"context"

	"github.com/plumeworks/plume-be/config"
	appDb "github.com/plumeworks/plume-be/db"
)

// ListPosts assembles one page of the feed for the given scope. The count and
// the items are read back to back within the same call; across concurrent
// calls no snapshot is promised beyond what the store provides.
func ListPosts(ctx context.Context, database appDb.Database, scope FeedScope, pageNumber int) (*Page, error) {
	query, err := scope.resolve(ctx, database)
	if err != nil {
		return nil, err
	}

	total, err := database.CountPosts(ctx, query)
	if err != nil {
		return nil, err
	}

	pages := numPages(total, config.PageSize)
	number := clampPage(pageNumber, pages)

	items, err := database.GetPosts(ctx, query, config.PageSize, (number-1)*config.PageSize)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:      items,
		Number:     number,
		NumPages:   pages,
		TotalCount: total,
		HasNext:    number < pages,
		HasPrev:    number > 1,
	}, nil
}
