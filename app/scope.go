package app

import (
	"context"

	appDb "github.com/plumeworks/plume-be/db"
)

// FeedScope selects which posts a listing covers: everything, one group's
// posts, or one author's posts.
type FeedScope struct {
	groupSlug    string
	authorHandle string
}

func GlobalScope() FeedScope {
	return FeedScope{}
}

func GroupScope(slug string) FeedScope {
	return FeedScope{groupSlug: slug}
}

func AuthorScope(handle string) FeedScope {
	return FeedScope{authorHandle: handle}
}

// resolve turns the scope into a store query. Unknown slugs and handles are
// NotFound, distinct from a scope that merely has no posts.
func (s FeedScope) resolve(ctx context.Context, database appDb.Database) (*appDb.PostsQuery, error) {
	query := &appDb.PostsQuery{}
	if s.groupSlug != "" {
		group, err := database.GetGroupBySlug(ctx, s.groupSlug)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, &NotFoundError{Resource: "group", Key: s.groupSlug}
		}
		query.GroupId = group.Id
	}
	if s.authorHandle != "" {
		author, err := database.GetUserByHandle(ctx, s.authorHandle)
		if err != nil {
			return nil, err
		}
		if author == nil {
			return nil, &NotFoundError{Resource: "author", Key: s.authorHandle}
		}
		query.AuthorId = author.Id
	}
	return query, nil
}
