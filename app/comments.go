package app

import (
	"context"

	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/model"
)

// CreateComment binds a new comment to an existing post and the commenting
// principal. Comments are immutable once stored.
func CreateComment(ctx context.Context, database appDb.Database, principal *model.User, postId int64, text string) (*model.Comment, error) {
	post, err := loadPost(ctx, database, postId)
	if err != nil {
		return nil, err
	}
	if err := AuthorizeCommentCreation(principal); err != nil {
		return nil, err
	}
	if vErr := ValidateCommentText(text); vErr != nil {
		return nil, vErr
	}

	commentId, err := database.CreateComment(ctx, &appDb.CreateComment{
		PostId:   post.Id,
		AuthorId: principal.Id,
		Text:     NormalizeText(text),
	})
	if err != nil {
		return nil, err
	}
	return database.GetCommentById(ctx, commentId)
}
