package app

import (
	"context"
	"strconv"

	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/model"
)

// CreatePost validates the input and stores a new post authored by the
// principal. Author and creation timestamp are fixed at this point forever.
func CreatePost(ctx context.Context, database appDb.Database, principal *model.User, in *PostInput) (*model.Post, error) {
	if principal == nil {
		return nil, &DeniedError{Kind: DenialUnauthenticated}
	}
	if vErr := ValidatePostInput(in); vErr != nil {
		return nil, vErr
	}
	groupId, err := resolveGroupId(ctx, database, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	postId, err := database.CreatePost(ctx, &appDb.CreatePost{
		AuthorId:      principal.Id,
		Text:          NormalizeText(in.Text),
		GroupId:       groupId,
		ImageBlobName: in.ImageBlobName,
	})
	if err != nil {
		return nil, err
	}
	return database.GetPostById(ctx, postId)
}

// EditPost applies the input to an existing post after the ownership check.
// A denial mutates nothing; author and CreatedAt are untouched either way.
func EditPost(ctx context.Context, database appDb.Database, principal *model.User, postId int64, in *PostInput) (*model.Post, error) {
	post, err := loadPost(ctx, database, postId)
	if err != nil {
		return nil, err
	}
	if err := AuthorizePostMutation(principal, post); err != nil {
		return nil, err
	}
	if vErr := ValidatePostInput(in); vErr != nil {
		return nil, vErr
	}
	groupId, err := resolveGroupId(ctx, database, in.GroupSlug)
	if err != nil {
		return nil, err
	}

	if err := database.UpdatePost(ctx, postId, &appDb.UpdatePost{
		Text:          NormalizeText(in.Text),
		GroupId:       groupId,
		ImageBlobName: in.ImageBlobName,
	}); err != nil {
		return nil, err
	}
	return database.GetPostById(ctx, postId)
}

// DeletePost removes an owned post; the store cascades to its comments.
func DeletePost(ctx context.Context, database appDb.Database, principal *model.User, postId int64) error {
	post, err := loadPost(ctx, database, postId)
	if err != nil {
		return err
	}
	if err := AuthorizePostMutation(principal, post); err != nil {
		return err
	}
	return database.DeletePost(ctx, postId)
}

// PostDetail is the read-only view of a post with its comments.
type PostDetail struct {
	Post            *model.Post      `json:"post"`
	Comments        []*model.Comment `json:"comments"`
	AuthorPostCount int              `json:"authorPostCount"`
}

func GetPostDetail(ctx context.Context, database appDb.Database, postId int64) (*PostDetail, error) {
	post, err := loadPost(ctx, database, postId)
	if err != nil {
		return nil, err
	}
	comments, err := database.GetCommentsForPost(ctx, postId)
	if err != nil {
		return nil, err
	}
	authorPostCount, err := database.CountPosts(ctx, &appDb.PostsQuery{AuthorId: post.Author.Id})
	if err != nil {
		return nil, err
	}
	return &PostDetail{
		Post:            post,
		Comments:        comments,
		AuthorPostCount: authorPostCount,
	}, nil
}

func loadPost(ctx context.Context, database appDb.Database, postId int64) (*model.Post, error) {
	post, err := database.GetPostById(ctx, postId)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, &NotFoundError{Resource: "post", Key: formatId(postId)}
	}
	return post, nil
}

func formatId(id int64) string {
	return strconv.FormatInt(id, 10)
}

// resolveGroupId maps an optional slug to a group id. An unknown slug is a
// field-level validation error, never silently dropped.
func resolveGroupId(ctx context.Context, database appDb.Database, slug string) (int64, error) {
	if slug == "" {
		return 0, nil
	}
	group, err := database.GetGroupBySlug(ctx, slug)
	if err != nil {
		return 0, err
	}
	if group == nil {
		return 0, &ValidationError{Field: "group", Reason: "unknown group"}
	}
	return group.Id, nil
}
