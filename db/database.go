package db

import (
	"context"

	"github.com/plumeworks/plume-be/model"

	_ "github.com/go-sql-driver/mysql"
)

type Database interface {
	PostDatabase
	GroupDatabase
	UserDatabase
	CommentDatabase
	Close() error
}

type CreatePost struct {
	AuthorId      string
	Text          string
	GroupId       int64 // 0 means no group
	ImageBlobName string
}

// UpdatePost carries the mutable fields of a post. Author and creation
// timestamp are not part of an update.
type UpdatePost struct {
	Text          string
	GroupId       int64 // 0 clears the group
	ImageBlobName string
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	Text     string
}

type CreateGroup struct {
	Slug        string
	Title       string
	Description string
}

// PostsQuery scopes a post listing. Zero values mean "no filter".
type PostsQuery struct {
	GroupId  int64
	AuthorId string
}

// PostDatabase reads return posts in reverse-chronological order with id as
// the tie-break, so paging over the same data set is deterministic.
// GetPostById returns (nil, nil) when the post does not exist.
type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsQuery, limit, offset int) ([]*model.Post, error)
	CountPosts(ctx context.Context, query *PostsQuery) (int, error)
	// UpdatePost applies all fields atomically; a concurrent reader sees
	// either the old post or the new one, never a mix.
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	// DeletePost removes the post and cascades to its comments.
	DeletePost(ctx context.Context, id int64) error
}

// GroupDatabase lookups return (nil, nil) for unknown slugs.
type GroupDatabase interface {
	CreateGroup(ctx context.Context, req *CreateGroup) (groupId int64, err error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
	// DeleteGroup dissociates the group's posts, it never deletes them.
	DeleteGroup(ctx context.Context, id int64) error
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByHandle(ctx context.Context, handle string) (*model.User, error)
}

type CommentDatabase interface {
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	GetCommentById(ctx context.Context, id int64) (*model.Comment, error)
	// GetCommentsForPost returns the post's comments oldest first.
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
}
