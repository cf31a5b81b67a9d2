package mysql

import (
	"context"
	"time"

	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/model"
	"github.com/plumeworks/plume-be/util"
	"github.com/upper/db/v4"
)

type CommentDB struct {
	sess db.Session
}

func getCommentDB(sess db.Session) *CommentDB {
	return &CommentDB{sess}
}

func (cdb *CommentDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "text").
		Values(req.PostId, req.AuthorId, req.Text).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedComment struct {
	Id           int64     `db:"id"`
	PostId       int64     `db:"post_id"`
	Text         string    `db:"text"`
	CreatedAt    time.Time `db:"created_at"`
	AuthorId     string    `db:"author_id"`
	AuthorHandle string    `db:"handle"`
	AuthorName   string    `db:"display_name"`
}

func (cdb *CommentDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	var comment flattenedComment
	if err := cdb.sess.SQL().
		Select("c.id", "c.post_id", "c.text", "c.created_at", "c.author_id", "person.handle", "person.display_name").
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.id = ?", id).
		IteratorContext(ctx).
		One(&comment); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildCommentFromFlattened(&comment), nil
}

func (cdb *CommentDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := cdb.sess.SQL().
		Select("c.id", "c.post_id", "c.text", "c.created_at", "c.author_id", "person.handle", "person.display_name").
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created_at", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	comments := make([]*model.Comment, len(flattenedComments))
	for i := range flattenedComments {
		comments[i] = buildCommentFromFlattened(&flattenedComments[i])
	}
	return comments, nil
}

func buildCommentFromFlattened(comment *flattenedComment) *model.Comment {
	return &model.Comment{
		Id:     comment.Id,
		PostId: comment.PostId,
		Author: &model.User{
			Id:          comment.AuthorId,
			Handle:      comment.AuthorHandle,
			DisplayName: comment.AuthorName,
			Avatar:      util.Avatar(comment.AuthorId),
		},
		Text:      comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}
