package mysql

import (
	"context"
	"database/sql"
	"time"

	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/model"
	"github.com/plumeworks/plume-be/util"
	"github.com/upper/db/v4"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("author_id", "text", "group_id", "image_blob_name").
		Values(req.AuthorId, req.Text, nullableId(req.GroupId), req.ImageBlobName).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedPost struct {
	Id               int64          `db:"id"`
	Text             string         `db:"text"`
	ImageBlobName    sql.NullString `db:"image_blob_name"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	AuthorId         string         `db:"author_id"`
	AuthorHandle     string         `db:"handle"`
	AuthorName       string         `db:"display_name"`
	GroupId          sql.NullInt64  `db:"group_id"`
	GroupSlug        sql.NullString `db:"group_slug"`
	GroupTitle       sql.NullString `db:"group_title"`
	GroupDescription sql.NullString `db:"group_description"`
	GroupCreatedAt   sql.NullTime   `db:"group_created_at"`
}

var postColumns = []interface{}{
	"p.id",
	"p.text",
	"p.image_blob_name",
	"p.created_at",
	"p.updated_at",
	"p.author_id",
	"person.handle",
	"person.display_name",
	"p.group_id",
	"g.slug as group_slug",
	"g.title as group_title",
	"g.description as group_description",
	"g.created_at as group_created_at",
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("content_group AS g").On("p.group_id = g.id").
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *appDb.PostsQuery, limit, offset int) ([]*model.Post, error) {
	var flattenedPosts []flattenedPost
	stmt := pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("content_group AS g").On("p.group_id = g.id")
	stmt = scopePosts(stmt, query)
	if err := stmt.
		OrderBy("p.created_at DESC", "p.id DESC").
		Limit(limit).
		Offset(offset).
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i, flattened := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattened)
	}
	return posts, nil
}

func (pdb *PostDB) CountPosts(ctx context.Context, query *appDb.PostsQuery) (int, error) {
	var row struct {
		Total int `db:"total"`
	}
	stmt := pdb.sess.SQL().
		Select(db.Raw("COUNT(*) AS total")).
		From("post AS p")
	stmt = scopePosts(stmt, query)
	if err := stmt.IteratorContext(ctx).One(&row); err != nil {
		return 0, err
	}
	return row.Total, nil
}

func scopePosts(stmt db.Selector, query *appDb.PostsQuery) db.Selector {
	cond := db.Cond{}
	if query.GroupId != 0 {
		cond["p.group_id"] = query.GroupId
	}
	if query.AuthorId != "" {
		cond["p.author_id"] = query.AuthorId
	}
	if len(cond) == 0 {
		return stmt
	}
	return stmt.Where(cond)
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set("text", req.Text, "group_id", nullableId(req.GroupId), "image_blob_name", req.ImageBlobName).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	return pdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			DeleteFrom("comment").
			Where("post_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("post").
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, &sql.TxOptions{})
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	var group *model.Group
	if post.GroupId.Valid {
		group = &model.Group{
			Id:          post.GroupId.Int64,
			Slug:        post.GroupSlug.String,
			Title:       post.GroupTitle.String,
			Description: post.GroupDescription.String,
			CreatedAt:   post.GroupCreatedAt.Time,
		}
	}
	return &model.Post{
		Id:   post.Id,
		Text: post.Text,
		Author: &model.User{
			Id:          post.AuthorId,
			Handle:      post.AuthorHandle,
			DisplayName: post.AuthorName,
			Avatar:      util.Avatar(post.AuthorId),
		},
		Group:         group,
		ImageBlobName: post.ImageBlobName.String,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

func nullableId(id int64) interface{} {
	if id == 0 {
		return nil
	}
	return id
}
