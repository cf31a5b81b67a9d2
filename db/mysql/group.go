package mysql

import (
	"context"
	"database/sql"

	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/model"
	"github.com/upper/db/v4"
)

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, req *appDb.CreateGroup) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("content_group").
		Columns("slug", "title", "description").
		Values(req.Slug, req.Title, req.Description).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.SQL().
		Select("*").
		From("content_group").
		Where("slug = ?", slug).
		IteratorContext(ctx).
		One(&group); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

func (gdb *GroupDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	return groups, gdb.sess.SQL().
		Select("*").
		From("content_group").
		OrderBy("title").
		IteratorContext(ctx).
		All(&groups)
}

// DeleteGroup detaches the group's posts before removing the group itself.
func (gdb *GroupDB) DeleteGroup(ctx context.Context, id int64) error {
	return gdb.sess.TxContext(ctx, func(sess db.Session) error {
		if _, err := sess.SQL().
			Update("post").
			Set("group_id", nil).
			Where("group_id = ?", id).
			ExecContext(ctx); err != nil {
			return err
		}
		_, err := sess.SQL().
			DeleteFrom("content_group").
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, &sql.TxOptions{})
}
