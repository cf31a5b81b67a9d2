package app

import (
	"context"
	"testing"
	"time"

	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/db/memdb"
	"github.com/plumeworks/plume-be/model"
	"github.com/stretchr/testify/require"
)

var postsQueryAll = appDb.PostsQuery{}

// newTestDB returns a store whose clock advances one second per write, so
// listings have a strict reverse-chronological order.
func newTestDB(t *testing.T) *memdb.MemDB {
	t.Helper()
	store := memdb.New()
	current := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		current = current.Add(time.Second)
		return current
	})
	return store
}

func seedUser(t *testing.T, store *memdb.MemDB, id, handle string) *model.User {
	t.Helper()
	user := &model.User{Id: id, Handle: handle, DisplayName: handle}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func seedGroup(t *testing.T, store *memdb.MemDB, slug string) int64 {
	t.Helper()
	id, err := store.CreateGroup(context.Background(), &appDb.CreateGroup{
		Slug:        slug,
		Title:       slug,
		Description: "about " + slug,
	})
	require.NoError(t, err)
	return id
}

func seedPost(t *testing.T, store *memdb.MemDB, authorId string, groupId int64, text string) int64 {
	t.Helper()
	id, err := store.CreatePost(context.Background(), &appDb.CreatePost{
		AuthorId: authorId,
		Text:     text,
		GroupId:  groupId,
	})
	require.NoError(t, err)
	return id
}

func seedPosts(t *testing.T, store *memdb.MemDB, authorId string, groupId int64, count int) []int64 {
	t.Helper()
	ids := make([]int64, count)
	for i := range ids {
		ids[i] = seedPost(t, store, authorId, groupId, "post")
	}
	return ids
}
