// Package memdb provides an in-memory db.Database with the same ordering and
// atomicity contract as the MySQL store. It backs the test suite and local
// development without a database server.
package memdb

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-sql-driver/mysql"
	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/model"
	"github.com/plumeworks/plume-be/util"
)

var (
	ErrUnknownAuthor = errors.New("memdb: unknown author")
	ErrUnknownGroup  = errors.New("memdb: unknown group")
	ErrUnknownPost   = errors.New("memdb: unknown post")
)

type MemDB struct {
	mu        sync.RWMutex
	postPK    int64
	groupPK   int64
	commentPK int64
	posts     map[int64]model.Post
	groups    map[int64]model.Group
	users     map[string]model.User
	comments  map[int64][]model.Comment
	clock     func() time.Time
}

func New() *MemDB {
	return &MemDB{
		posts:    map[int64]model.Post{},
		groups:   map[int64]model.Group{},
		users:    map[string]model.User{},
		comments: map[int64][]model.Comment{},
		clock:    time.Now,
	}
}

// SetClock overrides the timestamp source. Tests use it to create posts with
// identical timestamps and exercise the id tie-break.
func (m *MemDB) SetClock(clock func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clock = clock
}

func (m *MemDB) Close() error {
	return nil
}

func (m *MemDB) CreatePost(ctx context.Context, req *appDb.CreatePost) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	author, ok := m.users[req.AuthorId]
	if !ok {
		return 0, ErrUnknownAuthor
	}
	var group *model.Group
	if req.GroupId != 0 {
		found, ok := m.groups[req.GroupId]
		if !ok {
			return 0, ErrUnknownGroup
		}
		group = &found
	}

	m.postPK++
	now := m.clock()
	m.posts[m.postPK] = model.Post{
		Id:            m.postPK,
		Text:          req.Text,
		Author:        &author,
		Group:         group,
		ImageBlobName: req.ImageBlobName,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return m.postPK, nil
}

func (m *MemDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	return &found, nil
}

func (m *MemDB) GetPosts(ctx context.Context, query *appDb.PostsQuery, limit, offset int) ([]*model.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := m.matchPosts(query)
	if offset >= len(matched) {
		return []*model.Post{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (m *MemDB) CountPosts(ctx context.Context, query *appDb.PostsQuery) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.matchPosts(query)), nil
}

// matchPosts must be called with at least a read lock held.
func (m *MemDB) matchPosts(query *appDb.PostsQuery) []*model.Post {
	matched := make([]*model.Post, 0, len(m.posts))
	for id := range m.posts {
		post := m.posts[id]
		if query.GroupId != 0 && (post.Group == nil || post.Group.Id != query.GroupId) {
			continue
		}
		if query.AuthorId != "" && post.Author.Id != query.AuthorId {
			continue
		}
		matched = append(matched, &post)
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Id > matched[j].Id
	})
	return matched
}

func (m *MemDB) UpdatePost(ctx context.Context, id int64, req *appDb.UpdatePost) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	found, ok := m.posts[id]
	if !ok {
		return ErrUnknownPost
	}
	var group *model.Group
	if req.GroupId != 0 {
		foundGroup, ok := m.groups[req.GroupId]
		if !ok {
			return ErrUnknownGroup
		}
		group = &foundGroup
	}

	// Whole-struct replacement under the lock keeps the update atomic.
	found.Text = req.Text
	found.Group = group
	found.ImageBlobName = req.ImageBlobName
	found.UpdatedAt = m.clock()
	m.posts[id] = found
	return nil
}

func (m *MemDB) DeletePost(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[id]; !ok {
		return ErrUnknownPost
	}
	delete(m.posts, id)
	delete(m.comments, id)
	return nil
}

func (m *MemDB) CreateGroup(ctx context.Context, req *appDb.CreateGroup) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.groupPK++
	m.groups[m.groupPK] = model.Group{
		Id:          m.groupPK,
		Slug:        req.Slug,
		Title:       req.Title,
		Description: req.Description,
		CreatedAt:   m.clock(),
	}
	return m.groupPK, nil
}

func (m *MemDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id := range m.groups {
		if m.groups[id].Slug == slug {
			found := m.groups[id]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MemDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	groups := make([]*model.Group, 0, len(m.groups))
	for id := range m.groups {
		found := m.groups[id]
		groups = append(groups, &found)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})
	return groups, nil
}

func (m *MemDB) DeleteGroup(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[id]; !ok {
		return ErrUnknownGroup
	}
	// Dissociate, never cascade: the group's posts stay.
	for postId := range m.posts {
		post := m.posts[postId]
		if post.Group != nil && post.Group.Id == id {
			post.Group = nil
			m.posts[postId] = post
		}
	}
	delete(m.groups, id)
	return nil
}

func (m *MemDB) CreateUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[user.Id]; ok {
		return dupKeyErr("person.firebase_id", user.Id)
	}
	for id := range m.users {
		if m.users[id].Handle == user.Handle {
			return dupKeyErr("person.handle", user.Handle)
		}
	}

	stored := *user
	stored.Avatar = util.Avatar(stored.Id)
	m.users[stored.Id] = stored
	return nil
}

// dupKeyErr mirrors the driver error the MySQL store surfaces, so
// db.IsDupKeyErr recognizes it too.
func dupKeyErr(key, val string) error {
	return &mysql.MySQLError{
		Number:  1062,
		Message: fmt.Sprintf("Duplicate entry '%v' for key '%v'", val, key),
	}
}

func (m *MemDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	found, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &found, nil
}

func (m *MemDB) GetUserByHandle(ctx context.Context, handle string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for id := range m.users {
		if m.users[id].Handle == handle {
			found := m.users[id]
			return &found, nil
		}
	}
	return nil, nil
}

func (m *MemDB) CreateComment(ctx context.Context, req *appDb.CreateComment) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.posts[req.PostId]; !ok {
		return 0, ErrUnknownPost
	}
	author, ok := m.users[req.AuthorId]
	if !ok {
		return 0, ErrUnknownAuthor
	}

	m.commentPK++
	m.comments[req.PostId] = append(m.comments[req.PostId], model.Comment{
		Id:        m.commentPK,
		PostId:    req.PostId,
		Author:    &author,
		Text:      req.Text,
		CreatedAt: m.clock(),
	})
	return m.commentPK, nil
}

func (m *MemDB) GetCommentById(ctx context.Context, id int64) (*model.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for postId := range m.comments {
		for i := range m.comments[postId] {
			if m.comments[postId][i].Id == id {
				found := m.comments[postId][i]
				return &found, nil
			}
		}
	}
	return nil, nil
}

func (m *MemDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.comments[postId]
	comments := make([]*model.Comment, len(stored))
	for i := range stored {
		found := stored[i]
		comments[i] = &found
	}
	return comments, nil
}
