package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/db/memdb"
	"github.com/plumeworks/plume-be/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVerifier treats the bearer token as the firebase UID.
type stubVerifier struct{}

func (stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if !strings.HasPrefix(idToken, "uid-") {
		return nil, errors.New("invalid token")
	}
	return &auth.Token{UID: idToken}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memdb.MemDB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memdb.New()
	current := time.Date(2022, 3, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time {
		current = current.Add(time.Second)
		return current
	})

	r := gin.New()
	AddHealthCheckRoutes(&r.RouterGroup)
	AddFeedRoutes(&r.RouterGroup, store)
	AddGroupRoutes(&r.RouterGroup, store)
	AddPostRoutes(&r.RouterGroup, store, stubVerifier{}, nil)
	AddUserRoutes(&r.RouterGroup, store, stubVerifier{})
	return r, store
}

func seedUser(t *testing.T, store *memdb.MemDB, id, handle string) {
	t.Helper()
	require.NoError(t, store.CreateUser(context.Background(), &model.User{
		Id:          id,
		Handle:      handle,
		DisplayName: handle,
	}))
}

func doJSON(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		encoded, _ := json.Marshal(body)
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreatePostUnauthenticatedGetsLoginURL(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")

	w := doJSON(r, http.MethodPut, "/posts", "", gin.H{"text": "hello"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	require.Contains(t, body, "loginUrl")
	assert.Contains(t, body["loginUrl"], "/login?next=")
	assert.Contains(t, body["loginUrl"], "%2Fposts")

	total, err := store.CountPosts(context.Background(), &appDb.PostsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestCreatePost(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")

	w := doJSON(r, http.MethodPut, "/posts", "uid-ann", gin.H{"text": "hello world"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "hello world", data["text"])
	author := data["author"].(map[string]interface{})
	assert.Equal(t, "uid-ann", author["id"])
}

func TestEditPostByNonOwnerRedirectsToDetailView(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-owner", "owner")
	seedUser(t, store, "uid-other", "other")
	postId, err := store.CreatePost(context.Background(), &appDb.CreatePost{
		AuthorId: "uid-owner",
		Text:     "original",
	})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/posts/1", "uid-other", gin.H{"text": "hijacked"})

	// redirect to the read-only view, no error message
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/posts/1", w.Header().Get("Location"))

	stored, err := store.GetPostById(context.Background(), postId)
	require.NoError(t, err)
	assert.Equal(t, "original", stored.Text)
}

func TestEditPostValidationEchoesSubmittedValues(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")
	_, err := store.CreateGroup(context.Background(), &appDb.CreateGroup{Slug: "golang", Title: "Go"})
	require.NoError(t, err)
	_, err = store.CreatePost(context.Background(), &appDb.CreatePost{AuthorId: "uid-ann", Text: "original"})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/posts/1", "uid-ann", gin.H{"text": "  ", "groupSlug": "golang"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "text", body["field"])
	submitted := body["submitted"].(map[string]interface{})
	assert.Equal(t, "golang", submitted["groupSlug"])
}

func TestGetPostByIdNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/posts/42", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPostByIdWithComments(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")
	seedUser(t, store, "uid-bob", "bob")
	postId, err := store.CreatePost(context.Background(), &appDb.CreatePost{AuthorId: "uid-ann", Text: "discuss"})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPut, "/posts/1/comments", "uid-bob", gin.H{"text": "hello"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodGet, "/posts/1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	post := data["post"].(map[string]interface{})
	assert.Equal(t, float64(postId), post["id"])
	comments := data["comments"].([]interface{})
	require.Len(t, comments, 1)
	commentAuthor := comments[0].(map[string]interface{})["author"].(map[string]interface{})
	assert.Equal(t, "uid-bob", commentAuthor["id"])
}

func TestCreateCommentUnauthenticated(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")
	postId, err := store.CreatePost(context.Background(), &appDb.CreatePost{AuthorId: "uid-ann", Text: "discuss"})
	require.NoError(t, err)

	w := doJSON(r, http.MethodPut, "/posts/1/comments", "", gin.H{"text": "hello"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	comments, err := store.GetCommentsForPost(context.Background(), postId)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestGlobalFeedTreatsBadPageTokenAsFirstPage(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")
	for i := 0; i < 3; i++ {
		_, err := store.CreatePost(context.Background(), &appDb.CreatePost{AuthorId: "uid-ann", Text: "post"})
		require.NoError(t, err)
	}

	w := doJSON(r, http.MethodGet, "/feed?page=banana", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["number"])
	assert.Equal(t, float64(3), data["totalCount"])
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/groups/nope/posts", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthorFeedForUnknownHandle(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")

	w := doJSON(r, http.MethodGet, "/users/ghost/posts", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// a known handle with zero posts is an empty feed, not an error
	w = doJSON(r, http.MethodGet, "/users/ann/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	page := data["page"].(map[string]interface{})
	assert.Equal(t, float64(0), page["totalCount"])
}

func TestCreateUserProfile(t *testing.T) {
	r, store := newTestRouter(t)

	w := doJSON(r, http.MethodPut, "/users", "uid-new", gin.H{"handle": "newbie", "displayName": "Newbie"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	user, err := store.GetUserByHandle(context.Background(), "newbie")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "uid-new", user.Id)
}

func TestCreateUserProfileDuplicateHandle(t *testing.T) {
	r, store := newTestRouter(t)
	seedUser(t, store, "uid-ann", "ann")

	w := doJSON(r, http.MethodPut, "/users", "uid-new", gin.H{"handle": "ann"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "handle already taken", body["message"])
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
