package routes

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/plumeworks/plume-be/app"
	"github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/middleware"
	"github.com/plumeworks/plume-be/model"
	"github.com/plumeworks/plume-be/util"
)

type userRoutes struct {
	db db.Database
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier) {
	routes := userRoutes{db: database}
	users := group.Group("/users")
	users.GET("/:handle/posts", util.HandlerWrapper(routes.getAuthorFeed, &util.HandlerOpts{}))
	users.PUT("",
		middleware.GenAuth(database, verifier, &middleware.AuthConfig{ProfileNotRequired: true}),
		util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
}

type createUserReq struct {
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	req.Handle = strings.TrimSpace(req.Handle)
	if req.Handle == "" {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "handle must not be empty",
		}
	}
	if err := ur.db.CreateUser(c, &model.User{
		Id:          middleware.MustGetToken(c).UID,
		Handle:      req.Handle,
		DisplayName: req.DisplayName,
	}); err != nil {
		if db.IsDupKeyErr(err) {
			return nil, &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "handle already taken",
			}
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}

func (ur *userRoutes) getAuthorFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	handle := c.Param("handle")
	page, err := app.ListPosts(c, ur.db, app.AuthorScope(handle), app.ParsePageToken(c.Query("page")))
	if err != nil {
		return nil, mapAppErr(c, err, nil, "")
	}
	author, err := ur.db.GetUserByHandle(c, handle)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"author": author,
		"page":   page,
	}, nil
}
