package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/plumeworks/plume-be/app"
	"github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/middleware"
	"github.com/plumeworks/plume-be/services"
	"github.com/plumeworks/plume-be/util"
)

type postRoutes struct {
	db     db.Database
	bucket *services.StorageBucket
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier, bucket *services.StorageBucket) {
	routes := postRoutes{db: database, bucket: bucket}
	// Lenient auth: the principal may be absent and the app layer decides
	// which denial the caller gets.
	posts := group.Group("/posts", middleware.GenAuth(database, verifier, &middleware.AuthConfig{
		SessionNotRequired: true,
		ProfileNotRequired: true,
	}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.PUT("", util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	posts.POST("/:id", util.HandlerWrapper(routes.editPost, &util.HandlerOpts{}))
	posts.DELETE("/:id", util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	posts.PUT("/:id/comments", util.HandlerWrapper(routes.createComment, &util.HandlerOpts{}))
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	detail, err := app.GetPostDetail(c, pr.db, id)
	if err != nil {
		return nil, mapAppErr(c, err, nil, "")
	}
	return detail, nil
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req app.PostInput
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := pr.checkImageBlob(c, &req); httpErr != nil {
		return nil, httpErr
	}
	post, err := app.CreatePost(c, pr.db, middleware.GetUserMaybe(c), &req)
	if err != nil {
		return nil, mapAppErr(c, err, &req, "")
	}
	return post, nil
}

func (pr *postRoutes) editPost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req app.PostInput
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := pr.checkImageBlob(c, &req); httpErr != nil {
		return nil, httpErr
	}
	post, err := app.EditPost(c, pr.db, middleware.GetUserMaybe(c), id, &req)
	if err != nil {
		return nil, mapAppErr(c, err, &req, postDetailPath(id))
	}
	return post, nil
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	if err := app.DeletePost(c, pr.db, middleware.GetUserMaybe(c), id); err != nil {
		return nil, mapAppErr(c, err, nil, postDetailPath(id))
	}
	return nil, nil
}

type createCommentReq struct {
	Text string `json:"text"`
}

func (pr *postRoutes) createComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req createCommentReq
	if err := c.BindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	comment, err := app.CreateComment(c, pr.db, middleware.GetUserMaybe(c), id, req.Text)
	if err != nil {
		return nil, mapAppErr(c, err, &req, "")
	}
	return comment, nil
}

// checkImageBlob rejects references to blobs that were never uploaded. A nil
// bucket (no storage configured) skips the check.
func (pr *postRoutes) checkImageBlob(c *gin.Context, req *app.PostInput) *util.HTTPError {
	if req.ImageBlobName == "" || pr.bucket == nil {
		return nil
	}
	exists, err := pr.bucket.Exists(c, req.ImageBlobName)
	if err != nil {
		return util.BuildDbHTTPErr(err)
	}
	if !exists {
		return mapAppErr(c, &app.ValidationError{Field: "image", Reason: "unknown image reference"}, req, "")
	}
	return nil
}
