package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/middleware"
	"github.com/plumeworks/plume-be/services"
	"github.com/plumeworks/plume-be/util"
)

type uploadRoutes struct {
	bucket *services.StorageBucket
}

func AddUploadRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier, bucket *services.StorageBucket) {
	routes := uploadRoutes{bucket: bucket}
	uploads := group.Group("/uploads", middleware.GenAuth(database, verifier, &middleware.AuthConfig{}))
	uploads.PUT("", util.HandlerWrapper(routes.uploadImage, &util.HandlerOpts{}))
}

func (ur *uploadRoutes) uploadImage(c *gin.Context) (interface{}, *util.HTTPError) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "missing image file",
		}
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "unreadable image file",
		}
	}
	defer file.Close()

	blobName, err := ur.bucket.Upload(c, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "upload failed",
		}
	}
	return gin.H{
		"blobName": blobName,
	}, nil
}
