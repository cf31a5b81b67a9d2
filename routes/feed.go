package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/plumeworks/plume-be/app"
	"github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/util"
)

type feedRoutes struct {
	db db.Database
}

func AddFeedRoutes(group *gin.RouterGroup, database db.Database) {
	routes := feedRoutes{db: database}
	group.GET("/feed", util.HandlerWrapper(routes.getGlobalFeed, &util.HandlerOpts{}))
}

func (fr *feedRoutes) getGlobalFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	page, err := app.ListPosts(c, fr.db, app.GlobalScope(), app.ParsePageToken(c.Query("page")))
	if err != nil {
		return nil, mapAppErr(c, err, nil, "")
	}
	return page, nil
}
