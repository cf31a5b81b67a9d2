package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/plumeworks/plume-be/app"
	"github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/util"
)

type groupRoutes struct {
	db db.Database
}

func AddGroupRoutes(group *gin.RouterGroup, database db.Database) {
	routes := groupRoutes{db: database}
	groups := group.Group("/groups")
	groups.GET("", util.HandlerWrapper(routes.getGroups, &util.HandlerOpts{}))
	groups.GET("/:slug", util.HandlerWrapper(routes.getGroupBySlug, &util.HandlerOpts{}))
	groups.GET("/:slug/posts", util.HandlerWrapper(routes.getGroupFeed, &util.HandlerOpts{}))
}

func (gr *groupRoutes) getGroups(c *gin.Context) (interface{}, *util.HTTPError) {
	groups, err := gr.db.GetGroups(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return groups, nil
}

func (gr *groupRoutes) getGroupBySlug(c *gin.Context) (interface{}, *util.HTTPError) {
	group, err := gr.db.GetGroupBySlug(c, c.Param("slug"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if group == nil {
		return nil, &util.HTTPError{
			Status:  http.StatusNotFound,
			Message: "group not found",
		}
	}
	return group, nil
}

func (gr *groupRoutes) getGroupFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	slug := c.Param("slug")
	page, err := app.ListPosts(c, gr.db, app.GroupScope(slug), app.ParsePageToken(c.Query("page")))
	if err != nil {
		return nil, mapAppErr(c, err, nil, "")
	}
	group, err := gr.db.GetGroupBySlug(c, slug)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{
		"group": group,
		"page":  page,
	}, nil
}
