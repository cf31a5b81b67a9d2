package routes

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/plumeworks/plume-be/app"
	"github.com/plumeworks/plume-be/util"
)

// mapAppErr translates core outcomes into transport responses. The two
// denial kinds stay distinct: unauthenticated callers get a login URL that
// carries the original action as `next`, non-owners get redirected to the
// target's read-only view with no error message.
func mapAppErr(c *gin.Context, err error, submitted interface{}, readOnlyView string) *util.HTTPError {
	var notFound *app.NotFoundError
	if errors.As(err, &notFound) {
		return &util.HTTPError{
			Status:  http.StatusNotFound,
			Message: notFound.Error(),
		}
	}

	var validation *app.ValidationError
	if errors.As(err, &validation) {
		data := gin.H{"field": validation.Field}
		if submitted != nil {
			data["submitted"] = submitted
		}
		return &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: validation.Error(),
			Data:    data,
		}
	}

	var denied *app.DeniedError
	if errors.As(err, &denied) {
		if denied.Kind == app.DenialNotOwner {
			if readOnlyView != "" {
				return &util.HTTPError{
					Status:     http.StatusSeeOther,
					RedirectTo: readOnlyView,
				}
			}
			return &util.HTTPError{
				Status:  http.StatusForbidden,
				Message: "not the author",
			}
		}
		return &util.HTTPError{
			Status:  http.StatusUnauthorized,
			Message: "authentication required",
			Data: gin.H{
				"loginUrl": loginURLFor(c),
			},
		}
	}

	log.Println("database error occurred", err)
	return util.BuildDbHTTPErr(err)
}

func loginURLFor(c *gin.Context) string {
	return fmt.Sprintf("/login?next=%v", url.QueryEscape(c.Request.URL.RequestURI()))
}

func postDetailPath(postId int64) string {
	return fmt.Sprintf("/posts/%v", postId)
}
