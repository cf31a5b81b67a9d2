package util

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Status  int
	Message string
	// RedirectTo, when set, makes the response a redirect with no body.
	RedirectTo string
	// Data carries extra failure payload (failing field, login url, ...).
	Data gin.H
}

func (he *HTTPError) Error() string {
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func BuildDbHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "database error",
	}
}

func BuildJSONBindHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("malformed request: %v", err),
	}
}

var MalformedIdHTTPErr = HTTPError{
	Status:  http.StatusBadRequest,
	Message: "id malformed",
}

type Handler func(c *gin.Context) (interface{}, *HTTPError)

type HandlerOpts struct{}

// HandlerWrapper adapts a data-returning handler into a gin handler with the
// standard response envelope.
func HandlerWrapper(handler Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, httpErr := handler(c)
		if httpErr != nil {
			HandleHTTPErrorRes(c, httpErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    data,
		})
	}
}

// HandleHTTPErrorRes writes the response for the HTTP error.
// Break the route after calling this function.
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	if err.RedirectTo != "" {
		c.Redirect(err.Status, err.RedirectTo)
		return
	}
	body := gin.H{
		"success": false,
		"message": err.Message,
	}
	for key, val := range err.Data {
		body[key] = val
	}
	c.JSON(err.Status, body)
}
