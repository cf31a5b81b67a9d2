package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	appDb "github.com/plumeworks/plume-be/db"
	"github.com/plumeworks/plume-be/model"
)

const (
	TOKEN_KEY = "authToken"
	USER_KEY  = "user"
)

// TokenVerifier is satisfied by *auth.Client; tests plug in a stub.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type AuthConfig struct {
	// SessionNotRequired lets the request through without a principal; the
	// handler decides what an unauthenticated caller may do.
	SessionNotRequired bool
	// ProfileNotRequired lets a verified token through before the local
	// profile row exists (profile creation itself needs this).
	ProfileNotRequired bool
}

// GenAuth resolves the request's principal from the Authorization header.
// With a strict config it aborts on missing/invalid credentials; with a
// lenient one the principal is simply absent.
func GenAuth(userDB appDb.UserDatabase, verifier TokenVerifier, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader("Authorization")
		if authorizationHeader == "" {
			if config.SessionNotRequired {
				return
			}
			abortUnauthorized(c, "no authorization header")
			return
		}
		if !strings.HasPrefix(authorizationHeader, "Bearer ") || len(authorizationHeader) < 8 {
			abortUnauthorized(c, "incorrectly formatted authorization header")
			return
		}

		token, err := verifier.VerifyIDToken(c, authorizationHeader[7:])
		if err != nil {
			if config.SessionNotRequired {
				return
			}
			abortUnauthorized(c, "invalid token")
			return
		}
		c.Set(TOKEN_KEY, token)

		user, err := userDB.GetUser(c, token.UID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if user == nil {
			if config.ProfileNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
	c.Abort()
}

func MustGetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

// GetUserMaybe returns the principal or nil for an unauthenticated request.
func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

func MustGetUser(c *gin.Context) *model.User {
	user, _ := c.Get(USER_KEY)
	return user.(*model.User)
}
