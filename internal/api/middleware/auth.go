package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/willyyyaj/medical-system/internal/api/errors"
	"github.com/willyyyaj/medical-system/internal/app/auth"
	"github.com/willyyyaj/medical-system/internal/app/model"
	"github.com/willyyyaj/medical-system/internal/app/repository"
)

const currentUserKey = "current_user"

// RequireAuth resolves the Bearer token into the current user and stores it
// on the context. Requests without a valid token are rejected with 401.
func RequireAuth(issuer *auth.TokenIssuer, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c)
			return
		}

		username, err := issuer.ParseToken(token)
		if err != nil {
			unauthorized(c)
			return
		}

		user, err := users.GetUserByUsername(c.Request.Context(), username)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(currentUserKey, *user)
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role does not match.
// It must run after RequireAuth.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			unauthorized(c)
			return
		}
		if user.Role != role {
			apiErr := errors.NewForbiddenError("Operation not permitted for this role")
			apiErr.RequestID = c.GetString(requestIDKey)
			c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *gin.Context) (model.User, bool) {
	v, exists := c.Get(currentUserKey)
	if !exists {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}

func unauthorized(c *gin.Context) {
	apiErr := errors.NewUnauthorizedError("Could not validate credentials")
	apiErr.RequestID = c.GetString(requestIDKey)
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
