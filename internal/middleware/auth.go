// Package middleware holds the shared authentication and role gates so
// handlers never re-implement them inline.
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jobdesk/backend/internal/apperrors"
	"github.com/jobdesk/backend/internal/auth"
	"github.com/jobdesk/backend/internal/models"
)

const identityKey = "identity"

// RequireAuth resolves the bearer token to a user record and attaches
// it to the request context. Evaluated before any role or ownership
// check.
func RequireAuth(db *gorm.DB, tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			abort(c, apperrors.Unauthenticated("not authorized, no token"))
			return
		}

		userID, err := tokens.Resolve(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			abort(c, apperrors.Unauthenticated("not authorized, token failed"))
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abort(c, apperrors.Unauthenticated("not authorized, user not found"))
				return
			}
			abort(c, apperrors.Internal("loading identity", err))
			return
		}

		c.Set(identityKey, &user)
		c.Next()
	}
}

// RequireRoles rejects any identity whose role is outside the given
// set. Must run after RequireAuth.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := Identity(c)
		if user == nil {
			abort(c, apperrors.Unauthenticated("not authorized"))
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		abort(c, apperrors.Forbidden("you are not authorized for this action"))
	}
}

// Identity returns the authenticated user attached by RequireAuth, or
// nil on unauthenticated routes.
func Identity(c *gin.Context) *models.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(apperrors.HTTPStatus(err), gin.H{"error": apperrors.PublicMessage(err)})
}
