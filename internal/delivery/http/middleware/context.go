package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/Tokamp4/task-management-system-fork/internal/models"
)

const (
	claimsCtxKey    = "claims"
	userIDCtxKey    = "user_id"
	sessionIDCtxKey = "session_id"
)

// SetIdentity stores the authenticated caller in the gin context.
func SetIdentity(c *gin.Context, claims *models.AccessClaims, session *models.Session) {
	c.Set(claimsCtxKey, claims)
	c.Set(userIDCtxKey, session.UserID)
	c.Set(sessionIDCtxKey, session.ID)
}

func ClaimsFromContext(c *gin.Context) (*models.AccessClaims, bool) {
	value, exists := c.Get(claimsCtxKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.AccessClaims)
	return claims, ok && claims != nil
}

func UserIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(userIDCtxKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

func SessionIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(sessionIDCtxKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}
