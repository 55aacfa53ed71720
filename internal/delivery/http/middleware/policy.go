package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
	"github.com/Tokamp4/task-management-system-fork/internal/policy"
	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

// RequirePolicy must run after Authenticator.Handle. It panics if name is
// not in the registry, so a misspelled policy fails at startup.
func RequirePolicy(
	logger zerolog.Logger,
	registry *policy.Registry,
	roles services.RoleService,
	name string,
) gin.HandlerFunc {
	p, err := registry.Get(name)
	if err != nil {
		panic(err)
	}

	return func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		if !ok {
			logger.Error().
				Str("policy", p.Name).
				Msg("no user id found in context")
			httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
			return
		}

		names, err := roles.GetRoleNames(c, userID)
		if err != nil {
			logger.Error().
				Err(err).
				Int64("user_id", userID).
				Msg("failed to resolve roles")
			httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
			return
		}

		if !p.Allows(names) {
			logger.Warn().
				Int64("user_id", userID).
				Str("policy", p.Name).
				Strs("roles", names).
				Msg("policy denied")
			httperr.Abort(c, httperr.NewStatusText(http.StatusForbidden))
			return
		}
		c.Next()
	}
}
