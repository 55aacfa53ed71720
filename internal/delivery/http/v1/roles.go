package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

// HandleAssignRole grants the role named in the path to a user.
// The route is expected to sit behind the admin policy.
func (h *handlerImpl) HandleAssignRole(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("id", c.Param("id")).
			Msg("invalid user id")
		httperr.Abort(c, httperr.NewBadRequest("invalid user id"))
		return
	}
	role := c.Param("role")

	err = h.roles.AssignRole(c, userID, role)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Str("role", role).
			Msg("failed to assign role")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			httperr.Abort(c, httperr.NewNotFound(services.ErrUserNotFound.Error()))
		case errors.Is(err, services.ErrRoleNotFound):
			httperr.Abort(c, httperr.NewNotFound(services.ErrRoleNotFound.Error()))
		default:
			httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		}
		return
	}

	c.Status(http.StatusNoContent)
}
