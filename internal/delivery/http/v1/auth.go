package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/middleware"
	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

type loginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email,max=255"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=255"`
}

func (h *handlerImpl) HandleLogin(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBind(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind request body")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidRequestBody.Error()))
		return
	}

	fingerprint, err := middleware.Fingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		return
	}

	result, err := h.auth.Login(c, services.LoginParams{
		Email:       req.Email,
		Password:    req.Password,
		Fingerprint: fingerprint,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to login")
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			httperr.Abort(c, httperr.NewUnauthorized(services.ErrUserNotFound.Error()))
		case errors.Is(err, services.ErrUserPasswordMismatch):
			httperr.Abort(c, httperr.NewUnauthorized(services.ErrUserPasswordMismatch.Error()))
		default:
			httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		}
		return
	}

	middleware.SetTokenCookies(c, result)
	c.Status(http.StatusOK)
}

func (h *handlerImpl) HandleRefresh(c *gin.Context) {
	_, err := middleware.Refresh(c, h.auth)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to refresh session")
		switch {
		case errors.Is(err, httperr.ErrMandatoryCookieNotFound):
			httperr.Abort(c, httperr.NewBadRequest(httperr.ErrMandatoryCookieNotFound.Error()))
		case errors.Is(err, services.ErrSessionNotFound):
			httperr.Abort(c, httperr.NewUnauthorized(services.ErrSessionNotFound.Error()))
		case errors.Is(err, services.ErrSessionExpired):
			httperr.Abort(c, httperr.NewUnauthorized(services.ErrSessionExpired.Error()))
		default:
			httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		}
		return
	}

	c.Status(http.StatusOK)
}

func (h *handlerImpl) HandleRegister(c *gin.Context) {
	var req loginRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		httperr.Abort(c, httperr.NewBadRequest(httperr.ErrInvalidRequestBody.Error()))
		return
	}
	h.logger.Info().
		Str("email", req.Email).
		Msg("register request")

	fingerprint, err := middleware.Fingerprint(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		return
	}

	result, err := h.auth.Register(c, services.LoginParams{
		Email:       req.Email,
		Password:    req.Password,
		Fingerprint: fingerprint,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to register user")
		switch {
		case errors.Is(err, services.ErrUserAlreadyExists):
			httperr.Abort(c, httperr.NewConflict(services.ErrUserAlreadyExists.Error()))
		default:
			httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		}
		return
	}

	middleware.SetTokenCookies(c, result)
	c.Status(http.StatusCreated)
}

func (h *handlerImpl) HandleLogout(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
		return
	}

	err := h.auth.Logout(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to logout")
		httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		return
	}

	middleware.ClearTokenCookies(c)
	c.Status(http.StatusNoContent)
}
