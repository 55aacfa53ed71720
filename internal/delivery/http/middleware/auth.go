package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

var (
	errNoAccessToken              = errors.New("no access token")
	errInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

type Authenticator struct {
	logger   zerolog.Logger
	auth     services.AuthService
	sessions services.SessionService
}

func NewAuthenticator(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
) *Authenticator {
	return &Authenticator{
		logger:   logger,
		auth:     authService,
		sessions: sessionService,
	}
}

// Handle authenticates the request by its access token, taken from the
// Authorization header or the access token cookie. An expired token is
// replaced using the refresh token cookie.
func (a *Authenticator) Handle(c *gin.Context) {
	accessToken, err := accessTokenFromRequest(c)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to get access token")
		httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
		return
	}

	claims, err := a.auth.ParseJWTToken(accessToken)
	if err != nil {
		if !errors.Is(err, jwt.ErrTokenExpired) {
			a.logger.Error().
				Err(err).
				Msg("failed to parse token")
			httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
			return
		}

		result, err := Refresh(c, a.auth)
		if err != nil {
			a.logger.Error().
				Err(err).
				Msg("failed to refresh expired token")
			httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
			return
		}

		claims, err = a.auth.ParseJWTToken(result.AccessToken)
		if err != nil {
			a.logger.Error().
				Err(err).
				Msg("failed to parse fresh token")
			httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
			return
		}
	}

	session, err := a.sessions.GetSessionByID(c, claims.SessionID)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			a.logger.Warn().
				Str("session_id", claims.SessionID).
				Msg("session not found")
			httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
			return
		}

		a.logger.Error().
			Err(err).
			Msg("failed to fetch session")
		httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		return
	}

	if strconv.FormatInt(session.UserID, 10) != claims.Subject {
		a.logger.Error().
			Str("session_id", session.ID).
			Str("subject", claims.Subject).
			Msg("session belongs to another user")
		httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
		return
	}

	fingerprint, err := Fingerprint(c)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("failed to generate fingerprint")
		httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		return
	}

	if fingerprint != session.Fingerprint {
		a.logger.Error().
			Str("session_id", session.ID).
			Msg("fingerprint mismatch")
		httperr.Abort(c, httperr.NewStatusText(http.StatusUnauthorized))
		return
	}

	SetIdentity(c, claims, session)
	c.Next()
}

// Refresh rotates the session behind the refresh token cookie and sets
// fresh token cookies on success.
func Refresh(c *gin.Context, auth services.AuthService) (*services.LoginResult, error) {
	refreshToken, err := c.Cookie(RefreshTokenCookie)
	if err != nil {
		return nil, httperr.ErrMandatoryCookieNotFound
	}

	fingerprint, err := Fingerprint(c)
	if err != nil {
		return nil, err
	}

	result, err := auth.Refresh(c, services.RefreshParams{
		RefreshToken: refreshToken,
		Fingerprint:  fingerprint,
	})
	if err != nil {
		return nil, err
	}

	SetTokenCookies(c, result)
	return result, nil
}

func accessTokenFromRequest(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header != "" {
		const bearerPrefix = "Bearer"
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != bearerPrefix || parts[1] == "" {
			return "", errInvalidAuthorizationHeader
		}
		return parts[1], nil
	}

	token, err := c.Cookie(AccessTokenCookie)
	if err != nil || token == "" {
		return "", errNoAccessToken
	}
	return token, nil
}
