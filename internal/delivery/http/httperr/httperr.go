// Package httperr writes API errors as {"error": message} bodies.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrInvalidRequestBody      = errors.New("invalid request body")
	ErrMandatoryCookieNotFound = errors.New("mandatory cookie not found")
	ErrInvalidTaskID           = errors.New("invalid task id")
)

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func New(code int, message string) APIError {
	return APIError{
		Code:    code,
		Message: message,
	}
}

func (e APIError) Error() string {
	return e.Message
}

func Abort(c *gin.Context, err APIError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

func NewStatusText(status int) APIError {
	return New(status, http.StatusText(status))
}

func NewBadRequest(message string) APIError {
	return New(http.StatusBadRequest, message)
}

func NewUnauthorized(message string) APIError {
	return New(http.StatusUnauthorized, message)
}

func NewForbidden(message string) APIError {
	return New(http.StatusForbidden, message)
}

func NewNotFound(message string) APIError {
	return New(http.StatusNotFound, message)
}

func NewConflict(message string) APIError {
	return New(http.StatusConflict, message)
}
