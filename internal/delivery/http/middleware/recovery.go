package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
)

// Recovery turns a handler panic into a 500 and logs it with its stack.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			logger.Error().
				Interface("panic", recovered).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("recovered from panic")
			httperr.Abort(c, httperr.NewStatusText(http.StatusInternalServerError))
		}()
		c.Next()
	}
}
