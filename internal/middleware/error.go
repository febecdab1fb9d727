package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "fintracker/internal/errors"
	"fintracker/internal/logger"
)

// ErrorHandler returns a Gin middleware that renders the last error recorded
// on the context as a JSON error response. Nothing is written when the
// handler already produced a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		WriteError(c, c.Errors.Last().Err)
	}
}

// AbortWithError records err on the context and stops the handler chain.
// ErrorHandler turns the recorded error into the response.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// WriteError writes err as {"error":{"code","message"}}. AppErrors keep their
// status, code and message; anything else becomes a generic internal error
// and is logged with its details.
func WriteError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		appErr = apperrors.ErrInternalServer
	} else if appErr.Internal != nil {
		logger.Get().Errorw("app error",
			"code", appErr.Code,
			"message", appErr.Message,
			"internal", appErr.Internal.Error(),
			"path", c.Request.URL.Path,
		)
	}

	c.JSON(appErr.StatusCode, gin.H{
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
