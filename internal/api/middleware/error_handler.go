package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"audio2text/internal/api/errors"
)

// ErrorHandler turns panics into an OpenAI-style 500 response.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError
		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
		case error:
			logger.Error("internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path))
			apiErr = errors.NewInternalError("internal server error")
		default:
			logger.Error("unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID))
			apiErr = errors.NewInternalError("internal server error")
		}

		apiErr.RequestID = requestID
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), errors.Envelope{Error: apiErr})
	})
}

// HandleError writes err as an error envelope. Errors that are not
// *errors.APIError are re-panicked for ErrorHandler.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if apiErr, ok := err.(*errors.APIError); ok {
		apiErr.RequestID = c.GetString(RequestIDKey)
		_ = c.Error(err)
		c.AbortWithStatusJSON(apiErr.HTTPStatus(), errors.Envelope{Error: apiErr})
		return
	}

	panic(err)
}

// BearerAuth rejects requests whose Authorization header does not carry
// key. An empty key disables the check.
func BearerAuth(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.Next()
			return
		}
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
			HandleError(c, errors.NewUnauthorizedError("incorrect API key provided"))
			return
		}
		c.Next()
	}
}
