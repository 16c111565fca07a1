package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CodeInternal is the error code sent with 500 responses.
const CodeInternal = "internal"

// ErrorBody is the JSON shape of every error response: a user-facing message
// and, when the failure has one, a machine-readable code.
type ErrorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorHandler recovers handler panics and reports handler errors attached
// with c.Error that did not already produce a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", rec), zap.String("path", c.FullPath()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
					Error: "Internal Server Error",
					Code:  CodeInternal,
				})
			}
		}()

		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			GetLogger().Error("Unhandled request error", zap.String("path", c.FullPath()), zap.String("errors", c.Errors.String()))
			c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Internal Server Error", Code: CodeInternal})
		}
	}
}

// JSONError aborts the request with an ErrorBody.
func JSONError(c *gin.Context, status int, code, message string) {
	if status >= http.StatusInternalServerError {
		GetLogger().Warn(message, zap.Int("status", status), zap.String("code", code))
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: message, Code: code})
}
