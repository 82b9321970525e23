package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Path    string `json:"path,omitempty"`
}

const internalDetails = "An unexpected error occurred. Please try again later."

// ErrorHandler turns panics and errors attached with c.Error into JSON 500s
// when nothing has been written yet.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				zap.L().Error("Unhandled panic",
					zap.Any("error", rec),
					zap.String("method", c.Request.Method),
					zap.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: internalDetails,
					Path:    c.Request.URL.Path,
				})
			}
		}()
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			zap.L().Error("Request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Strings("errors", c.Errors.Errors()),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
				Message: "Internal Server Error",
				Details: internalDetails,
				Path:    c.Request.URL.Path,
			})
		}
	}
}

// JSONError aborts with a JSON error body. Details of server-side failures are
// logged but not sent to the client.
func JSONError(c *gin.Context, status int, message string, details string) {
	path := c.Request.URL.Path
	if status >= http.StatusInternalServerError {
		zap.L().Error(message, zap.String("path", path), zap.String("details", details))
		details = internalDetails
	} else {
		zap.L().Warn(message, zap.String("path", path), zap.String("details", details))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Message: message, Details: details, Path: path})
}
