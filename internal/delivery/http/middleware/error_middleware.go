package middleware

import (
	"net/http"

	"jobflix-backend/internal/delivery/http/response"
	"jobflix-backend/internal/domain"
	"jobflix-backend/pkg/apperror"
	"jobflix-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if appErr, ok := apperror.As(err); ok {
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("request failed",
					"path", c.FullPath(),
					"request_id", c.GetString(string(domain.KeyRequestID)),
					"error", appErr.Unwrap(),
				)
			}
			var details interface{}
			if len(appErr.Details) > 0 {
				details = appErr.Details
			}
			response.Error(c, appErr.Code, appErr.Message, details)
			return
		}

		// Internal details stay in the server log.
		logger.Log.Error("unhandled error",
			"path", c.FullPath(),
			"request_id", c.GetString(string(domain.KeyRequestID)),
			"error", err,
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
