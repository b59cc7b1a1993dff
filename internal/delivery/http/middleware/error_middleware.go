package middleware

import (
	"errors"
	"net/http"

	"talent-workflow-api/internal/delivery/http/response"
	"talent-workflow-api/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ErrorHandler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Code >= http.StatusInternalServerError {
				log.Error("request failed",
					zap.String("request_id", response.RequestID(c)),
					zap.String("path", c.FullPath()),
					zap.Int("status", appErr.Code),
					zap.Error(err),
				)
			}
			message := appErr.Message
			if appErr.Code == http.StatusInternalServerError {
				message = "An unexpected error occurred. Please try again later."
			}
			response.Error(c, appErr.Code, message, appErr.Details)
			return
		}

		// Never expose internal error details to clients.
		log.Error("unhandled error",
			zap.String("request_id", response.RequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
	}
}
