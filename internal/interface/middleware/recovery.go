package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-service/internal/application"
	"github.com/oksasatya/go-auth-service/pkg/response"
)

// Recovery turns a panic into the generic internal error response.
func Recovery(logger logrus.FieldLogger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(response.RequestIDKey),
			"panic":      recovered,
			"path":       c.Request.URL.Path,
		}).Error("panic recovered")
		response.Error(c, http.StatusInternalServerError, application.MsgInternal, nil)
	})
}
