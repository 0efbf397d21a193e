package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"hotelfood/utils"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs one line when it finishes.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set("requestId", reqID)
		c.Header(RequestIDHeader, reqID)

		c.Next()

		fields := logrus.Fields{
			"request_id": reqID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		}
		if role := utils.CurrentRole(c); role != "" {
			fields["role"] = role
		}
		if uid := utils.CurrentUserID(c); uid != 0 {
			fields["user_id"] = uid
		}
		entry := log.WithFields(fields)

		switch {
		case len(c.Errors) > 0:
			entry.WithError(c.Errors.Last()).Error("request failed")
		case c.Writer.Status() >= 500:
			entry.Error("request")
		default:
			entry.Info("request")
		}
	}
}
