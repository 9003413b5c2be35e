package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
)

const (
	headerUserID    = "X-User-ID"
	headerRequestID = "X-Request-ID"
)

// RequestLogger tags the request context with a request id and writes one
// access log line per request.
func RequestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		ctx := util.WithRequestID(c.Request.Context(), c.GetHeader(headerRequestID))
		c.Request = c.Request.WithContext(ctx)
		c.Header(headerRequestID, util.GetRequestID(ctx))

		c.Next()

		fields := []logger.Field{
			{Key: "method", Value: c.Request.Method},
			{Key: "path", Value: c.FullPath()},
			{Key: "status", Value: c.Writer.Status()},
			{Key: "latency", Value: time.Since(start).String()},
		}
		if err := c.Errors.Last(); err != nil {
			fields = append(fields, logger.Field{Key: "error", Value: err.Err.Error()})
		}

		if c.Writer.Status() >= 500 {
			log.WarnContext(ctx, "Request failed", fields...)
			return
		}
		log.InfoContext(ctx, "Request served", fields...)
	}
}

// RequireUser reads the caller from the X-User-ID header. Authentication is
// done upstream; this only rejects requests that carry no usable id.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.GetHeader(headerUserID), 10, 64)
		if err != nil || id <= 0 {
			abort(c, http.StatusUnauthorized, errors.GeneralUnauthorizedError, "missing or invalid "+headerUserID+" header")
			return
		}

		c.Request = c.Request.WithContext(util.WithUserID(c.Request.Context(), id))
		c.Next()
	}
}

func userID(c *gin.Context) int64 {
	id, _ := util.GetUserID(c.Request.Context())
	return id
}
