package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "requestID"

// RequestLogger 为每个请求分配 request id，并在结束时记录一行日志
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// 客户端带来的 id 必须是合法 uuid，否则重新生成
		rid := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Header(RequestIDHeader, rid)

		c.Next()

		// 只有登录用户才有 uid
		var userID uint
		if user, ok := CurrentUser(c); ok {
			userID = user.ID
		}

		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" && c.Query("token") == "" {
			path += "?" + raw
		}

		log.Printf("[%s] %3d %-6s %s %v uid=%d ip=%s",
			rid,
			c.Writer.Status(),
			c.Request.Method,
			path,
			time.Since(start),
			userID,
			c.ClientIP(),
		)
	}
}

// RequestID returns the id assigned by RequestLogger, or "-".
func RequestID(c *gin.Context) string {
	if v, ok := c.Get(requestIDKey); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "-"
}
