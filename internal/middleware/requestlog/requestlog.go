package requestlog

import (
	"time"

	"CardioCheck/pkg/util"
	"CardioCheck/pkg/zlog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	HeaderRequestID = "X-Request-ID"
	// ContextKey gin.Context 中请求 ID 的 key
	ContextKey = "request_id"
)

// Middleware 生成或透传请求 ID 并输出访问日志
//
// 只记录方法、路由、状态码与耗时，请求体含患者指标，一律不落日志。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := c.GetHeader(HeaderRequestID)
		if !util.ValidRequestID(id) {
			id = util.GenerateUUID()
		}
		c.Set(ContextKey, id)
		c.Header(HeaderRequestID, id)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		fields := []zap.Field{
			zap.String("request_id", id),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if c.Writer.Status() >= 500 {
			zlog.Error("request", fields...)
			return
		}
		zlog.Info("request", fields...)
	}
}

// RequestID 取当前请求 ID，未经过中间件时返回空串
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKey)
}
