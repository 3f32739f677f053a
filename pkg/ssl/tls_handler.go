package ssl

import (
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
)

// Options 安全中间件配置
type Options struct {
	SSLRedirect bool
	SSLHost     string
	// IsDevelopment 关闭 HSTS / 跳转等仅适用于线上的限制
	IsDevelopment bool
}

// TlsHandler 设置安全响应头，可选 HTTP → HTTPS 跳转
func TlsHandler(opts Options) gin.HandlerFunc {
	secureMiddleware := secure.New(secure.Options{
		SSLRedirect:           opts.SSLRedirect,
		SSLHost:               opts.SSLHost,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
		STSSeconds:            31536000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		IsDevelopment:         opts.IsDevelopment,
	})

	return func(c *gin.Context) {
		err := secureMiddleware.Process(c.Writer, c.Request)

		// If there was an error, do not continue.
		if err != nil {
			// secure 库已经写入了 Response（重定向或拒绝），这里只中止处理链
			c.Abort()
			return
		}

		// 跳转时 secure 已写入状态码
		if status := c.Writer.Status(); status > 300 && status < 399 {
			c.Abort()
			return
		}

		c.Next()
	}
}
