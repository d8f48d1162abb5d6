package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/travelmart_server/config"
)

// 导出接口通过 Content-Disposition 返回文件名
var exposedHeaders = []string{"Content-Disposition"}

// CORS 跨域中间件，AllowedOrigins 含 "*" 时回显任意来源
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	allowAll := false
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			allowAll = true
		}
		origins[strings.TrimRight(o, "/")] = struct{}{}
	}

	methods := joinStrings(cfg.AllowedMethods)
	headers := joinStrings(cfg.AllowedHeaders)

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		if origin != "" {
			_, listed := origins[origin]
			if listed || allowAll {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
		}

		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Expose-Headers", joinStrings(exposedHeaders))
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func joinStrings(strs []string) string {
	return strings.Join(strs, ", ")
}
