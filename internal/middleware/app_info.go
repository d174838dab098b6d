package middleware

import (
	"github.com/echoapp/echo-sync-service/pkg/app"

	"github.com/gin-gonic/gin"
)

// AppInfoWithConfig 向上下文写入应用信息
func AppInfoWithConfig(name, version string) gin.HandlerFunc {

	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Set("access_host", app.GetAccessHost(c))

		c.Next()
	}
}
