package routers

import (
	"time"

	"github.com/echoapp/echo-sync-service/internal/app"
	"github.com/echoapp/echo-sync-service/internal/middleware"
	"github.com/echoapp/echo-sync-service/internal/routers/api_router"
	"github.com/echoapp/echo-sync-service/pkg/limiter"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
)

// newLimiter builds the per-route token buckets; status polling gets its own bucket
func newLimiter(syncPerMinute int64) limiter.Face {
	if syncPerMinute <= 0 {
		syncPerMinute = 30
	}
	return limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{
			Key:          "/api/sync",
			FillInterval: time.Minute,
			Capacity:     syncPerMinute,
			Quantum:      syncPerMinute,
		},
		limiter.BucketRule{
			Key:          "/api/sync/status",
			FillInterval: time.Second,
			Capacity:     20,
			Quantum:      20,
		},
	)
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()
	r.Use(middleware.CorsWithConfig(cfg.Server.CorsOrigins))

	// WebDAV 代理，凭据由代理注入，不经过 API 鉴权
	proxyGroup := r.Group("/")
	proxyGroup.Use(middleware.RecoveryWithLogger(lg))
	appContainer.Proxy.Register(proxyGroup)

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfoWithConfig(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceWithConfig(cfg.Tracer.Enabled, cfg.Tracer.Header)) // Trace ID 中间件
		api.Use(middleware.RateLimiter(newLimiter(cfg.Sync.RateLimit)))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(lg))
		api.Use(middleware.RecoveryWithLogger(lg))

		// 创建 Handlers（注入 App Container）
		versionHandler := api_router.NewVersionHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		recordHandler := api_router.NewRecordHandler(appContainer)
		syncHandler := api_router.NewSyncHandler(appContainer)
		remoteHandler := api_router.NewRemoteHandler(appContainer)

		// 无需认证
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/health", versionHandler.Health)

		auth := api.Group("")
		auth.Use(middleware.SimpleAuthTokenWithConfig(cfg.Security.AuthToken))

		auth.GET("/notes", noteHandler.List)
		auth.GET("/note", noteHandler.Get)
		auth.POST("/note", noteHandler.Create)
		auth.PUT("/note", noteHandler.Update)
		auth.DELETE("/note", noteHandler.Delete)
		auth.PUT("/note/trash", noteHandler.Trash)

		auth.GET("/records/:collection", recordHandler.List)
		auth.GET("/records/:collection/:id", recordHandler.Get)

		auth.POST("/sync", syncHandler.Sync)
		auth.GET("/sync/status", syncHandler.Status)
		auth.POST("/sync/reset", syncHandler.Reset)
		auth.GET("/sync/selection", syncHandler.Selection)
		auth.POST("/sync/selection", syncHandler.Toggle)
		auth.PUT("/sync/selection", syncHandler.SelectAll)
		auth.DELETE("/sync/selection", syncHandler.Clear)

		auth.GET("/remote/config", remoteHandler.GetConfig)
		auth.POST("/remote/config", remoteHandler.SaveConfig)
		auth.GET("/remote/list", remoteHandler.List)
		auth.GET("/remote/file", remoteHandler.ReadFile)
		auth.PUT("/remote/file", remoteHandler.WriteFile)
		auth.DELETE("/remote/file", remoteHandler.Delete)
		auth.POST("/remote/dir", remoteHandler.MakeDir)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
