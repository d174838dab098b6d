// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"errors"

	"github.com/echoapp/echo-sync-service/internal/app"
	"github.com/echoapp/echo-sync-service/internal/middleware"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体，封装 App Container
// 所有 API Handler 都应该嵌入此结构体以获得依赖注入能力
type Handler struct {
	App *app.App
}

// NewHandler 创建基础 Handler 实例
func NewHandler(a *app.App) *Handler {
	return &Handler{App: a}
}

// logError 记录处理器错误，业务错误码记为 Warn，其余记为 Error
func (h *Handler) logError(c *gin.Context, method string, err error) {
	fields := []zap.Field{
		zap.String(logger.FieldMethod, method),
		zap.String(logger.FieldTraceID, middleware.GetTraceIDFromGin(c)),
		zap.Error(err),
	}
	var ce *code.Code
	if errors.As(err, &ce) && ce.StatusCode() < 500 {
		h.App.Logger().Warn(method, fields...)
		return
	}
	h.App.Logger().Error(method, fields...)
}

// invalidParams 构造参数错误响应码
func invalidParams(errs interface {
	ErrorsToString() []string
	MapsToString() map[string]string
}) *code.Code {
	return code.ErrorInvalidParams.Clone().WithDetails(errs.ErrorsToString()...).WithData(errs.MapsToString())
}
