package api_router

import (
	"github.com/echoapp/echo-sync-service/internal/app"
	pkgapp "github.com/echoapp/echo-sync-service/pkg/app"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/convert"
	apperrors "github.com/echoapp/echo-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RecordHandler 通用集合只读接口
type RecordHandler struct {
	*Handler
}

// NewRecordHandler 创建 RecordHandler 实例
func NewRecordHandler(a *app.App) *RecordHandler {
	return &RecordHandler{Handler: NewHandler(a)}
}

// List 读取集合全部记录
// @Summary 读取集合
// @Tags 记录
// @Produce json
// @Param collection path string true "集合名称"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/records/{collection} [get]
func (h *RecordHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	records, err := h.App.RecordService.List(c.Request.Context(), c.Param("collection"))
	if err != nil {
		h.logError(c, "RecordHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(records))
}

// Get 读取单条记录
// @Summary 读取记录
// @Tags 记录
// @Produce json
// @Param collection path string true "集合名称"
// @Param id path int true "记录 id"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/records/{collection}/{id} [get]
func (h *RecordHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, err := convert.StrTo(c.Param("id")).Int64()
	if err != nil || id <= 0 {
		response.ToResponse(code.ErrorInvalidParams.Clone().WithDetails("id"))
		return
	}

	rec, err := h.App.RecordService.Get(c.Request.Context(), c.Param("collection"), id)
	if err != nil {
		h.logError(c, "RecordHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(rec))
}
