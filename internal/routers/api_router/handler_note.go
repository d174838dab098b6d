package api_router

import (
	"github.com/echoapp/echo-sync-service/internal/app"
	"github.com/echoapp/echo-sync-service/internal/dto"
	pkgapp "github.com/echoapp/echo-sync-service/pkg/app"
	"github.com/echoapp/echo-sync-service/pkg/code"
	apperrors "github.com/echoapp/echo-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteHandler 备忘录 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
	pagination pkgapp.PaginationConfig
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	cfg := a.Config()
	return &NoteHandler{
		Handler: NewHandler(a),
		pagination: pkgapp.PaginationConfig{
			DefaultPageSize: cfg.App.DefaultPageSize,
			MaxPageSize:     cfg.App.MaxPageSize,
		},
	}
}

// List 分页获取备忘录列表
// @Summary 获取备忘录列表
// @Description 按创建时间倒序分页获取未删除的备忘录
// @Tags 备忘录
// @Produce json
// @Param params query dto.NoteListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=pkgapp.ListRes{list=[]domain.Note}} "成功"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "NoteHandler.List.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	page := pkgapp.GetPage(c)
	pageSize := pkgapp.GetPageSizeWithConfig(c, h.pagination)

	notes, total, err := h.App.NoteService.ListPage(c.Request.Context(), page, pageSize)
	if err != nil {
		h.logError(c, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponseList(code.Success, notes, pkgapp.Pager{Page: page, PageSize: pageSize, TotalRows: total})
}

// Get 获取单条备忘录
// @Summary 获取备忘录详情
// @Tags 备忘录
// @Produce json
// @Param params query dto.NoteGetRequest true "获取参数"
// @Success 200 {object} pkgapp.Res{data=domain.Note} "成功"
// @Router /api/note [get]
func (h *NoteHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "NoteHandler.Get.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	note, err := h.App.NoteService.Get(c.Request.Context(), params.ID)
	if err != nil {
		h.logError(c, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(note))
}

// Create 创建备忘录
// @Summary 创建备忘录
// @Description id 由存储分配，未设置的字段使用默认值
// @Tags 备忘录
// @Accept json
// @Produce json
// @Param params body dto.NoteCreateRequest true "备忘录内容"
// @Success 200 {object} pkgapp.Res{data=domain.Note} "成功"
// @Router /api/note [post]
func (h *NoteHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "NoteHandler.Create.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	note, err := h.App.NoteService.Create(c.Request.Context(), params)
	if err != nil {
		h.logError(c, "NoteHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(note))
}

// Update 部分更新备忘录
// @Summary 更新备忘录
// @Description 仅更新请求中出现的字段，并刷新更新时间
// @Tags 备忘录
// @Accept json
// @Produce json
// @Param params body dto.NoteUpdateRequest true "更新内容"
// @Success 200 {object} pkgapp.Res{data=domain.Note} "成功"
// @Router /api/note [put]
func (h *NoteHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "NoteHandler.Update.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	note, err := h.App.NoteService.Update(c.Request.Context(), params)
	if err != nil {
		h.logError(c, "NoteHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(note))
}

// Delete 物理删除备忘录
// @Summary 删除备忘录
// @Tags 备忘录
// @Produce json
// @Param params query dto.NoteGetRequest true "删除参数"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/note [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "NoteHandler.Delete.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	if err := h.App.NoteService.Delete(c.Request.Context(), params.ID); err != nil {
		h.logError(c, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Trash 软删除备忘录
// @Summary 移入回收站
// @Description 设置删除时间，备忘录不再出现在列表中
// @Tags 备忘录
// @Produce json
// @Param params query dto.NoteGetRequest true "参数"
// @Success 200 {object} pkgapp.Res{data=domain.Note} "成功"
// @Router /api/note/trash [put]
func (h *NoteHandler) Trash(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteGetRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "NoteHandler.Trash.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	note, err := h.App.NoteService.Trash(c.Request.Context(), params.ID)
	if err != nil {
		h.logError(c, "NoteHandler.Trash", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(note))
}
