package api_router

import (
	"github.com/echoapp/echo-sync-service/internal/app"
	"github.com/echoapp/echo-sync-service/internal/dto"
	pkgapp "github.com/echoapp/echo-sync-service/pkg/app"
	"github.com/echoapp/echo-sync-service/pkg/code"
	apperrors "github.com/echoapp/echo-sync-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// RemoteHandler 远端配置与浏览 API 路由处理器
type RemoteHandler struct {
	*Handler
}

// NewRemoteHandler 创建 RemoteHandler 实例
func NewRemoteHandler(a *app.App) *RemoteHandler {
	return &RemoteHandler{Handler: NewHandler(a)}
}

// GetConfig 获取 WebDAV 配置
// @Summary 获取远端配置
// @Tags 远端
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.RemoteConfigDTO} "成功"
// @Router /api/remote/config [get]
func (h *RemoteHandler) GetConfig(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	cfg, err := h.App.RemoteConfigService.Get(c.Request.Context())
	if err != nil {
		h.logError(c, "RemoteHandler.GetConfig", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(cfg))
}

// SaveConfig 保存 WebDAV 配置
// @Summary 保存远端配置
// @Tags 远端
// @Accept json
// @Produce json
// @Param params body dto.RemoteConfigDTO true "WebDAV 配置"
// @Success 200 {object} pkgapp.Res{data=dto.RemoteConfigDTO} "成功"
// @Router /api/remote/config [post]
func (h *RemoteHandler) SaveConfig(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RemoteConfigDTO{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "RemoteHandler.SaveConfig.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	cfg, err := h.App.RemoteConfigService.Save(c.Request.Context(), params)
	if err != nil {
		h.logError(c, "RemoteHandler.SaveConfig", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(cfg))
}

// List 列出远端目录
// @Summary 浏览远端目录
// @Tags 远端
// @Produce json
// @Param path query string false "目录，默认根目录"
// @Success 200 {object} pkgapp.Res{data=dto.RemoteListDTO} "成功"
// @Router /api/remote/list [get]
func (h *RemoteHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RemotePathRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "RemoteHandler.List.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	list, err := h.App.RemoteService.List(c.Request.Context(), params.Path)
	if err != nil {
		h.logError(c, "RemoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(list))
}

// ReadFile 读取远端文件
// @Summary 读取远端文件
// @Tags 远端
// @Produce json
// @Param path query string true "文件路径"
// @Success 200 {object} pkgapp.Res{data=dto.RemoteFileDTO} "成功"
// @Router /api/remote/file [get]
func (h *RemoteHandler) ReadFile(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RemotePathRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "RemoteHandler.ReadFile.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	file, err := h.App.RemoteService.ReadFile(c.Request.Context(), params.Path)
	if err != nil {
		h.logError(c, "RemoteHandler.ReadFile", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(file))
}

// MakeDir 创建远端目录
// @Summary 创建远端目录
// @Tags 远端
// @Accept json
// @Produce json
// @Param params body dto.RemotePathRequest true "目录"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/remote/dir [post]
func (h *RemoteHandler) MakeDir(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RemotePathRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "RemoteHandler.MakeDir.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	if err := h.App.RemoteService.MakeDir(c.Request.Context(), params.Path); err != nil {
		h.logError(c, "RemoteHandler.MakeDir", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// WriteFile 上传远端文件
// @Summary 上传远端文件
// @Description 父目录不存在时自动创建
// @Tags 远端
// @Accept json
// @Produce json
// @Param params body dto.RemoteFilePutRequest true "文件"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/remote/file [put]
func (h *RemoteHandler) WriteFile(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RemoteFilePutRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "RemoteHandler.WriteFile.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	saved, err := h.App.RemoteService.WriteFile(c.Request.Context(), params.Path, []byte(params.Content))
	if err != nil {
		h.logError(c, "RemoteHandler.WriteFile", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(dto.RemoteFileDTO{Path: saved, Size: len(params.Content)}))
}

// Delete 删除远端文件或目录
// @Summary 删除远端文件
// @Tags 远端
// @Produce json
// @Param path query string true "路径"
// @Success 200 {object} pkgapp.Res "成功"
// @Router /api/remote/file [delete]
func (h *RemoteHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.RemotePathRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "RemoteHandler.Delete.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	if err := h.App.RemoteService.Delete(c.Request.Context(), params.Path); err != nil {
		h.logError(c, "RemoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}
