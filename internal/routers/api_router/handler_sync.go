package api_router

import (
	"context"

	"github.com/echoapp/echo-sync-service/internal/app"
	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/dto"
	pkgapp "github.com/echoapp/echo-sync-service/pkg/app"
	"github.com/echoapp/echo-sync-service/pkg/code"
	apperrors "github.com/echoapp/echo-sync-service/pkg/errors"
	"github.com/echoapp/echo-sync-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// collectionAll selects the whole-store snapshot path
const collectionAll = "all"

// SyncHandler 远端同步 API 路由处理器
type SyncHandler struct {
	*Handler
}

// NewSyncHandler 创建 SyncHandler 实例
func NewSyncHandler(a *app.App) *SyncHandler {
	return &SyncHandler{Handler: NewHandler(a)}
}

// Sync 执行同步
// @Summary 同步到远端
// @Description collection 为 all 时上传整库快照；ids 为空时使用当前同步选择；async=1 时后台执行并立即返回状态
// @Tags 同步
// @Accept json
// @Produce json
// @Param params body dto.SyncRequest true "同步参数"
// @Param async query int false "后台执行"
// @Success 200 {object} pkgapp.Res{data=dto.SyncResultDTO} "成功"
// @Router /api/sync [post]
func (h *SyncHandler) Sync(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SyncRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "SyncHandler.Sync.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	run, err := h.runner(params)
	if err != nil {
		h.logError(c, "SyncHandler.Sync", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	if c.Query("async") == "1" {
		err := h.App.SubmitTaskAsync(c.Request.Context(), "sync", func(ctx context.Context) error {
			_, err := run(ctx)
			return err
		})
		if err != nil {
			h.logError(c, "SyncHandler.Sync.Submit", err)
			response.ToResponse(code.ErrorServerInternal.Clone().WithDetails(err.Error()))
			return
		}
		response.ToResponse(code.Success.Clone().WithData(h.App.SyncService.Status()))
		return
	}

	result, err := run(c.Request.Context())
	if err != nil {
		h.logError(c, "SyncHandler.Sync", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(result))
}

// runner resolves the request into one sync invocation
func (h *SyncHandler) runner(params *dto.SyncRequest) (func(context.Context) (*dto.SyncResultDTO, error), error) {
	svc := h.App.SyncService
	progress := func(p int) {
		h.App.Logger().Debug("sync progress",
			zap.String(logger.FieldCollection, params.Collection),
			zap.Int(logger.FieldProgress, p))
	}

	if params.Collection == collectionAll {
		return func(ctx context.Context) (*dto.SyncResultDTO, error) {
			return svc.SyncAll(ctx, progress)
		}, nil
	}

	col, err := domain.ParseCollection(params.Collection)
	if err != nil {
		return nil, err
	}
	if len(params.IDs) == 0 {
		return func(ctx context.Context) (*dto.SyncResultDTO, error) {
			return svc.SyncSelected(ctx, col, progress)
		}, nil
	}
	ids := params.IDs
	return func(ctx context.Context) (*dto.SyncResultDTO, error) {
		return svc.SyncCollection(ctx, col, ids, progress)
	}, nil
}

// Status 获取同步状态
// @Summary 同步状态
// @Tags 同步
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SyncStatusDTO} "成功"
// @Router /api/sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.Clone().WithData(h.App.SyncService.Status()))
}

// Reset 立即恢复空闲状态
// @Summary 重置同步状态
// @Tags 同步
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SyncStatusDTO} "成功"
// @Router /api/sync/reset [post]
func (h *SyncHandler) Reset(c *gin.Context) {
	h.App.SyncService.Reset()
	pkgapp.NewResponse(c).ToResponse(code.Success.Clone().WithData(h.App.SyncService.Status()))
}

// Selection 获取当前同步选择
// @Summary 同步选择
// @Tags 同步
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SelectionDTO} "成功"
// @Router /api/sync/selection [get]
func (h *SyncHandler) Selection(c *gin.Context) {
	pkgapp.NewResponse(c).ToResponse(code.Success.Clone().WithData(h.selection()))
}

// Toggle 切换全量模式或逐条切换选择
// @Summary 切换同步选择
// @Description all 不为空时切换全量模式，否则逐个切换 ids 的选中状态
// @Tags 同步
// @Accept json
// @Produce json
// @Param params body dto.SelectionRequest true "选择参数"
// @Success 200 {object} pkgapp.Res{data=dto.SelectionDTO} "成功"
// @Router /api/sync/selection [post]
func (h *SyncHandler) Toggle(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SelectionRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "SyncHandler.Toggle.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	sel := h.App.SyncService.Selection()
	if params.All != nil {
		sel.SetAllCollections(*params.All)
		response.ToResponse(code.Success.Clone().WithData(h.selection()))
		return
	}

	col, err := domain.ParseCollection(params.Collection)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	for _, id := range params.IDs {
		if _, err := sel.Toggle(col, id); err != nil {
			h.logError(c, "SyncHandler.Toggle", err)
			apperrors.ErrorResponse(c, err)
			return
		}
	}

	response.ToResponse(code.Success.Clone().WithData(h.selection()))
}

// SelectAll 将集合的选择替换为 ids
// @Summary 全选
// @Tags 同步
// @Accept json
// @Produce json
// @Param params body dto.SelectionRequest true "选择参数"
// @Success 200 {object} pkgapp.Res{data=dto.SelectionDTO} "成功"
// @Router /api/sync/selection [put]
func (h *SyncHandler) SelectAll(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SelectionRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.logError(c, "SyncHandler.SelectAll.BindAndValid", errs)
		response.ToResponse(invalidParams(errs))
		return
	}

	col, err := domain.ParseCollection(params.Collection)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}
	if err := h.App.SyncService.Selection().SelectAll(col, params.IDs); err != nil {
		h.logError(c, "SyncHandler.SelectAll", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.Clone().WithData(h.selection()))
}

// Clear 清空选择，collection 为空时清空全部集合
// @Summary 清空同步选择
// @Tags 同步
// @Produce json
// @Param collection query string false "集合名称"
// @Success 200 {object} pkgapp.Res{data=dto.SelectionDTO} "成功"
// @Router /api/sync/selection [delete]
func (h *SyncHandler) Clear(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	var col domain.Collection
	if name := c.Query("collection"); name != "" {
		parsed, err := domain.ParseCollection(name)
		if err != nil {
			apperrors.ErrorResponse(c, err)
			return
		}
		col = parsed
	}
	h.App.SyncService.Selection().Clear(col)

	response.ToResponse(code.Success.Clone().WithData(h.selection()))
}

func (h *SyncHandler) selection() dto.SelectionDTO {
	sel := h.App.SyncService.Selection()
	return dto.SelectionDTO{
		AllCollections: sel.AllCollections(),
		Selected:       sel.Snapshot(),
	}
}
