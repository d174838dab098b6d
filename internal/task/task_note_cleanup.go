package task

import (
	"context"
	"time"

	"github.com/echoapp/echo-sync-service/internal/app"
	"github.com/echoapp/echo-sync-service/internal/service"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// init 自动注册清理任务
func init() {
	RegisterWithApp(NewNoteCleanupTask)
}

// NoteCleanupTask 物理删除超过保留时间的软删除备忘录
type NoteCleanupTask struct {
	notes     service.NoteService
	retention time.Duration
	schedule  cron.Schedule
	logger    *zap.Logger
}

// NewNoteCleanupTask 创建清理任务，保留时间未配置时返回 nil
func NewNoteCleanupTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()
	retention := cfg.GetSoftDeleteRetention()
	if retention <= 0 {
		appContainer.Logger().Info("note cleanup task is disabled (retention time not configured)")
		return nil, nil
	}

	schedule, err := ParseSchedule(cfg.App.SoftDeleteCleanCron)
	if err != nil {
		return nil, err
	}

	return &NoteCleanupTask{
		notes:     appContainer.NoteService,
		retention: retention,
		schedule:  schedule,
		logger:    appContainer.Logger(),
	}, nil
}

// Name 返回任务名称
func (t *NoteCleanupTask) Name() string {
	return "NoteCleanupTask"
}

// Run 执行清理任务
func (t *NoteCleanupTask) Run(ctx context.Context) error {
	n, err := t.notes.Cleanup(ctx, t.retention)
	if err != nil {
		return err
	}
	if n > 0 {
		t.logger.Info("soft deleted notes purged", zap.Int64("count", n))
	}
	return nil
}

// Schedule 返回执行计划
func (t *NoteCleanupTask) Schedule() cron.Schedule {
	return t.schedule
}

// IsStartupRun 是否立即执行一次
func (t *NoteCleanupTask) IsStartupRun() bool {
	return true
}
