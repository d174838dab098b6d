package task

import (
	"context"

	"github.com/echoapp/echo-sync-service/internal/app"
	"github.com/echoapp/echo-sync-service/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BackupTask uploads a whole-store snapshot on the configured schedule
// BackupTask 按计划上传整库快照
type BackupTask struct {
	app      *app.App
	schedule cron.Schedule
	logger   *zap.Logger
}

// NewBackupTask 创建快照任务，未启用时返回 nil
func NewBackupTask(appContainer *app.App) (Task, error) {
	cfg := appContainer.Config()
	if !cfg.Backup.Enabled {
		return nil, nil
	}

	schedule, err := ParseSchedule(cfg.Backup.Cron)
	if err != nil {
		return nil, err
	}

	return &BackupTask{
		app:      appContainer,
		schedule: schedule,
		logger:   appContainer.Logger(),
	}, nil
}

// Name returns the task name
func (t *BackupTask) Name() string {
	return "BackupScheduled"
}

// Schedule 返回执行计划
func (t *BackupTask) Schedule() cron.Schedule {
	return t.schedule
}

// IsStartupRun returns whether to run on startup
func (t *BackupTask) IsStartupRun() bool {
	return false
}

// Run submits the snapshot to the worker pool and waits for it
// Run 提交快照任务到 Worker Pool 并等待完成
func (t *BackupTask) Run(ctx context.Context) error {
	ok, err := t.app.RemoteConfigService.IsConfigured(ctx)
	if err != nil {
		return err
	}
	if !ok {
		t.logger.Info("scheduled backup skipped, remote store is not configured")
		return nil
	}

	return t.app.SubmitTask(ctx, "backup", func(ctx context.Context) error {
		result, err := t.app.SyncService.SyncAll(ctx, nil)
		if err != nil {
			return err
		}
		if len(result.Paths) > 0 {
			t.logger.Info("scheduled backup uploaded", zap.String(logger.FieldPath, result.Paths[0]))
		}
		return nil
	})
}

// init registers the backup task
func init() {
	RegisterWithApp(NewBackupTask)
}
