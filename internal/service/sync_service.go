package service

import (
	"context"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/dto"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Sync states
// 同步状态
const (
	SyncStateIdle    = "idle"
	SyncStateSyncing = "syncing"
	SyncStateSuccess = "success"
	SyncStateError   = "error"
)

// snapshotTimeLayout 整库快照文件名中的时间格式
const snapshotTimeLayout = "2006-01-02T15:04:05.000Z"

// ProgressFunc receives the completed percentage of a running sync
// ProgressFunc 接收正在进行的同步的完成百分比
type ProgressFunc func(percent int)

// SyncConfig 同步配置
type SyncConfig struct {
	// AppName prefixes every remote directory, e.g. /echoapp_memos
	// AppName 远端目录前缀
	AppName string
	// StatusReset is how long a finished status is kept before returning to idle
	// StatusReset 完成状态保留多久后恢复为 idle
	StatusReset time.Duration
}

// SyncService 远端同步引擎
type SyncService interface {
	// SyncCollection 上传集合中的指定记录，每条记录一个文件
	SyncCollection(ctx context.Context, c domain.Collection, ids []int64, progress ProgressFunc) (*dto.SyncResultDTO, error)

	// SyncSelected 按当前选择执行同步，全量模式下上传整库快照
	SyncSelected(ctx context.Context, c domain.Collection, progress ProgressFunc) (*dto.SyncResultDTO, error)

	// SyncAll 上传整库快照
	SyncAll(ctx context.Context, progress ProgressFunc) (*dto.SyncResultDTO, error)

	// Status 获取当前同步状态
	Status() dto.SyncStatusDTO

	// Reset 立即将同步状态恢复为 idle
	Reset()

	// Selection 获取同步选择
	Selection() *Selection

	// Shutdown 停止状态重置定时器
	Shutdown()
}

type syncService struct {
	store      domain.RecordStore
	remote     RemoteConfigService
	selection  *Selection
	serializer Serializer
	config     SyncConfig
	clock      Clock
	logger     *zap.Logger

	sem *semaphore.Weighted

	mu     sync.Mutex
	status dto.SyncStatusDTO
	gen    uint64
	timer  *time.Timer
}

// NewSyncService 创建 SyncService 实例
func NewSyncService(store domain.RecordStore, remote RemoteConfigService, config SyncConfig, clock Clock, logger *zap.Logger) SyncService {
	if config.AppName == "" {
		config.AppName = "echoapp"
	}
	if config.StatusReset <= 0 {
		config.StatusReset = 2 * time.Second
	}
	if clock == nil {
		clock = SystemClock
	}
	return &syncService{
		store:     store,
		remote:    remote,
		selection: NewSelection(),
		config:    config,
		clock:     clock,
		logger:    logger,
		sem:       semaphore.NewWeighted(1),
		status:    dto.SyncStatusDTO{State: SyncStateIdle},
	}
}

func (s *syncService) Selection() *Selection {
	return s.selection
}

func (s *syncService) remoteDir(name string) string {
	return "/" + s.config.AppName + "_" + name
}

// SnapshotFileName 返回整库快照文件名
func SnapshotFileName(app string, t time.Time) string {
	ts := strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format(snapshotTimeLayout))
	return app + "_backup_" + ts + ".json"
}

func (s *syncService) SyncCollection(ctx context.Context, c domain.Collection, ids []int64, progress ProgressFunc) (*dto.SyncResultDTO, error) {
	if !c.IsValid() {
		return nil, code.ErrorCollectionNotFound.Clone().WithDetails(string(c))
	}
	if len(ids) == 0 {
		return nil, code.ErrorSyncEmptySelection
	}
	if !s.sem.TryAcquire(1) {
		return nil, code.ErrorSyncInProgress
	}
	defer s.sem.Release(1)

	// a started sync runs to completion regardless of the caller
	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	s.begin()
	result, err := s.uploadRecords(ctx, c, ids, progress)
	s.finish(err)

	syncDuration.WithLabelValues("collection", resultLabel(err)).Observe(time.Since(start).Seconds())
	return result, err
}

func (s *syncService) uploadRecords(ctx context.Context, c domain.Collection, ids []int64, progress ProgressFunc) (*dto.SyncResultDTO, error) {
	client, err := s.remote.Storage(ctx)
	if err != nil {
		return nil, err
	}

	// resolve every id before uploading anything
	records := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.store.ReadOne(ctx, c, id)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, code.ErrorRecordNotFound.Clone().WithDetails(recordRef(c, id))
		}
		records = append(records, rec)
	}

	dir := s.remoteDir(string(c))
	if err := client.MkdirAll(ctx, dir); err != nil {
		return nil, remoteError(err)
	}

	total := len(records)
	result := &dto.SyncResultDTO{Collection: string(c), Total: total, Paths: make([]string, 0, total)}
	for i, rec := range records {
		p := dir + "/" + s.serializer.FileName(c, rec)

		content, err := s.serializer.Content(c, rec)
		if err != nil {
			return result, newSyncError(string(c), p, i+1, i, total, err)
		}

		if _, err := client.SendContent(ctx, p, content, modTime(rec)); err != nil {
			syncUploads.WithLabelValues(string(c), "error").Inc()
			s.logger.Warn("sync upload failed",
				zap.String(logger.FieldCollection, string(c)),
				zap.Int64(logger.FieldRecordID, rec.GetID()),
				zap.String(logger.FieldPath, p),
				zap.Error(err))
			return result, newSyncError(string(c), p, i+1, i, total, err)
		}
		syncUploads.WithLabelValues(string(c), "success").Inc()

		result.Uploaded++
		result.Paths = append(result.Paths, p)
		s.report(progress, percent(result.Uploaded, total))
	}

	s.logger.Info("collection synced",
		zap.String(logger.FieldCollection, string(c)),
		zap.Int("uploaded", result.Uploaded))
	return result, nil
}

func (s *syncService) SyncSelected(ctx context.Context, c domain.Collection, progress ProgressFunc) (*dto.SyncResultDTO, error) {
	if s.selection.AllCollections() {
		return s.SyncAll(ctx, progress)
	}
	return s.SyncCollection(ctx, c, s.selection.Selected(c), progress)
}

func (s *syncService) SyncAll(ctx context.Context, progress ProgressFunc) (*dto.SyncResultDTO, error) {
	if !s.sem.TryAcquire(1) {
		return nil, code.ErrorSyncInProgress
	}
	defer s.sem.Release(1)

	ctx = context.WithoutCancel(ctx)
	start := time.Now()

	s.begin()
	result, err := s.uploadSnapshot(ctx, progress)
	s.finish(err)

	syncDuration.WithLabelValues("all", resultLabel(err)).Observe(time.Since(start).Seconds())
	return result, err
}

func (s *syncService) uploadSnapshot(ctx context.Context, progress ProgressFunc) (*dto.SyncResultDTO, error) {
	client, err := s.remote.Storage(ctx)
	if err != nil {
		return nil, err
	}

	dir := s.remoteDir("backup")
	if err := client.MkdirAll(ctx, dir); err != nil {
		return nil, remoteError(err)
	}
	s.report(progress, 0)

	snap, err := s.store.Dump(ctx)
	if err != nil {
		return nil, err
	}
	data, err := s.serializer.JSON(snap)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	p := dir + "/" + SnapshotFileName(s.config.AppName, now)
	result := &dto.SyncResultDTO{Collection: "all", Total: 1, Paths: []string{}}
	if _, err := client.SendContent(ctx, p, data, now); err != nil {
		syncUploads.WithLabelValues("all", "error").Inc()
		s.logger.Warn("snapshot upload failed", zap.String(logger.FieldPath, p), zap.Error(err))
		return result, newSyncError("all", p, 1, 0, 1, err)
	}
	syncUploads.WithLabelValues("all", "success").Inc()

	result.Uploaded = 1
	result.Paths = append(result.Paths, p)
	s.report(progress, 100)

	s.logger.Info("snapshot synced", zap.String(logger.FieldPath, p), zap.Int(logger.FieldSize, len(data)))
	return result, nil
}

func (s *syncService) report(progress ProgressFunc, p int) {
	s.mu.Lock()
	s.status.Progress = p
	s.mu.Unlock()
	if progress != nil {
		progress(p)
	}
}

func (s *syncService) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.status = dto.SyncStatusDTO{State: SyncStateSyncing}
}

func (s *syncService) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status.State = SyncStateError
		s.status.Message = err.Error()
	} else {
		s.status.State = SyncStateSuccess
		s.status.Progress = 100
		s.status.Message = ""
	}

	gen := s.gen
	s.timer = time.AfterFunc(s.config.StatusReset, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.gen == gen {
			s.status = dto.SyncStatusDTO{State: SyncStateIdle}
			s.timer = nil
		}
	})
}

func (s *syncService) Status() dto.SyncStatusDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *syncService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status.State == SyncStateSyncing {
		return
	}
	s.gen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.status = dto.SyncStatusDTO{State: SyncStateIdle}
}

func (s *syncService) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func percent(done, total int) int {
	if total == 0 {
		return 100
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

func modTime(rec domain.Record) time.Time {
	if n, ok := rec.(*domain.Note); ok && n.UpdatedAtLong > 0 {
		return time.UnixMilli(n.UpdatedAtLong)
	}
	return time.Time{}
}
