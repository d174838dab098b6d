// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/echoapp/echo-sync-service/internal/dao"
	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/proxy"
	"github.com/echoapp/echo-sync-service/internal/service"
	pkgapp "github.com/echoapp/echo-sync-service/pkg/app"
	"github.com/echoapp/echo-sync-service/pkg/workerpool"
	"github.com/echoapp/echo-sync-service/pkg/writequeue"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// 并发控制组件
	workerPool    *workerpool.Pool
	writeQueueMgr *writequeue.Manager

	// Repository 层
	RecordStore domain.RecordStore
	SettingRepo domain.SettingRepository

	// Service 层
	NoteService         service.NoteService
	RecordService       service.RecordService
	RemoteConfigService service.RemoteConfigService
	RemoteService       service.RemoteService
	SyncService         service.SyncService

	// WebDAV 代理
	Proxy *proxy.Proxy

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		shutdownCh: make(chan struct{}),
	}

	// 初始化 Worker Pool
	wpConfig := cfg.GetWorkerPoolConfig()
	a.workerPool = workerpool.New(&wpConfig, logger.Named("workerpool"))

	// 初始化 Write Queue Manager
	wqConfig := cfg.GetWriteQueueConfig()
	a.writeQueueMgr = writequeue.New(&wqConfig, logger)

	// 初始化 DAO（使用依赖注入）
	a.Dao = dao.New(db, a.writeQueueMgr, logger)

	// 初始化 Repository 层
	a.RecordStore = dao.NewRecordStore(a.Dao)
	a.SettingRepo = dao.NewSettingRepository(a.Dao)

	// 初始化 WebDAV 代理
	p, err := proxy.New(cfg.Proxy, logger.Named("proxy"))
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy: %w", err)
	}
	a.Proxy = p

	// 初始化 Service 层（依赖注入）
	clock := service.SystemClock
	a.NoteService = service.NewNoteService(a.RecordStore, clock, logger)
	a.RecordService = service.NewRecordService(a.RecordStore)
	a.RemoteConfigService = service.NewRemoteConfigService(a.SettingRepo, service.RemoteOptions{
		Default:       cfg.Remote,
		ProxyUpstream: p.Upstream(),
		ProxyURL:      cfg.GetProxyURL(),
	}, logger.Named("remote"))
	a.RemoteService = service.NewRemoteService(a.RemoteConfigService, clock, logger)
	a.SyncService = service.NewSyncService(a.RecordStore, a.RemoteConfigService, service.SyncConfig{
		AppName:     cfg.App.Name,
		StatusReset: cfg.GetSyncStatusReset(),
	}, clock, logger.Named("sync"))

	logger.Info("App container initialized successfully",
		zap.Int("workerPoolMaxWorkers", wpConfig.MaxWorkers),
		zap.Int("writeQueueCapacity", wqConfig.QueueCapacity))

	return a, nil
}

// LoadSeed 读取种子文件，文件不存在时返回 nil
func LoadSeed(file string) (*domain.Snapshot, error) {
	if file == "" {
		return nil, nil
	}
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read seed file failed")
	}
	seed := domain.NewSnapshot()
	if err := sonic.ConfigStd.Unmarshal(data, seed); err != nil {
		return nil, errors.Wrap(err, "parse seed file failed")
	}
	seed.Normalize()
	return seed, nil
}

// InitStore initializes the record store, seeding it from file on first run
// InitStore 初始化记录存储，首次运行时使用种子文件
func (a *App) InitStore(ctx context.Context, file string) error {
	seed, err := LoadSeed(file)
	if err != nil {
		return err
	}
	if err := a.RecordService.Initialize(ctx, seed); err != nil {
		return err
	}
	a.logger.Info("record store ready", zap.Bool("seeded", seed != nil))
	return nil
}

// Close 释放应用容器持有的资源
func (a *App) Close() error {
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// SubmitTask 提交任务到 Worker Pool 并等待完成
func (a *App) SubmitTask(ctx context.Context, name string, task workerpool.Job) error {
	return a.workerPool.Submit(ctx, name, task)
}

// SubmitTaskAsync 异步提交任务到 Worker Pool（不等待结果）
// 返回错误如果池已满或已关闭
func (a *App) SubmitTaskAsync(ctx context.Context, name string, task workerpool.Job) error {
	return a.workerPool.SubmitAsync(ctx, name, task)
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// Ping 检查数据库连接
func (a *App) Ping(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 按顺序关闭：Sync -> Worker Pool -> Write Queue Manager -> Database
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 0. 停止同步状态重置定时器
	if a.SyncService != nil {
		a.SyncService.Shutdown()
	}

	// 1. 关闭 Worker Pool（停止接受新任务，等待现有任务完成）
	if a.workerPool != nil {
		a.logger.Info("Shutting down worker pool...")
		if err := a.workerPool.Shutdown(ctx); err != nil {
			a.logger.Warn("Worker pool shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	// 2. 关闭 Write Queue Manager（排空所有队列）
	if a.writeQueueMgr != nil {
		a.logger.Info("Shutting down write queue manager...")
		if err := a.writeQueueMgr.Shutdown(ctx); err != nil {
			a.logger.Warn("write queue manager shutdown error", zap.Error(err))
			errs = append(errs, fmt.Errorf("write queue manager shutdown: %w", err))
		}
	}

	// 3. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 4. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
