// Package dao 实现数据访问层
package dao

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/fileurl"
	"github.com/echoapp/echo-sync-service/pkg/util"
	"github.com/echoapp/echo-sync-service/pkg/writequeue"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Type            string
	Path            string
	UserName        string
	Password        string
	Host            string
	Port            int
	Name            string
	Charset         string
	ParseTime       bool
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime string
	ConnMaxIdleTime string
	RunMode         string
}

type Dao struct {
	Db         *gorm.DB
	writeQueue *writequeue.Manager
	logger     *zap.Logger
}

// New 创建 Dao，所有写操作经过按集合划分的写队列
func New(db *gorm.DB, wq *writequeue.Manager, lg *zap.Logger) *Dao {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Dao{Db: db, writeQueue: wq, logger: lg}
}

// NewDBEngineWithConfig 根据配置打开数据库连接
func NewDBEngineWithConfig(c DatabaseConfig, lg *zap.Logger) (*gorm.DB, error) {
	dialector, err := useDialector(c)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if c.RunMode == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
	}

	// 获取通用数据库对象 sql.DB ，然后使用其提供的功能
	sqlDB, err := db.DB()
	if err != nil {
		return nil, code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
	}

	if c.Type == "sqlite" {
		// a single connection serializes sqlite writers across collections
		sqlDB.SetMaxOpenConns(1)
	} else {
		if c.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(c.MaxIdleConns)
		}
		if c.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(c.MaxOpenConns)
		}
	}
	if d, err := util.ParseDuration(c.ConnMaxLifetime); err == nil && d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	}
	if d, err := util.ParseDuration(c.ConnMaxIdleTime); err == nil && d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	}

	if lg != nil {
		lg.Info("database connected", zap.String("type", c.Type))
	}
	return db, nil
}

func useDialector(c DatabaseConfig) (gorm.Dialector, error) {
	switch c.Type {
	case "mysql":
		charset := c.Charset
		if charset == "" {
			charset = "utf8mb4"
		}
		return mysql.Open(fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=%s&parseTime=%t&loc=Local",
			c.UserName,
			c.Password,
			c.Host,
			c.Name,
			charset,
			c.ParseTime,
		)), nil
	case "postgres":
		sslMode := c.SSLMode
		if sslMode == "" {
			sslMode = "disable"
		}
		port := c.Port
		if port == 0 {
			port = 5432
		}
		return postgres.Open(fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			c.Host, c.UserName, c.Password, c.Name, port, sslMode,
		)), nil
	case "sqlite", "":
		if !fileurl.IsExist(c.Path) {
			if err := fileurl.CreatePath(c.Path, os.ModePerm); err != nil {
				return nil, code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
			}
		}
		return sqlite.Open(c.Path + "?_pragma=busy_timeout(5000)"), nil
	}
	return nil, code.ErrorStoreUnavailable.Clone().WithDetails("unsupported database type " + c.Type)
}

// Ping 检查数据库是否可达
func (d *Dao) Ping(ctx context.Context) error {
	sqlDB, err := d.Db.DB()
	if err != nil {
		return code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
	}
	return nil
}

// ExecuteWrite runs fn in one transaction, serialized with every other write of key
// ExecuteWrite 在单个事务中执行 fn，并与同一 key 的其他写操作串行
func (d *Dao) ExecuteWrite(ctx context.Context, key string, fn func(tx *gorm.DB) error) error {
	run := func() error {
		if err := d.Ping(ctx); err != nil {
			return err
		}
		return d.Db.WithContext(ctx).Transaction(fn)
	}

	var err error
	if d.writeQueue != nil {
		err = d.writeQueue.Execute(ctx, key, run)
	} else {
		err = run()
	}
	return d.mapWriteError(key, err)
}

// ExecuteRead runs fn in one transaction so multi-statement reads see one state
// ExecuteRead 在单个事务中执行 fn，保证多条读语句看到同一状态
func (d *Dao) ExecuteRead(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if err := d.Ping(ctx); err != nil {
		return err
	}
	err := d.Db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	var c *code.Code
	if errors.As(err, &c) {
		return err
	}
	return code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
}

func (d *Dao) mapWriteError(key string, err error) error {
	if err == nil {
		return nil
	}
	var c *code.Code
	switch {
	case errors.As(err, &c):
		return err
	case errors.Is(err, writequeue.ErrWriteQueueClosed):
		return code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
	case errors.Is(err, writequeue.ErrWriteQueueFull), errors.Is(err, writequeue.ErrWriteTimeout):
		return code.ErrorWriteConflict.Clone().WithDetails(key, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}
	d.logger.Warn("write transaction failed", zap.String("collection", key), zap.Error(err))
	return code.ErrorWriteConflict.Clone().WithDetails(key, err.Error())
}

// forUpdate adds a row lock on dialects that support it; sqlite already
// serializes writers on its single connection
// forUpdate 在支持的方言上添加行锁，sqlite 单连接本身已串行写入
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
