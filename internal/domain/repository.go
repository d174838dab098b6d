package domain

import "context"

// RecordStore 本地记录存储接口
// Every call is one scoped acquisition: it opens, commits or rolls back, and
// releases its own session before returning
// 每次调用都是一次独立获取：在返回前自行打开、提交或回滚并释放会话
type RecordStore interface {
	// Initialize 初始化存储，已初始化时为空操作
	Initialize(ctx context.Context, seed *Snapshot) error

	// Create 创建记录并返回存储分配的 id，调用方传入的 id 会被忽略
	Create(ctx context.Context, c Collection, rec Record) (int64, error)

	// Read 读取集合中的全部记录（不含软删除的备忘录）
	Read(ctx context.Context, c Collection) ([]Record, error)

	// ReadAndCount 在同一读事务内读取全部记录与数量
	ReadAndCount(ctx context.Context, c Collection) ([]Record, int64, error)

	// ReadOne 读取单条记录，不存在时返回 nil, nil
	ReadOne(ctx context.Context, c Collection, id int64) (Record, error)

	// Update 合并补丁并刷新更新时间，不存在时返回 ErrorRecordNotFound
	Update(ctx context.Context, c Collection, id int64, patch Patch) (Record, error)

	// Delete 物理删除记录，不存在时返回 ErrorRecordNotFound
	Delete(ctx context.Context, c Collection, id int64) error

	// Count 获取集合记录数量
	Count(ctx context.Context, c Collection) (int64, error)

	// SoftDelete 软删除备忘录
	SoftDelete(ctx context.Context, id int64) (*Note, error)

	// PurgeDeleted 物理删除 before（毫秒）之前软删除的备忘录，返回删除数量
	PurgeDeleted(ctx context.Context, before int64) (int64, error)

	// Dump 读取全部集合（包含软删除的备忘录）
	Dump(ctx context.Context) (*Snapshot, error)
}

// SettingRepository 配置仓储接口
type SettingRepository interface {
	// Get 获取配置，不存在时返回 nil, nil
	Get(ctx context.Context, key string) (*Setting, error)

	// Save 创建或更新配置
	Save(ctx context.Context, key, value string) error

	// Delete 删除配置
	Delete(ctx context.Context, key string) error
}
