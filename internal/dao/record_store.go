package dao

import (
	"context"
	"strconv"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/model"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// storeWriteKey serializes store-wide writes (initialize, purge)
const storeWriteKey = "store"

// recordStore 实现 domain.RecordStore 接口
type recordStore struct {
	dao    *Dao
	tables map[domain.Collection]table
	now    func() int64
}

// NewRecordStore 创建 RecordStore 实例
func NewRecordStore(dao *Dao) domain.RecordStore {
	return &recordStore{
		dao:    dao,
		tables: newTables(),
		now:    nowMillis,
	}
}

func (r *recordStore) table(c domain.Collection) (table, error) {
	t, ok := r.tables[c]
	if !ok {
		return nil, code.ErrorCollectionNotFound.Clone().WithDetails(string(c))
	}
	return t, nil
}

func recordRef(c domain.Collection, id int64) string {
	return string(c) + "/" + strconv.FormatInt(id, 10)
}

// Initialize 初始化存储，已初始化时为空操作
func (r *recordStore) Initialize(ctx context.Context, seed *domain.Snapshot) error {
	if err := r.dao.Ping(ctx); err != nil {
		return err
	}
	if err := model.AutoMigrate(r.dao.Db.WithContext(ctx), "all"); err != nil {
		return code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
	}
	if seed == nil {
		seed = domain.NewSnapshot()
	}

	return r.dao.ExecuteWrite(ctx, storeWriteKey, func(tx *gorm.DB) error {
		var marker int64
		if err := tx.Model(&model.StoreMeta{}).Count(&marker).Error; err != nil {
			return err
		}
		if marker > 0 {
			return nil
		}

		for _, c := range domain.Collections {
			t := r.tables[c]
			records := seed.Records(c)

			var max int64
			for _, rec := range records {
				if rec.GetID() > max {
					max = rec.GetID()
				}
			}
			// missing seed ids continue after the highest explicit one
			for _, rec := range records {
				if rec.GetID() <= 0 {
					max++
					rec.SetID(max)
				}
			}
			if err := t.insert(tx, records...); err != nil {
				return err
			}
			if err := bumpSequence(tx, c, t, max); err != nil {
				return err
			}
			r.dao.logger.Debug("collection seeded", zap.String("collection", string(c)), zap.Int("count", len(records)))
		}

		return tx.Create(&model.StoreMeta{ID: 1, SchemaVersion: 1, InitializedAt: timex.Now()}).Error
	})
}

// Create 创建记录，id 由序列分配
func (r *recordStore) Create(ctx context.Context, c domain.Collection, rec domain.Record) (int64, error) {
	t, err := r.table(c)
	if err != nil {
		return 0, err
	}
	if rec == nil || rec.Collection() != c {
		return 0, code.ErrorRecordTypeMismatch.Clone().WithDetails(string(c))
	}
	if n, ok := rec.(*domain.Note); ok {
		n.ApplyDefaults(r.now())
	}

	err = r.dao.ExecuteWrite(ctx, string(c), func(tx *gorm.DB) error {
		id, err := nextID(tx, c, t)
		if err != nil {
			return err
		}
		rec.SetID(id)
		return t.insert(tx, rec)
	})
	if err != nil {
		return 0, err
	}
	return rec.GetID(), nil
}

// Read 读取集合中的全部记录
func (r *recordStore) Read(ctx context.Context, c domain.Collection) ([]domain.Record, error) {
	t, err := r.table(c)
	if err != nil {
		return nil, err
	}
	var out []domain.Record
	err = r.dao.ExecuteRead(ctx, func(tx *gorm.DB) error {
		out, err = t.list(tx, false)
		return err
	})
	return out, err
}

// ReadAndCount 在同一读事务内读取全部记录与数量
func (r *recordStore) ReadAndCount(ctx context.Context, c domain.Collection) ([]domain.Record, int64, error) {
	t, err := r.table(c)
	if err != nil {
		return nil, 0, err
	}
	var (
		out   []domain.Record
		total int64
	)
	err = r.dao.ExecuteRead(ctx, func(tx *gorm.DB) error {
		if total, err = t.count(tx, false); err != nil {
			return err
		}
		out, err = t.list(tx, false)
		return err
	})
	return out, total, err
}

// ReadOne 读取单条记录，不存在时返回 nil, nil
func (r *recordStore) ReadOne(ctx context.Context, c domain.Collection, id int64) (domain.Record, error) {
	t, err := r.table(c)
	if err != nil {
		return nil, err
	}
	var out domain.Record
	err = r.dao.ExecuteRead(ctx, func(tx *gorm.DB) error {
		out, err = t.get(tx, id, false, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update 合并补丁并刷新更新时间
func (r *recordStore) Update(ctx context.Context, c domain.Collection, id int64, patch domain.Patch) (domain.Record, error) {
	t, err := r.table(c)
	if err != nil {
		return nil, err
	}
	if patch != nil && patch.Collection() != c {
		return nil, code.ErrorRecordTypeMismatch.Clone().WithDetails(string(patch.Collection()), string(c))
	}

	var out domain.Record
	err = r.dao.ExecuteWrite(ctx, string(c), func(tx *gorm.DB) error {
		rec, err := t.get(tx, id, false, true)
		if err != nil {
			return err
		}
		if rec == nil {
			return code.ErrorRecordNotFound.Clone().WithDetails(recordRef(c, id))
		}
		if err := domain.ApplyPatch(rec, patch); err != nil {
			return err
		}
		if tr, ok := rec.(domain.Toucher); ok {
			tr.Touch(r.now())
		}
		if err := t.save(tx, rec); err != nil {
			return err
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete 物理删除记录
func (r *recordStore) Delete(ctx context.Context, c domain.Collection, id int64) error {
	t, err := r.table(c)
	if err != nil {
		return err
	}
	return r.dao.ExecuteWrite(ctx, string(c), func(tx *gorm.DB) error {
		n, err := t.delete(tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return code.ErrorRecordNotFound.Clone().WithDetails(recordRef(c, id))
		}
		return nil
	})
}

// Count 获取集合记录数量
func (r *recordStore) Count(ctx context.Context, c domain.Collection) (int64, error) {
	t, err := r.table(c)
	if err != nil {
		return 0, err
	}
	var n int64
	err = r.dao.ExecuteRead(ctx, func(tx *gorm.DB) error {
		n, err = t.count(tx, false)
		return err
	})
	return n, err
}

// SoftDelete 软删除备忘录
func (r *recordStore) SoftDelete(ctx context.Context, id int64) (*domain.Note, error) {
	c := domain.CollectionMemos
	t := r.tables[c]

	var out *domain.Note
	err := r.dao.ExecuteWrite(ctx, string(c), func(tx *gorm.DB) error {
		rec, err := t.get(tx, id, false, true)
		if err != nil {
			return err
		}
		if rec == nil {
			return code.ErrorRecordNotFound.Clone().WithDetails(recordRef(c, id))
		}
		n := rec.(*domain.Note)
		n.MarkDeleted(r.now())
		if err := t.save(tx, n); err != nil {
			return err
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// PurgeDeleted 物理删除 before 之前软删除的备忘录
func (r *recordStore) PurgeDeleted(ctx context.Context, before int64) (int64, error) {
	var n int64
	err := r.dao.ExecuteWrite(ctx, string(domain.CollectionMemos), func(tx *gorm.DB) error {
		res := tx.Where("deleted_at_long > ? AND deleted_at_long < ?", 0, before).Delete(&model.Memo{})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}

// Dump 读取全部集合（包含软删除的备忘录）
func (r *recordStore) Dump(ctx context.Context) (*domain.Snapshot, error) {
	snap := domain.NewSnapshot()
	err := r.dao.ExecuteRead(ctx, func(tx *gorm.DB) error {
		for _, c := range domain.Collections {
			records, err := r.tables[c].list(tx, true)
			if err != nil {
				return err
			}
			if err := snap.Set(c, records); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}
