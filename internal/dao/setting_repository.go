package dao

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/model"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/timex"

	"gorm.io/gorm"
)

const settingWriteKey = "setting"

// settingRepository 实现 domain.SettingRepository 接口
type settingRepository struct {
	dao      *Dao
	migrated sync.Once
	err      error
}

// NewSettingRepository 创建 SettingRepository 实例
func NewSettingRepository(dao *Dao) domain.SettingRepository {
	return &settingRepository{dao: dao}
}

func (r *settingRepository) ensureTable(ctx context.Context) error {
	r.migrated.Do(func() {
		if err := model.AutoMigrate(r.dao.Db.WithContext(ctx), "Setting"); err != nil {
			r.err = code.ErrorStoreUnavailable.Clone().WithDetails(err.Error())
		}
	})
	return r.err
}

func (r *settingRepository) toDomain(m *model.Setting) *domain.Setting {
	return &domain.Setting{
		Key:       m.Key,
		Value:     m.Value,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// Get 获取配置，不存在时返回 nil, nil
func (r *settingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	var out *domain.Setting
	err := r.dao.ExecuteRead(ctx, func(tx *gorm.DB) error {
		var m model.Setting
		err := tx.Where("setting_key = ?", key).Take(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out = r.toDomain(&m)
		return nil
	})
	return out, err
}

// Save 创建或更新配置
func (r *settingRepository) Save(ctx context.Context, key, value string) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	return r.dao.ExecuteWrite(ctx, settingWriteKey, func(tx *gorm.DB) error {
		now := timex.Now()
		var m model.Setting
		err := forUpdate(tx).Where("setting_key = ?", key).Take(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&model.Setting{Key: key, Value: value, CreatedAt: now, UpdatedAt: now}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&model.Setting{}).Where("id = ?", m.ID).Updates(map[string]interface{}{
			"value":      value,
			"updated_at": now,
		}).Error
	})
}

// Delete 删除配置
func (r *settingRepository) Delete(ctx context.Context, key string) error {
	if err := r.ensureTable(ctx); err != nil {
		return err
	}
	return r.dao.ExecuteWrite(ctx, settingWriteKey, func(tx *gorm.DB) error {
		return tx.Where("setting_key = ?", key).Delete(&model.Setting{}).Error
	})
}
