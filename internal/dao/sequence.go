package dao

import (
	"errors"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/model"

	"gorm.io/gorm"
)

// loadSequence returns the locked sequence row of c, creating it from the
// table's current max id when missing
// loadSequence 返回加锁的集合序列行，不存在时按表内最大 id 创建
func loadSequence(tx *gorm.DB, c domain.Collection, t table) (*model.Sequence, error) {
	var seq model.Sequence
	err := forUpdate(tx).Where("collection = ?", string(c)).Take(&seq).Error
	if err == nil {
		return &seq, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	max, err := t.maxID(tx)
	if err != nil {
		return nil, err
	}
	seq = model.Sequence{Collection: string(c), LastID: max}
	if err := tx.Create(&seq).Error; err != nil {
		return nil, err
	}
	return &seq, nil
}

// nextID 分配下一个 id，id 严格递增且不会复用
func nextID(tx *gorm.DB, c domain.Collection, t table) (int64, error) {
	seq, err := loadSequence(tx, c, t)
	if err != nil {
		return 0, err
	}
	seq.LastID++
	if err := tx.Model(&model.Sequence{}).Where("collection = ?", seq.Collection).Update("last_id", seq.LastID).Error; err != nil {
		return 0, err
	}
	return seq.LastID, nil
}

// bumpSequence raises the sequence of c to at least floor
// bumpSequence 将集合序列提升到不小于 floor
func bumpSequence(tx *gorm.DB, c domain.Collection, t table, floor int64) error {
	seq, err := loadSequence(tx, c, t)
	if err != nil {
		return err
	}
	if seq.LastID >= floor {
		return nil
	}
	return tx.Model(&model.Sequence{}).Where("collection = ?", seq.Collection).Update("last_id", floor).Error
}
