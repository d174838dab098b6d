package dao

import (
	"errors"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/model"

	"gorm.io/gorm"
)

// table is the per-collection persistence of one entity type
// table 单个集合实体类型的持久化
type table interface {
	list(tx *gorm.DB, admin bool) ([]domain.Record, error)
	count(tx *gorm.DB, admin bool) (int64, error)
	// get returns nil, nil on miss
	get(tx *gorm.DB, id int64, admin, lock bool) (domain.Record, error)
	insert(tx *gorm.DB, recs ...domain.Record) error
	save(tx *gorm.DB, rec domain.Record) error
	delete(tx *gorm.DB, id int64) (int64, error)
	maxID(tx *gorm.DB) (int64, error)
}

type collectionTable[M any, R domain.Record] struct {
	toDomain func(*M) R
	toModel  func(R) *M
	// scope hides records from non-administrative reads
	scope func(*gorm.DB) *gorm.DB
}

func (t *collectionTable[M, R]) query(tx *gorm.DB, admin bool) *gorm.DB {
	q := tx.Model(new(M))
	if !admin && t.scope != nil {
		q = q.Scopes(t.scope)
	}
	return q
}

func (t *collectionTable[M, R]) list(tx *gorm.DB, admin bool) ([]domain.Record, error) {
	var rows []*M
	if err := t.query(tx, admin).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Record, 0, len(rows))
	for _, m := range rows {
		out = append(out, t.toDomain(m))
	}
	return out, nil
}

func (t *collectionTable[M, R]) count(tx *gorm.DB, admin bool) (int64, error) {
	var n int64
	err := t.query(tx, admin).Count(&n).Error
	return n, err
}

func (t *collectionTable[M, R]) get(tx *gorm.DB, id int64, admin, lock bool) (domain.Record, error) {
	q := t.query(tx, admin)
	if lock {
		q = forUpdate(q)
	}
	var m M
	err := q.Where("id = ?", id).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t.toDomain(&m), nil
}

func (t *collectionTable[M, R]) insert(tx *gorm.DB, recs ...domain.Record) error {
	if len(recs) == 0 {
		return nil
	}
	rows := make([]*M, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, t.toModel(r.(R)))
	}
	return tx.CreateInBatches(rows, 100).Error
}

func (t *collectionTable[M, R]) save(tx *gorm.DB, rec domain.Record) error {
	return tx.Save(t.toModel(rec.(R))).Error
}

func (t *collectionTable[M, R]) delete(tx *gorm.DB, id int64) (int64, error) {
	res := tx.Where("id = ?", id).Delete(new(M))
	return res.RowsAffected, res.Error
}

func (t *collectionTable[M, R]) maxID(tx *gorm.DB) (int64, error) {
	var max int64
	err := tx.Model(new(M)).Select("COALESCE(MAX(id), 0)").Scan(&max).Error
	return max, err
}

// notDeleted 排除已软删除的备忘录
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at_long = ? AND deleted_at IS NULL", 0)
}

func newTables() map[domain.Collection]table {
	return map[domain.Collection]table{
		domain.CollectionMemos: &collectionTable[model.Memo, *domain.Note]{
			toDomain: memoToDomain, toModel: memoToModel, scope: notDeleted,
		},
		domain.CollectionFiles: &collectionTable[model.File, *domain.Attachment]{
			toDomain: fileToDomain, toModel: fileToModel,
		},
		domain.CollectionHistory: &collectionTable[model.History, *domain.HistoryEntry]{
			toDomain: historyToDomain, toModel: historyToModel,
		},
		domain.CollectionLinks: &collectionTable[model.Link, *domain.LinkEntry]{
			toDomain: linkToDomain, toModel: linkToModel,
		},
		domain.CollectionRevisions: &collectionTable[model.MemoContentHistory, *domain.ContentRevision]{
			toDomain: revisionToDomain, toModel: revisionToModel,
		},
		domain.CollectionTags: &collectionTable[model.Tag, *domain.Tag]{
			toDomain: tagToDomain, toModel: tagToModel,
		},
	}
}
