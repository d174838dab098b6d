package model

import (
	"github.com/echoapp/echo-sync-service/internal/domain"

	"gorm.io/gorm"
)

// Tables 每个集合对应的表模型
var Tables = map[domain.Collection]interface{}{
	domain.CollectionMemos:     &Memo{},
	domain.CollectionFiles:     &File{},
	domain.CollectionHistory:   &History{},
	domain.CollectionLinks:     &Link{},
	domain.CollectionRevisions: &MemoContentHistory{},
	domain.CollectionTags:      &Tag{},
}

// AutoMigrate migrates one table by key; "all" migrates every table
// AutoMigrate 按 key 迁移单张表，"all" 迁移全部表
func AutoMigrate(db *gorm.DB, key string) error {
	switch key {
	case "Sequence":
		return db.AutoMigrate(&Sequence{})
	case "StoreMeta":
		return db.AutoMigrate(&StoreMeta{})
	case "Setting":
		return db.AutoMigrate(&Setting{})
	case "all":
		models := []interface{}{&Sequence{}, &StoreMeta{}, &Setting{}}
		for _, c := range domain.Collections {
			models = append(models, Tables[c])
		}
		return db.AutoMigrate(models...)
	}
	if m, ok := Tables[domain.Collection(key)]; ok {
		return db.AutoMigrate(m)
	}
	return nil
}
