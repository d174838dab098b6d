package model

const TableNameMemo = "memos"

// Memo mapped from table <memos>
type Memo struct {
	ID                 int64            `gorm:"column:id;primaryKey;autoIncrement:false" json:"id" form:"id"`
	Content            string           `gorm:"column:content;type:text" json:"content" form:"content"`
	CreatorID          int64            `gorm:"column:creator_id;not null;default:1" json:"creator_id" form:"creator_id"`
	Source             string           `gorm:"column:source;size:64" json:"source" form:"source"`
	Tags               JSONList[string] `gorm:"column:tags" json:"tags" form:"tags"`
	Pin                int              `gorm:"column:pin;not null;default:0" json:"pin" form:"pin"`
	Slug               string           `gorm:"column:slug;size:255;index:idx_memos_slug" json:"slug" form:"slug"`
	CreatedAt          string           `gorm:"column:created_at;size:32;autoCreateTime:false" json:"created_at" form:"created_at"`
	CreatedAtLong      int64            `gorm:"column:created_at_long;not null;default:0;index:idx_memos_created_at_long" json:"created_at_long" form:"created_at_long"`
	UpdatedAt          string           `gorm:"column:updated_at;size:32;autoUpdateTime:false" json:"updated_at" form:"updated_at"`
	UpdatedAtLong      int64            `gorm:"column:updated_at_long;not null;default:0" json:"updated_at_long" form:"updated_at_long"`
	LocalUpdatedAt     string           `gorm:"column:local_updated_at;size:32" json:"local_updated_at" form:"local_updated_at"`
	LocalUpdatedAtLong int64            `gorm:"column:local_updated_at_long;not null;default:0" json:"local_updated_at_long" form:"local_updated_at_long"`
	DeletedAt          *string          `gorm:"column:deleted_at;size:32" json:"deleted_at" form:"deleted_at"`
	DeletedAtLong      int64            `gorm:"column:deleted_at_long;not null;default:0;index:idx_memos_deleted_at_long" json:"deleted_at_long" form:"deleted_at_long"`
	LinkedCount        int64            `gorm:"column:linked_count;not null;default:0" json:"linked_count" form:"linked_count"`
	Files              JSONList[int64]  `gorm:"column:files" json:"files" form:"files"`
	Links              JSONList[string] `gorm:"column:links" json:"links" form:"links"`
	LinkedMemos        JSONList[int64]  `gorm:"column:linked_memos" json:"linked_memos" form:"linked_memos"`
}

// TableName Memo's table name
func (*Memo) TableName() string {
	return TableNameMemo
}
