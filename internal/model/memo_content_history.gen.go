package model

const TableNameMemoContentHistory = "memo_content_histories"

// MemoContentHistory mapped from table <memo_content_histories>
type MemoContentHistory struct {
	ID        int64   `gorm:"column:id;primaryKey;autoIncrement:false" json:"id" form:"id"`
	Slug      string  `gorm:"column:slug;size:255;index:idx_memo_content_histories_slug" json:"slug" form:"slug"`
	Hash      int64   `gorm:"column:hash;not null;default:0" json:"hash" form:"hash"`
	UpdatedAt *string `gorm:"column:updated_at;size:32;autoUpdateTime:false" json:"updated_at" form:"updated_at"`
}

// TableName MemoContentHistory's table name
func (*MemoContentHistory) TableName() string {
	return TableNameMemoContentHistory
}
