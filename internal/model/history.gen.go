package model

const TableNameHistory = "history"

// History mapped from table <history>
type History struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id" form:"id"`
	Slug      string `gorm:"column:slug;size:255;index:idx_history_slug" json:"slug" form:"slug"`
	Content   string `gorm:"column:content;type:text" json:"content" form:"content"`
	Timestamp int64  `gorm:"column:timestamp;not null;default:0" json:"timestamp" form:"timestamp"`
}

// TableName History's table name
func (*History) TableName() string {
	return TableNameHistory
}
