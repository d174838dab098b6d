package model

const TableNameFile = "files"

// File mapped from table <files>
type File struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id" form:"id"`
	CreatorID    int64  `gorm:"column:creator_id;not null;default:0" json:"creator_id" form:"creator_id"`
	MemoID       int64  `gorm:"column:memo_id;not null;default:0;index:idx_files_memo_id" json:"memo_id" form:"memo_id"`
	Name         string `gorm:"column:name;size:255" json:"name" form:"name"`
	Type         string `gorm:"column:type;size:128" json:"type" form:"type"`
	Size         int64  `gorm:"column:size;not null;default:0" json:"size" form:"size"`
	Path         string `gorm:"column:path;type:text" json:"path" form:"path"`
	URL          string `gorm:"column:url;type:text" json:"url" form:"url"`
	ThumbnailURL string `gorm:"column:thumbnail_url;type:text" json:"thumbnail_url" form:"thumbnail_url"`
}

// TableName File's table name
func (*File) TableName() string {
	return TableNameFile
}
