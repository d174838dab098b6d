package model

const TableNameTag = "tags"

// Tag mapped from table <tags>
type Tag struct {
	ID           int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id" form:"id"`
	Name         string `gorm:"column:name;size:255;index:idx_tags_name" json:"name" form:"name"`
	Count        int64  `gorm:"column:count;not null;default:0" json:"count" form:"count"`
	LatestUsedAt int64  `gorm:"column:latest_used_at;not null;default:0" json:"latest_used_at" form:"latest_used_at"`
}

// TableName Tag's table name
func (*Tag) TableName() string {
	return TableNameTag
}
