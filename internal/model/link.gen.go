package model

const TableNameLink = "links"

// Link mapped from table <links>
type Link struct {
	ID     int64  `gorm:"column:id;primaryKey;autoIncrement:false" json:"id" form:"id"`
	Source string `gorm:"column:source;type:text" json:"source" form:"source"`
	Link   string `gorm:"column:link;type:text" json:"link" form:"link"`
}

// TableName Link's table name
func (*Link) TableName() string {
	return TableNameLink
}
