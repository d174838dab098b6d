package model

import "github.com/echoapp/echo-sync-service/pkg/timex"

const TableNameSequence = "store_sequence"
const TableNameStoreMeta = "store_meta"
const TableNameSetting = "setting"

// Sequence mapped from table <store_sequence>; LastID only ever grows
// Sequence 映射表 <store_sequence>，LastID 只增不减
type Sequence struct {
	Collection string `gorm:"column:collection;primaryKey;size:64" json:"collection" form:"collection"`
	LastID     int64  `gorm:"column:last_id;not null;default:0" json:"last_id" form:"last_id"`
}

// TableName Sequence's table name
func (*Sequence) TableName() string {
	return TableNameSequence
}

// StoreMeta mapped from table <store_meta>; its single row marks an initialized store
// StoreMeta 映射表 <store_meta>，唯一的一行表示存储已初始化
type StoreMeta struct {
	ID            int64      `gorm:"column:id;primaryKey;autoIncrement:false" json:"id" form:"id"`
	SchemaVersion int        `gorm:"column:schema_version;not null;default:1" json:"schema_version" form:"schema_version"`
	InitializedAt timex.Time `gorm:"column:initialized_at" json:"initialized_at" form:"initialized_at"`
}

// TableName StoreMeta's table name
func (*StoreMeta) TableName() string {
	return TableNameStoreMeta
}

// Setting mapped from table <setting>
type Setting struct {
	ID        int64      `gorm:"column:id;primaryKey" json:"id" form:"id"`
	Key       string     `gorm:"column:setting_key;size:128;not null;uniqueIndex:idx_setting_key" json:"key" form:"key"`
	Value     string     `gorm:"column:value;type:text" json:"value" form:"value"`
	CreatedAt timex.Time `gorm:"column:created_at;autoCreateTime:false" json:"createdAt" form:"createdAt"`
	UpdatedAt timex.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt" form:"updatedAt"`
}

// TableName Setting's table name
func (*Setting) TableName() string {
	return TableNameSetting
}
