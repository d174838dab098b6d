package domain

import "time"

// SettingKeyWebDAVConfig 远端 WebDAV 配置的存储键
const SettingKeyWebDAVConfig = "webdav_config"

// Setting 配置领域模型
type Setting struct {
	Key       string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
