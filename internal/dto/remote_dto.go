package dto

import "github.com/echoapp/echo-sync-service/pkg/fileurl"

// RemoteConfigDTO WebDAV 远端配置
type RemoteConfigDTO struct {
	ServerURL  string `json:"serverUrl" binding:"required,url"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Configured bool   `json:"configured"`
}

// RemotePathRequest 远端路径请求参数
type RemotePathRequest struct {
	Path string `json:"path" form:"path"`
}

// RemoteFilePutRequest 远端文件写入请求参数
type RemoteFilePutRequest struct {
	Path    string `json:"path" form:"path" binding:"required"`
	Content string `json:"content" form:"content"`
}

// RemoteFileDTO 远端文件内容
type RemoteFileDTO struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Size    int    `json:"size"`
}

// RemoteListDTO 远端目录列表
type RemoteListDTO struct {
	Path    string          `json:"path"`
	Entries []fileurl.Entry `json:"entries"`
}
