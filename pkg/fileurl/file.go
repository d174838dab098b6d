package fileurl

import (
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Entry is one item of a remote directory listing
// Entry 远端目录列表中的一项
type Entry struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	IsDir       bool      `json:"isDir"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"modTime"`
	ContentType string    `json:"contentType,omitempty"`
}

// IsExist determines if the given path exists
// IsExist 判断所给路径是否存在
func IsExist(dst string) bool {
	_, err := os.Stat(dst)
	if err != nil {
		return os.IsExist(err)
	}
	return true
}

// CreatePath creates the parent directory of dst
// CreatePath 创建 dst 的父目录
func CreatePath(dst string, perm os.FileMode) error {
	return os.MkdirAll(filepath.Dir(dst), perm)
}

// PathSuffixCheckAdd checks path suffix, adds it if not exists
// PathSuffixCheckAdd 检查路径后缀，如果没有则添加
func PathSuffixCheckAdd(path string, suffix string) string {
	if !strings.HasSuffix(path, suffix) {
		path = path + suffix
	}
	return path
}

// RemotePath joins a key under root and returns a cleaned absolute slash path
// RemotePath 将 key 拼接到 root 下并返回清理后的绝对路径
func RemotePath(root, key string) string {
	return path.Join("/", root, key)
}

// ObjectKey is RemotePath without the leading slash, used as bucket object key
// ObjectKey 去掉前导斜杠的 RemotePath，用作对象存储的 key
func ObjectKey(root, key string) string {
	return strings.TrimPrefix(RemotePath(root, key), "/")
}

// DirPrefix returns the listing prefix of a bucket "directory"
// DirPrefix 返回对象存储"目录"的列举前缀
func DirPrefix(root, dir string) string {
	p := ObjectKey(root, dir)
	if p == "" {
		return ""
	}
	return PathSuffixCheckAdd(p, "/")
}
