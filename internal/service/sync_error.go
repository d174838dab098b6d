package service

import (
	"fmt"

	"github.com/echoapp/echo-sync-service/pkg/code"
)

// SyncError reports an upload that aborted a sync. Uploads before the failing
// one stay on the remote store.
// SyncError 表示导致同步中止的上传失败，失败之前已上传的文件保留在远端。
type SyncError struct {
	Collection string
	// Path is the remote path whose upload failed
	// Path 上传失败的远端路径
	Path      string
	Attempted int
	Uploaded  int
	Total     int
	Err       error

	code *code.Code
}

func newSyncError(collection, path string, attempted, uploaded, total int, err error) *SyncError {
	return &SyncError{
		Collection: collection,
		Path:       path,
		Attempted:  attempted,
		Uploaded:   uploaded,
		Total:      total,
		Err:        err,
		code:       code.ErrorSyncAborted.Clone().WithDetails(path),
	}
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync aborted at %s (%d/%d uploaded): %v", e.Path, e.Uploaded, e.Total, e.Err)
}

// Unwrap exposes both ErrorSyncAborted and the upload failure to errors.Is/As
// Unwrap 同时向 errors.Is/As 暴露 ErrorSyncAborted 与上传错误
func (e *SyncError) Unwrap() []error {
	return []error{e.code, e.Err}
}

// ResponseData is returned to API clients with the error envelope
// ResponseData 随错误响应返回给客户端
func (e *SyncError) ResponseData() interface{} {
	return map[string]interface{}{
		"collection": e.Collection,
		"path":       e.Path,
		"attempted":  e.Attempted,
		"uploaded":   e.Uploaded,
		"total":      e.Total,
	}
}
