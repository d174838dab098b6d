// operation.go

package webdav

import (
	"context"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/fileurl"

	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

func (w *WebDAV) fullPath(key string) string {
	return fileurl.RemotePath(w.Config.CustomPath, key)
}

// MkdirAll 在 WebDAV 服务器上递归创建目录，目录已存在视为成功
func (w *WebDAV) MkdirAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := w.Client.MkdirAll(w.fullPath(dir), 0755)
	if err != nil && !gowebdav.IsErrCode(err, http.StatusMethodNotAllowed) {
		return errors.Wrap(err, "webdav")
	}
	return nil
}

// SendContent 将二进制内容上传到 WebDAV 服务器
func (w *WebDAV) SendContent(ctx context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fileKey = w.fullPath(fileKey)

	err := w.Client.Write(fileKey, content, os.ModePerm)
	if err != nil {
		return "", errors.Wrap(err, "webdav")
	}

	return fileKey, nil
}

// ReadContent 读取远端文件内容
func (w *WebDAV) ReadContent(ctx context.Context, fileKey string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := w.Client.Read(w.fullPath(fileKey))
	if err != nil {
		return nil, errors.Wrap(err, "webdav")
	}
	return data, nil
}

// List 列出 WebDAV 服务器上的文件和目录
func (w *WebDAV) List(ctx context.Context, dir string) ([]fileurl.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := w.Client.ReadDir(w.fullPath(dir))
	if err != nil {
		return nil, errors.Wrap(err, "webdav")
	}

	entries := make([]fileurl.Entry, 0, len(files))
	for _, f := range files {
		e := fileurl.Entry{
			Name:    f.Name(),
			Path:    path.Join("/", dir, f.Name()),
			IsDir:   f.IsDir(),
			Size:    f.Size(),
			ModTime: f.ModTime(),
		}
		if ct, ok := f.(interface{ ContentType() string }); ok {
			e.ContentType = ct.ContentType()
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Delete 从 WebDAV 服务器删除文件或目录
func (w *WebDAV) Delete(ctx context.Context, fileKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Wrap(w.Client.RemoveAll(w.fullPath(fileKey)), "webdav")
}
