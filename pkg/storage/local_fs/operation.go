package local_fs

import (
	"context"
	"os"
	"path"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/fileurl"

	"github.com/pkg/errors"
)

func (p *LocalFS) MkdirAll(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.Wrap(os.MkdirAll(p.getSavePath(dir), 0754), "local_fs")
}

// SendContent 写入内容到本地文件，modTime 非零时同步修改时间
func (p *LocalFS) SendContent(ctx context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	dstFileKey := p.getSavePath(fileKey)

	if err := fileurl.CreatePath(dstFileKey, 0754); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if err := os.WriteFile(dstFileKey, content, 0644); err != nil {
		return "", errors.Wrap(err, "local_fs")
	}
	if !modTime.IsZero() {
		if err := os.Chtimes(dstFileKey, modTime, modTime); err != nil {
			return "", errors.Wrap(err, "local_fs")
		}
	}
	return dstFileKey, nil
}

func (p *LocalFS) ReadContent(ctx context.Context, fileKey string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.getSavePath(fileKey))
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}
	return data, nil
}

func (p *LocalFS) List(ctx context.Context, dir string) ([]fileurl.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, err := os.ReadDir(p.getSavePath(dir))
	if err != nil {
		return nil, errors.Wrap(err, "local_fs")
	}

	entries := make([]fileurl.Entry, 0, len(items))
	for _, item := range items {
		info, err := item.Info()
		if err != nil {
			continue
		}
		entries = append(entries, fileurl.Entry{
			Name:    item.Name(),
			Path:    path.Join("/", dir, item.Name()),
			IsDir:   item.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

func (p *LocalFS) Delete(ctx context.Context, fileKey string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// "/" is the mirror root under any custom path
	if path.Clean("/"+fileKey) == "/" {
		return errors.New("local_fs: refusing to delete the save path root")
	}
	dstFileKey := p.getSavePath(fileKey)
	if fileurl.IsExist(dstFileKey) {
		return errors.Wrap(os.RemoveAll(dstFileKey), "local_fs")
	}
	return nil
}
