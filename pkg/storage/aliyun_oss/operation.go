package aliyun_oss

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/fileurl"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/pkg/errors"
)

func (p *OSS) GetBucket(bucketName string) error {
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	var err error
	p.Bucket, err = p.Client.Bucket(bucketName)
	return err
}

func (p *OSS) bucket() (*oss.Bucket, error) {
	if p.Bucket == nil {
		if err := p.GetBucket(""); err != nil {
			return nil, errors.Wrap(err, "aliyun_oss")
		}
	}
	return p.Bucket, nil
}

// MkdirAll is a no-op: bucket "directories" exist as key prefixes
// MkdirAll 为空操作：对象存储的"目录"即 key 前缀
func (p *OSS) MkdirAll(ctx context.Context, dir string) error {
	return ctx.Err()
}

func (p *OSS) SendContent(ctx context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	b, err := p.bucket()
	if err != nil {
		return "", err
	}
	fileKey = fileurl.ObjectKey(p.Config.CustomPath, fileKey)

	options := []oss.Option{oss.WithContext(ctx)}
	if ct := mime.TypeByExtension(path.Ext(fileKey)); ct != "" {
		options = append(options, oss.ContentType(ct))
	}
	if !modTime.IsZero() {
		options = append(options, oss.Meta("modification-time", modTime.Format(time.RFC3339)))
	}

	if err := b.PutObject(fileKey, bytes.NewReader(content), options...); err != nil {
		return "", errors.Wrap(err, "aliyun_oss")
	}
	return fileKey, nil
}

func (p *OSS) ReadContent(ctx context.Context, fileKey string) ([]byte, error) {
	b, err := p.bucket()
	if err != nil {
		return nil, err
	}
	body, err := b.GetObject(fileurl.ObjectKey(p.Config.CustomPath, fileKey), oss.WithContext(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "aliyun_oss")
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	return data, errors.Wrap(err, "aliyun_oss")
}

func (p *OSS) List(ctx context.Context, dir string) ([]fileurl.Entry, error) {
	b, err := p.bucket()
	if err != nil {
		return nil, err
	}
	prefix := fileurl.DirPrefix(p.Config.CustomPath, dir)

	var entries []fileurl.Entry
	token := ""
	for {
		options := []oss.Option{oss.Prefix(prefix), oss.Delimiter("/"), oss.WithContext(ctx)}
		if token != "" {
			options = append(options, oss.ContinuationToken(token))
		}
		res, err := b.ListObjectsV2(options...)
		if err != nil {
			return nil, errors.Wrap(err, "aliyun_oss")
		}
		for _, cp := range res.CommonPrefixes {
			name := path.Base(strings.TrimSuffix(cp, "/"))
			entries = append(entries, fileurl.Entry{Name: name, Path: path.Join("/", dir, name), IsDir: true})
		}
		for _, obj := range res.Objects {
			if obj.Key == prefix {
				continue
			}
			name := path.Base(obj.Key)
			entries = append(entries, fileurl.Entry{
				Name:    name,
				Path:    path.Join("/", dir, name),
				Size:    obj.Size,
				ModTime: obj.LastModified,
			})
		}
		if !res.IsTruncated {
			break
		}
		token = res.NextContinuationToken
	}
	return entries, nil
}

func (p *OSS) Delete(ctx context.Context, fileKey string) error {
	b, err := p.bucket()
	if err != nil {
		return err
	}
	return errors.Wrap(b.DeleteObject(fileurl.ObjectKey(p.Config.CustomPath, fileKey), oss.WithContext(ctx)), "aliyun_oss")
}
