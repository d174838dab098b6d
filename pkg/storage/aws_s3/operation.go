package aws_s3

import (
	"bytes"
	"context"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/fileurl"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager"
	tmtypes "github.com/aws/aws-sdk-go-v2/feature/s3/transfermanager/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (p *S3) GetBucket(bucketName string) string {
	if len(bucketName) <= 0 {
		bucketName = p.Config.BucketName
	}
	return bucketName
}

// MkdirAll is a no-op: bucket "directories" exist as key prefixes
// MkdirAll 为空操作：对象存储的"目录"即 key 前缀
func (p *S3) MkdirAll(ctx context.Context, dir string) error {
	return ctx.Err()
}

func (p *S3) SendContent(ctx context.Context, fileKey string, content []byte, modTime time.Time) (string, error) {
	bucket := p.GetBucket("")
	fileKey = fileurl.ObjectKey(p.Config.CustomPath, fileKey)

	input := &transfermanager.UploadObjectInput{
		Bucket:            aws.String(bucket),
		Key:               aws.String(fileKey),
		Body:              bytes.NewReader(content),
		ChecksumAlgorithm: tmtypes.ChecksumAlgorithmSha256,
	}
	if ct := mime.TypeByExtension(path.Ext(fileKey)); ct != "" {
		input.ContentType = aws.String(ct)
	}
	if !modTime.IsZero() {
		input.Metadata = map[string]string{
			"modification-time": modTime.Format(time.RFC3339),
		}
	}

	if _, err := p.TransferManager.UploadObject(ctx, input); err != nil {
		var noBucket *types.NoSuchBucket
		if errors.As(err, &noBucket) {
			p.logger.Warn("bucket does not exist", zap.String("bucket", bucket))
		}
		return "", errors.Wrap(err, "aws_s3")
	}

	return fileurl.PathSuffixCheckAdd(bucket, "/") + fileKey, nil
}

func (p *S3) ReadContent(ctx context.Context, fileKey string) ([]byte, error) {
	out, err := p.S3Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.GetBucket("")),
		Key:    aws.String(fileurl.ObjectKey(p.Config.CustomPath, fileKey)),
	})
	if err != nil {
		return nil, errors.Wrap(err, "aws_s3")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	return data, errors.Wrap(err, "aws_s3")
}

func (p *S3) List(ctx context.Context, dir string) ([]fileurl.Entry, error) {
	prefix := fileurl.DirPrefix(p.Config.CustomPath, dir)
	paginator := s3.NewListObjectsV2Paginator(p.S3Client, &s3.ListObjectsV2Input{
		Bucket:    aws.String(p.GetBucket("")),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	})

	var entries []fileurl.Entry
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "aws_s3")
		}
		for _, cp := range page.CommonPrefixes {
			name := path.Base(strings.TrimSuffix(aws.ToString(cp.Prefix), "/"))
			entries = append(entries, fileurl.Entry{
				Name:  name,
				Path:  path.Join("/", dir, name),
				IsDir: true,
			})
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if key == prefix {
				continue
			}
			name := path.Base(key)
			entries = append(entries, fileurl.Entry{
				Name:    name,
				Path:    path.Join("/", dir, name),
				Size:    aws.ToInt64(obj.Size),
				ModTime: aws.ToTime(obj.LastModified),
			})
		}
	}
	return entries, nil
}

func (p *S3) Delete(ctx context.Context, fileKey string) error {
	_, err := p.S3Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.GetBucket("")),
		Key:    aws.String(fileurl.ObjectKey(p.Config.CustomPath, fileKey)),
	})
	return errors.Wrap(err, "aws_s3")
}
