package storage

import (
	"context"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/fileurl"
	"github.com/echoapp/echo-sync-service/pkg/storage/aliyun_oss"
	"github.com/echoapp/echo-sync-service/pkg/storage/aws_s3"
	"github.com/echoapp/echo-sync-service/pkg/storage/local_fs"
	"github.com/echoapp/echo-sync-service/pkg/storage/webdav"

	"go.uber.org/zap"
)

type Type = string
type CloudType = Type

const OSS CloudType = "oss"
const R2 CloudType = "r2"
const S3 CloudType = "s3"
const LOCAL Type = "localfs"
const MinIO CloudType = "minio"
const WebDAV CloudType = "webdav"

var StorageTypeMap = map[Type]bool{
	OSS:    true,
	R2:     true,
	S3:     true,
	LOCAL:  true,
	MinIO:  true,
	WebDAV: true,
}

var CloudStorageTypeMap = map[Type]bool{
	OSS:   true,
	R2:    true,
	S3:    true,
	MinIO: true,
}

// Config Unified storage configuration
// Config 统一存储配置
type Config struct {
	Type Type `yaml:"type" default:"webdav"`

	// Common settings
	CustomPath string `yaml:"custom-path"`

	// Cloud Storage (S3/OSS/MinIO/R2)
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	BucketName      string `yaml:"bucket-name"`
	AccessKeyID     string `yaml:"access-key-id"`
	AccessKeySecret string `yaml:"access-key-secret"`
	AccountID       string `yaml:"account-id"` // Cloudflare R2 specific

	// WebDAV
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	// Local FS
	SavePath string `yaml:"save-path" default:"storage/remote"`
}

// Storager is the hierarchical byte-blob target used by sync and remote browsing
// Storager 是同步与远端浏览使用的层级化字节存储目标
type Storager interface {
	// MkdirAll creates dir and its parents; an existing directory is not an error
	// MkdirAll 创建目录及其父目录，已存在不视为错误
	MkdirAll(ctx context.Context, dir string) error
	// SendContent writes content at pathKey and returns the stored path
	// SendContent 在 pathKey 写入内容并返回存储路径
	SendContent(ctx context.Context, pathKey string, content []byte, modTime time.Time) (string, error)
	ReadContent(ctx context.Context, pathKey string) ([]byte, error)
	List(ctx context.Context, dir string) ([]fileurl.Entry, error)
	Delete(ctx context.Context, pathKey string) error
}

// NewClient creates the Storager selected by config.Type
// NewClient 根据 config.Type 创建对应的 Storager
func NewClient(config *Config, logger *zap.Logger) (Storager, error) {
	if config == nil {
		return nil, code.ErrorInvalidStorageType
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	switch config.Type {
	case LOCAL:
		return local_fs.NewClient(&local_fs.Config{
			SavePath:   config.SavePath,
			CustomPath: config.CustomPath,
		})
	case OSS:
		return aliyun_oss.NewClient(&aliyun_oss.Config{
			Endpoint:        config.Endpoint,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		})
	case S3, MinIO, R2:
		cfg := &aws_s3.Config{
			Endpoint:        config.Endpoint,
			Region:          config.Region,
			BucketName:      config.BucketName,
			AccessKeyID:     config.AccessKeyID,
			AccessKeySecret: config.AccessKeySecret,
			CustomPath:      config.CustomPath,
		}
		switch config.Type {
		case MinIO:
			cfg.UsePathStyle = true
		case R2:
			cfg.Endpoint = "https://" + config.AccountID + ".r2.cloudflarestorage.com"
			cfg.Region = "auto"
		}
		return aws_s3.NewClient(cfg, aws_s3.WithLogger(logger.Named(config.Type)))
	case WebDAV:
		return webdav.NewClient(&webdav.Config{
			Endpoint:   config.Endpoint,
			User:       config.User,
			Password:   config.Password,
			CustomPath: config.CustomPath,
		})
	}
	return nil, code.ErrorInvalidStorageType
}
