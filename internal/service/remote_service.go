package service

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/echoapp/echo-sync-service/internal/dto"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/logger"
	"github.com/echoapp/echo-sync-service/pkg/util"

	"go.uber.org/zap"
)

// RemoteService 远端存储浏览服务
type RemoteService interface {
	// List 列出目录
	List(ctx context.Context, dir string) (*dto.RemoteListDTO, error)

	// ReadFile 以文本形式读取文件
	ReadFile(ctx context.Context, p string) (*dto.RemoteFileDTO, error)

	// MakeDir 创建目录
	MakeDir(ctx context.Context, dir string) error

	// WriteFile 上传文件
	WriteFile(ctx context.Context, p string, content []byte) (string, error)

	// Delete 删除文件或目录
	Delete(ctx context.Context, p string) error
}

type remoteService struct {
	remote RemoteConfigService
	clock  Clock
	logger *zap.Logger
}

// NewRemoteService 创建 RemoteService 实例
func NewRemoteService(remote RemoteConfigService, clock Clock, logger *zap.Logger) RemoteService {
	if clock == nil {
		clock = SystemClock
	}
	return &remoteService{remote: remote, clock: clock, logger: logger}
}

// cleanRemotePath validates p and returns its absolute cleaned form;
// allowRoot permits the root directory itself
func cleanRemotePath(p string, allowRoot bool) (string, error) {
	if !util.ValidatePath(p) {
		return "", code.ErrorInvalidParams.Clone().WithDetails("path must not contain ..")
	}
	cleaned := path.Join("/", strings.TrimSpace(p))
	if cleaned == "/" && !allowRoot {
		return "", code.ErrorInvalidParams.Clone().WithDetails("path is required")
	}
	return cleaned, nil
}

// remoteError keeps typed errors and wraps everything else as ErrorRemoteOperation
func remoteError(err error) error {
	var c *code.Code
	if errors.As(err, &c) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return code.ErrorRemoteOperation.Clone().WithDetails(err.Error())
}

func (s *remoteService) List(ctx context.Context, dir string) (*dto.RemoteListDTO, error) {
	p, err := cleanRemotePath(dir, true)
	if err != nil {
		return nil, err
	}
	client, err := s.remote.Storage(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := client.List(ctx, p)
	if err != nil {
		return nil, remoteError(err)
	}
	return &dto.RemoteListDTO{Path: p, Entries: entries}, nil
}

func (s *remoteService) ReadFile(ctx context.Context, p string) (*dto.RemoteFileDTO, error) {
	p, err := cleanRemotePath(p, false)
	if err != nil {
		return nil, err
	}
	client, err := s.remote.Storage(ctx)
	if err != nil {
		return nil, err
	}
	data, err := client.ReadContent(ctx, p)
	if err != nil {
		return nil, remoteError(err)
	}
	return &dto.RemoteFileDTO{Path: p, Content: string(data), Size: len(data)}, nil
}

func (s *remoteService) MakeDir(ctx context.Context, dir string) error {
	p, err := cleanRemotePath(dir, false)
	if err != nil {
		return err
	}
	client, err := s.remote.Storage(ctx)
	if err != nil {
		return err
	}
	if err := client.MkdirAll(ctx, p); err != nil {
		return remoteError(err)
	}
	return nil
}

func (s *remoteService) WriteFile(ctx context.Context, p string, content []byte) (string, error) {
	p, err := cleanRemotePath(p, false)
	if err != nil {
		return "", err
	}
	client, err := s.remote.Storage(ctx)
	if err != nil {
		return "", err
	}
	if dir := path.Dir(p); dir != "/" {
		if err := client.MkdirAll(ctx, dir); err != nil {
			return "", remoteError(err)
		}
	}
	saved, err := client.SendContent(ctx, p, content, s.clock.Now())
	if err != nil {
		return "", remoteError(err)
	}
	s.logger.Debug("remote file written", zap.String(logger.FieldPath, saved), zap.Int(logger.FieldSize, len(content)))
	return saved, nil
}

func (s *remoteService) Delete(ctx context.Context, p string) error {
	p, err := cleanRemotePath(p, false)
	if err != nil {
		return err
	}
	client, err := s.remote.Storage(ctx)
	if err != nil {
		return err
	}
	if err := client.Delete(ctx, p); err != nil {
		return remoteError(err)
	}
	return nil
}

