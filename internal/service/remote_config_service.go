package service

import (
	"context"
	"strings"
	"sync"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/dto"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/storage"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

// RemoteConfigService 远端存储配置服务
// The resolved client is process wide and cached; Save invalidates it
// 解析出的客户端进程级缓存，Save 会使缓存失效
type RemoteConfigService interface {
	// Get 获取已保存的 WebDAV 配置
	Get(ctx context.Context) (*dto.RemoteConfigDTO, error)

	// Save 保存 WebDAV 配置并使客户端缓存失效
	Save(ctx context.Context, params *dto.RemoteConfigDTO) (*dto.RemoteConfigDTO, error)

	// IsConfigured 是否存在可用的远端配置
	IsConfigured(ctx context.Context) (bool, error)

	// Storage 获取当前远端存储客户端
	Storage(ctx context.Context) (storage.Storager, error)

	// Invalidate 丢弃缓存的客户端
	Invalidate()
}

// RemoteOptions 远端存储解析选项
type RemoteOptions struct {
	// Default is used when no WebDAV configuration has been saved
	// Default 未保存 WebDAV 配置时使用的默认远端
	Default storage.Config
	// ProxyUpstream is the WebDAV server fronted by the local proxy
	// ProxyUpstream 本地代理所代理的 WebDAV 服务地址
	ProxyUpstream string
	// ProxyURL is the local proxy base URL, e.g. http://127.0.0.1:9000/proxy
	// ProxyURL 本地代理的基础地址
	ProxyURL string
}

// webdavSetting is the persisted shape of the webdav_config setting
type webdavSetting struct {
	ServerURL string `json:"serverUrl"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type remoteConfigService struct {
	repo    domain.SettingRepository
	options RemoteOptions
	logger  *zap.Logger

	mu     sync.Mutex
	cached storage.Storager
}

// NewRemoteConfigService 创建 RemoteConfigService 实例
func NewRemoteConfigService(repo domain.SettingRepository, options RemoteOptions, logger *zap.Logger) RemoteConfigService {
	return &remoteConfigService{repo: repo, options: options, logger: logger}
}

func (s *remoteConfigService) load(ctx context.Context) (*webdavSetting, error) {
	setting, err := s.repo.Get(ctx, domain.SettingKeyWebDAVConfig)
	if err != nil {
		return nil, err
	}
	if setting == nil || setting.Value == "" {
		return nil, nil
	}
	var ws webdavSetting
	if err := sonic.ConfigStd.UnmarshalFromString(setting.Value, &ws); err != nil {
		return nil, code.ErrorServerInternal.Clone().WithDetails("invalid webdav_config: " + err.Error())
	}
	return &ws, nil
}

func (s *remoteConfigService) Get(ctx context.Context) (*dto.RemoteConfigDTO, error) {
	ws, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return &dto.RemoteConfigDTO{Configured: defaultConfigured(&s.options.Default)}, nil
	}
	return &dto.RemoteConfigDTO{
		ServerURL:  ws.ServerURL,
		Username:   ws.Username,
		Password:   ws.Password,
		Configured: ws.ServerURL != "",
	}, nil
}

func (s *remoteConfigService) Save(ctx context.Context, params *dto.RemoteConfigDTO) (*dto.RemoteConfigDTO, error) {
	ws := webdavSetting{
		ServerURL: strings.TrimSpace(params.ServerURL),
		Username:  params.Username,
		Password:  params.Password,
	}
	value, err := sonic.ConfigStd.MarshalToString(ws)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, domain.SettingKeyWebDAVConfig, value); err != nil {
		return nil, err
	}
	s.Invalidate()
	s.logger.Info("remote config saved", zap.String("serverUrl", ws.ServerURL))
	return &dto.RemoteConfigDTO{
		ServerURL:  ws.ServerURL,
		Username:   ws.Username,
		Password:   ws.Password,
		Configured: ws.ServerURL != "",
	}, nil
}

func (s *remoteConfigService) IsConfigured(ctx context.Context) (bool, error) {
	cfg, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	return cfg.Configured, nil
}

func (s *remoteConfigService) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

func (s *remoteConfigService) Storage(ctx context.Context) (storage.Storager, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	cfg, err := s.resolve(ctx)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(cfg, s.logger)
	if err != nil {
		return nil, err
	}
	s.cached = client
	return client, nil
}

func (s *remoteConfigService) resolve(ctx context.Context) (*storage.Config, error) {
	ws, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if ws != nil && ws.ServerURL != "" {
		return &storage.Config{
			Type:       storage.WebDAV,
			Endpoint:   MapProxyURL(ws.ServerURL, s.options.ProxyUpstream, s.options.ProxyURL),
			User:       ws.Username,
			Password:   ws.Password,
			CustomPath: s.options.Default.CustomPath,
		}, nil
	}
	if defaultConfigured(&s.options.Default) {
		cfg := s.options.Default
		return &cfg, nil
	}
	return nil, code.ErrorRemoteNotConfigured
}

func defaultConfigured(c *storage.Config) bool {
	if c.Type == storage.LOCAL {
		return c.SavePath != ""
	}
	return c.Endpoint != "" || c.BucketName != "" || c.AccountID != ""
}

// MapProxyURL rewrites serverURL onto proxyURL when it points at the proxied
// upstream; any other URL is returned unchanged
// MapProxyURL 当 serverURL 指向被代理的上游时改写为本地代理地址，否则原样返回
func MapProxyURL(serverURL, upstream, proxyURL string) string {
	if upstream == "" || proxyURL == "" {
		return serverURL
	}
	base := strings.TrimRight(upstream, "/")
	if serverURL != base && !strings.HasPrefix(serverURL, base+"/") {
		return serverURL
	}
	return strings.TrimRight(proxyURL, "/") + strings.TrimPrefix(serverURL, base)
}
