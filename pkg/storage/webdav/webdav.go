package webdav

import (
	"net/http"
	"time"

	"github.com/studio-b12/gowebdav"
)

// Config 结构体用于存储 WebDAV 连接信息。
type Config struct {
	Endpoint   string        `yaml:"endpoint"`
	User       string        `yaml:"user"`
	Password   string        `yaml:"password"`
	CustomPath string        `yaml:"custom-path"`
	Timeout    time.Duration `yaml:"timeout"`
}

// WebDAV 结构体表示 WebDAV 客户端。
type WebDAV struct {
	Client *gowebdav.Client
	Config *Config
}

// Option 配置选项函数类型
type Option func(*WebDAV)

// WithTransport replaces the HTTP transport of the underlying client
// WithTransport 替换底层客户端的 HTTP 传输层
func WithTransport(rt http.RoundTripper) Option {
	return func(w *WebDAV) {
		w.Client.SetTransport(rt)
	}
}

// NewClient 创建一个新的 WebDAV 客户端实例。
func NewClient(conf *Config, opts ...Option) (*WebDAV, error) {
	c := gowebdav.NewClient(conf.Endpoint, conf.User, conf.Password)
	if conf.Timeout > 0 {
		c.SetTimeout(conf.Timeout)
	}

	w := &WebDAV{
		Client: c,
		Config: conf,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}
