// Package proxy fronts the remote WebDAV store and injects its credentials
// Package proxy 代理远端 WebDAV 存储并注入凭据
package proxy

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/echoapp/echo-sync-service/pkg/logger"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Modes
// 代理实现方式
const (
	ModeForward = "forward"
	ModeRewrite = "rewrite"
)

// WebDAVMethods are the verbs beyond gin's Any that the proxy accepts
// WebDAVMethods 除 gin Any 之外代理接受的 WebDAV 方法
var WebDAVMethods = []string{"PROPFIND", "PROPPATCH", "MKCOL", "COPY", "MOVE", "LOCK", "UNLOCK"}

// hopHeaders are connection scoped and never forwarded
var hopHeaders = []string{
	"Connection",
	"Proxy-Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

// Config 代理配置
type Config struct {
	// Mode forward | rewrite
	Mode string `yaml:"mode" default:"forward"`
	// Prefix is the local mount path
	// Prefix 本地挂载路径
	Prefix string `yaml:"prefix" default:"/proxy"`
	// Upstream is the proxied WebDAV base URL
	// Upstream 被代理的 WebDAV 基础地址
	Upstream string `yaml:"upstream" default:"https://dav.jianguoyun.com/dav"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// Proxy 认证代理
type Proxy struct {
	config   Config
	upstream *url.URL
	auth     string
	client   *http.Client
	handler  http.Handler
	logger   *zap.Logger
}

// Option 配置选项函数类型
type Option func(*Proxy)

// WithTransport replaces the upstream transport
// WithTransport 替换上游传输层
func WithTransport(rt http.RoundTripper) Option {
	return func(p *Proxy) {
		p.client.Transport = rt
	}
}

// New 创建认证代理
func New(config Config, lg *zap.Logger, opts ...Option) (*Proxy, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	u, err := url.Parse(strings.TrimRight(config.Upstream, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("proxy: invalid upstream %q", config.Upstream)
	}
	config.Prefix = "/" + strings.Trim(config.Prefix, "/")
	if config.Mode == "" {
		config.Mode = ModeForward
	}

	p := &Proxy{
		config:   config,
		upstream: u,
		auth:     "Basic " + base64.StdEncoding.EncodeToString([]byte(config.User+":"+config.Password)),
		client:   &http.Client{},
		logger:   lg,
	}
	for _, opt := range opts {
		opt(p)
	}

	switch config.Mode {
	case ModeForward:
		p.handler = http.HandlerFunc(p.forward)
	case ModeRewrite:
		p.handler = p.rewriteProxy()
	default:
		return nil, errors.Errorf("proxy: unknown mode %q", config.Mode)
	}
	return p, nil
}

// Prefix 返回挂载路径
func (p *Proxy) Prefix() string {
	return p.config.Prefix
}

// Upstream 返回上游基础地址
func (p *Proxy) Upstream() string {
	return p.upstream.String()
}

func (p *Proxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
	p.handler.ServeHTTP(rw, r)
	proxyRequests.WithLabelValues(r.Method, strconv.Itoa(rw.status)).Inc()
	proxyDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
}

// Handle 以 gin 处理函数形式暴露代理
func (p *Proxy) Handle(c *gin.Context) {
	p.ServeHTTP(c.Writer, c.Request)
}

// Register mounts the proxy on r for every method it accepts
// Register 为代理接受的所有方法在 r 上挂载路由
func (p *Proxy) Register(r gin.IRoutes) {
	route := strings.TrimRight(p.config.Prefix, "/") + "/*path"
	r.Any(route, p.Handle)
	for _, m := range WebDAVMethods {
		r.Handle(m, route, p.Handle)
	}
}

// relPath returns the request path below the mount prefix, without leading slash
func (p *Proxy) relPath(r *http.Request) string {
	rel := strings.TrimPrefix(r.URL.Path, p.config.Prefix)
	return strings.TrimPrefix(rel, "/")
}

// target builds upstream base + "/" + path (+ raw query)
func (p *Proxy) target(r *http.Request) *url.URL {
	u := *p.upstream
	u.Path = p.upstream.Path + "/" + p.relPath(r)
	u.RawPath = ""
	u.RawQuery = r.URL.RawQuery
	return &u
}

// prepareHeaders applies the header rules to an outbound request
func (p *Proxy) prepareHeaders(h http.Header) {
	removeHopHeaders(h)
	h.Del("Host")
	h.Set("Authorization", p.auth)
}

func removeHopHeaders(h http.Header) {
	for _, f := range h.Values("Connection") {
		for _, name := range strings.Split(f, ",") {
			if name = strings.TrimSpace(name); name != "" {
				h.Del(name)
			}
		}
	}
	for _, name := range hopHeaders {
		h.Del(name)
	}
}

// fail answers a transport level upstream error
func (p *Proxy) fail(w http.ResponseWriter, r *http.Request, err error) {
	p.logger.Error("webdav proxy failed", p.errFields(r, err)...)

	body, _ := sonic.ConfigStd.Marshal(map[string]string{"error": failureMessage})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write(body)
}

func (p *Proxy) errFields(r *http.Request, err error) []zap.Field {
	return []zap.Field{
		zap.String(logger.FieldMethod, r.Method),
		zap.String(logger.FieldUpstream, p.target(r).Redacted()),
		zap.Error(err),
	}
}

// failureMessage is the body text of every transport level failure
const failureMessage = "WebDAV proxy failed"

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

func (w *statusWriter) Flush() {
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
