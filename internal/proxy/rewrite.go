package proxy

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httputil"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// rewriteProxy is the declarative realization: one Rewrite rule bound to the
// same destination template and header rules as forward
// rewriteProxy 声明式实现：一条 Rewrite 规则，目标模板与请求头规则与 forward 一致
func (p *Proxy) rewriteProxy() http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL = p.target(pr.In)
			pr.Out.Host = ""
			p.prepareHeaders(pr.Out.Header)
		},
		Transport: followRedirects{client: p.client},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			p.fail(w, r, err)
		},
		ErrorLog: zap.NewStdLog(p.logger),
	}
}

// followRedirects lets ReverseProxy follow upstream redirects like forward does;
// the body is buffered so 307/308 can replay it
// followRedirects 让 ReverseProxy 与 forward 一样跟随上游重定向，请求体被缓冲以便 307/308 重放
type followRedirects struct {
	client *http.Client
}

func (t followRedirects) RoundTrip(r *http.Request) (*http.Response, error) {
	out := r.Clone(r.Context())
	out.RequestURI = ""
	if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Body != nil && r.Body != http.NoBody {
		buf, err := io.ReadAll(r.Body)
		_ = r.Body.Close()
		if err != nil {
			return nil, errors.Wrap(err, "read request body")
		}
		out.ContentLength = int64(len(buf))
		out.Body = io.NopCloser(bytes.NewReader(buf))
		out.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
	}
	return t.client.Do(out)
}
