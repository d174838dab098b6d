package proxy

import (
	"bytes"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// forward re-issues the request upstream with a buffered body and writes the
// upstream response back verbatim
// forward 以缓冲的请求体向上游重新发起请求，并原样写回上游响应
func (p *Proxy) forward(w http.ResponseWriter, r *http.Request) {
	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Body != nil {
		buf, err := io.ReadAll(r.Body)
		if err != nil {
			p.fail(w, r, errors.Wrap(err, "read request body"))
			return
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, p.target(r).String(), body)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	req.Header = r.Header.Clone()
	p.prepareHeaders(req.Header)

	resp, err := p.client.Do(req)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	defer resp.Body.Close()

	removeHopHeaders(resp.Header)
	dst := w.Header()
	for k, vv := range resp.Header {
		dst[k] = append([]string(nil), vv...)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		// headers are already sent
		p.logger.Warn("webdav proxy response copy interrupted", p.errFields(r, err)...)
	}
}
