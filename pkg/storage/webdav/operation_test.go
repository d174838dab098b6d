package webdav

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xwebdav "golang.org/x/net/webdav"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(&xwebdav.Handler{
		FileSystem: xwebdav.NewMemFS(),
		LockSystem: xwebdav.NewMemLS(),
	})
	t.Cleanup(srv.Close)
	return srv
}

func TestWebDAV_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()

	client, err := NewClient(&Config{Endpoint: srv.URL, CustomPath: "root"})
	require.NoError(t, err)

	require.NoError(t, client.MkdirAll(ctx, "/echoapp_memos"))
	// existing directory is not an error
	require.NoError(t, client.MkdirAll(ctx, "/echoapp_memos"))

	saved, err := client.SendContent(ctx, "/echoapp_memos/hello.md", []byte("# hi"), time.Now())
	require.NoError(t, err)
	assert.Equal(t, "/root/echoapp_memos/hello.md", saved)

	data, err := client.ReadContent(ctx, "/echoapp_memos/hello.md")
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))

	entries, err := client.List(ctx, "/echoapp_memos")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hello.md", entries[0].Name)
	assert.Equal(t, "/echoapp_memos/hello.md", entries[0].Path)
	assert.False(t, entries[0].IsDir)
	assert.EqualValues(t, 4, entries[0].Size)

	require.NoError(t, client.Delete(ctx, "/echoapp_memos/hello.md"))
	_, err = client.ReadContent(ctx, "/echoapp_memos/hello.md")
	assert.Error(t, err)
}

func TestWebDAV_CanceledContext(t *testing.T) {
	srv := newTestServer(t)
	client, err := NewClient(&Config{Endpoint: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.SendContent(ctx, "/a.json", []byte("[]"), time.Time{})
	assert.ErrorIs(t, err, context.Canceled)
}
