package service

import (
	"context"
	"errors"
	"testing"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/dto"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/storage"
	"github.com/echoapp/echo-sync-service/pkg/storage/webdav"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMapProxyURL(t *testing.T) {
	up := "https://dav.example.com/remote.php/dav"
	proxy := "http://127.0.0.1:9000/proxy"

	assert.Equal(t, "http://127.0.0.1:9000/proxy", MapProxyURL(up, up, proxy))
	assert.Equal(t, "http://127.0.0.1:9000/proxy/files/me", MapProxyURL(up+"/files/me", up+"/", proxy))
	assert.Equal(t, "https://other.example.com/dav", MapProxyURL("https://other.example.com/dav", up, proxy))
	assert.Equal(t, "https://dav.example.com/remote.php/davx", MapProxyURL(up+"x", up, proxy))
	assert.Equal(t, up, MapProxyURL(up, "", proxy))
}

func TestRemoteConfigSaveInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	repo := &memSettingRepo{}
	svc := NewRemoteConfigService(repo, RemoteOptions{
		ProxyUpstream: "https://dav.example.com",
		ProxyURL:      "http://127.0.0.1:9000/proxy",
	}, zap.NewNop())

	ok, err := svc.IsConfigured(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	_, err = svc.Storage(ctx)
	assert.True(t, errors.Is(err, code.ErrorRemoteNotConfigured))

	_, err = svc.Save(ctx, &dto.RemoteConfigDTO{ServerURL: "https://dav.example.com/root", Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"serverUrl":"https://dav.example.com/root","username":"u","password":"p"}`,
		repo.values[domain.SettingKeyWebDAVConfig])

	first, err := svc.Storage(ctx)
	require.NoError(t, err)
	dav, ok := first.(*webdav.WebDAV)
	require.True(t, ok)
	assert.Equal(t, "http://127.0.0.1:9000/proxy/root", dav.Config.Endpoint)

	again, err := svc.Storage(ctx)
	require.NoError(t, err)
	assert.Same(t, first, again)

	_, err = svc.Save(ctx, &dto.RemoteConfigDTO{ServerURL: "https://elsewhere.example.com"})
	require.NoError(t, err)
	next, err := svc.Storage(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, next)
	assert.Equal(t, "https://elsewhere.example.com", next.(*webdav.WebDAV).Config.Endpoint)

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.Configured)
}

func TestRemoteConfigFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	svc := NewRemoteConfigService(&memSettingRepo{}, RemoteOptions{
		Default: storage.Config{Type: storage.LOCAL, SavePath: t.TempDir()},
	}, zap.NewNop())

	client, err := svc.Storage(ctx)
	require.NoError(t, err)
	assert.NotNil(t, client)

	cfg, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.Configured)
}

func TestRemoteServiceBrowse(t *testing.T) {
	ctx := context.Background()
	remote := newMemRemote()
	svc := NewRemoteService(&staticRemote{client: remote}, nil, zap.NewNop())

	saved, err := svc.WriteFile(ctx, "notes/a.md", []byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "/notes/a.md", saved)
	assert.True(t, remote.dirs["/notes"])

	f, err := svc.ReadFile(ctx, "/notes/a.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", f.Content)
	assert.Equal(t, 5, f.Size)

	list, err := svc.List(ctx, "/notes")
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "a.md", list.Entries[0].Name)

	require.NoError(t, svc.MakeDir(ctx, "/other"))
	require.NoError(t, svc.Delete(ctx, "/notes/a.md"))

	_, err = svc.ReadFile(ctx, "/notes/a.md")
	assert.True(t, errors.Is(err, code.ErrorRemoteOperation))
}

func TestRemoteServiceRejectsBadPaths(t *testing.T) {
	ctx := context.Background()
	svc := NewRemoteService(&staticRemote{client: newMemRemote()}, nil, zap.NewNop())

	_, err := svc.List(ctx, "../etc")
	assert.True(t, errors.Is(err, code.ErrorInvalidParams))
	_, err = svc.ReadFile(ctx, "")
	assert.True(t, errors.Is(err, code.ErrorInvalidParams))
	assert.True(t, errors.Is(svc.Delete(ctx, "/"), code.ErrorInvalidParams))

	_, err = svc.List(ctx, "")
	assert.NoError(t, err)
}
