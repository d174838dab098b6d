package local_fs

import (
	"path/filepath"

	"github.com/echoapp/echo-sync-service/pkg/fileurl"
)

type Config struct {
	SavePath   string `yaml:"save-path" default:"storage/remote"`
	CustomPath string `yaml:"custom-path"`
}

// LocalFS mirrors the remote layout onto a local directory
// LocalFS 将远端目录结构镜像到本地目录
type LocalFS struct {
	Config *Config
}

func NewClient(conf *Config) (*LocalFS, error) {
	return &LocalFS{
		Config: conf,
	}, nil
}

func (p *LocalFS) getSavePath(key string) string {
	return filepath.Join(p.Config.SavePath, filepath.FromSlash(fileurl.RemotePath(p.Config.CustomPath, key)))
}
