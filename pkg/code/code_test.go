package code

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloneKeepsIdentity(t *testing.T) {
	c := ErrorRecordNotFound.Clone().WithDetails("memos/7")

	assert.True(t, errors.Is(c, ErrorRecordNotFound))
	assert.False(t, errors.Is(c, ErrorCollectionNotFound))
	assert.Equal(t, []string{"memos/7"}, c.Details())
	// the shared value is untouched
	// 共享对象未被修改
	assert.False(t, ErrorRecordNotFound.HaveDetails())
}

func TestIsThroughWrap(t *testing.T) {
	err := fmt.Errorf("store: %w", ErrorWriteConflict.Clone())
	assert.True(t, errors.Is(err, ErrorWriteConflict))
}

func TestLanguageFallback(t *testing.T) {
	defer SetGlobalDefaultLang(FALLBACK_LNG)

	assert.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "WebDAV 代理失败", ErrorProxyUpstreamUnreachable.Msg())

	assert.Error(t, SetGlobalDefaultLang("fr"))
	assert.Equal(t, "en", GetGlobalDefaultLang())
	assert.Equal(t, "WebDAV proxy failed", ErrorProxyUpstreamUnreachable.Msg())
}
