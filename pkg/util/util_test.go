package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"30d", 30 * 24 * time.Hour},
		{"90", 90 * time.Second},
		{"2h", 2 * time.Hour},
		{" 1d ", 24 * time.Hour},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDuration("xd")
	assert.Error(t, err)
}

func TestRenderFrontmatterParsesBack(t *testing.T) {
	out := RenderFrontmatter([]Field{
		{Key: "title", Value: "hello"},
		{Key: "tags", Value: "a, b"},
	}, "body text")

	assert.Equal(t, "---\ntitle: hello\ntags: a, b\n---\n\nbody text", out)

	data, body, ok := ParseFrontmatter(out)
	require.True(t, ok)
	assert.Equal(t, "hello", data["title"])
	assert.Equal(t, "a, b", data["tags"])
	assert.Equal(t, "\nbody text", body)
}

func TestSafeFileName(t *testing.T) {
	assert.Equal(t, "a-b-c", SafeFileName("a/b\\c"))
	assert.True(t, ValidatePath("/echoapp_memos/x.md"))
	assert.False(t, ValidatePath("/../etc/passwd"))
}
