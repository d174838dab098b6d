package service

import (
	"strconv"
	"strings"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/pkg/util"

	"github.com/bytedance/sonic"
)

// Serializer turns records into the files uploaded to the remote store
// Serializer 将记录转换为上传到远端的文件
type Serializer struct{}

// JSON pretty-prints v with a two space indent
// JSON 以两个空格缩进格式化输出 v
func (Serializer) JSON(v any) ([]byte, error) {
	return sonic.ConfigStd.MarshalIndent(v, "", "  ")
}

// NoteMarkup renders a note as a markdown document with a frontmatter header
// NoteMarkup 将备忘录渲染为带 frontmatter 头的 markdown 文档
func (Serializer) NoteMarkup(n *domain.Note) []byte {
	title := n.Slug
	if title == "" {
		title = "Untitled"
	}
	fields := []util.Field{
		{Key: "title", Value: title},
		{Key: "created", Value: n.CreatedAt},
		{Key: "updated", Value: n.UpdatedAt},
		{Key: "tags", Value: strings.Join(n.Tags, ", ")},
	}
	return []byte(util.RenderFrontmatter(fields, n.Content))
}

// FileName returns the remote file name of rec: notes are "<slug or id>.md",
// every other record is "<id>.json"
// FileName 返回记录的远端文件名：备忘录为 "<slug 或 id>.md"，其他记录为 "<id>.json"
func (Serializer) FileName(c domain.Collection, rec domain.Record) string {
	id := strconv.FormatInt(rec.GetID(), 10)
	if n, ok := rec.(*domain.Note); ok && c == domain.CollectionMemos {
		name := n.Slug
		if name == "" {
			name = id
		}
		return util.SafeFileName(name) + ".md"
	}
	return id + ".json"
}

// Content serializes one record the way it is uploaded: markup for notes,
// a one element JSON array otherwise
// Content 按上传格式序列化单条记录：备忘录为 markup，其他为单元素 JSON 数组
func (s Serializer) Content(c domain.Collection, rec domain.Record) ([]byte, error) {
	if n, ok := rec.(*domain.Note); ok && c == domain.CollectionMemos {
		return s.NoteMarkup(n), nil
	}
	return s.JSON([]domain.Record{rec})
}
