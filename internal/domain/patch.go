package domain

import (
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/convert"
)

// Patch is a partial update; a nil field means "unspecified" and keeps the stored value
// Patch 部分更新，nil 字段表示未指定并保留存储值
type Patch interface {
	Collection() Collection
}

// NotePatch 备忘录部分更新
type NotePatch struct {
	Content     *string   `json:"content"`
	CreatorID   *int64    `json:"creator_id"`
	Source      *string   `json:"source"`
	Tags        *[]string `json:"tags"`
	Pin         *int      `json:"pin"`
	Slug        *string   `json:"slug"`
	LinkedCount *int64    `json:"linked_count"`
	Files       *[]int64  `json:"files"`
	Links       *[]string `json:"links"`
	LinkedMemos *[]int64  `json:"linked_memos"`
}

func (p *NotePatch) Collection() Collection { return CollectionMemos }

// AttachmentPatch 附件部分更新
type AttachmentPatch struct {
	CreatorID    *int64  `json:"creator_id"`
	MemoID       *int64  `json:"memo_id"`
	Name         *string `json:"name"`
	Type         *string `json:"type"`
	Size         *int64  `json:"size"`
	Path         *string `json:"path"`
	URL          *string `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

func (p *AttachmentPatch) Collection() Collection { return CollectionFiles }

// HistoryEntryPatch 历史记录部分更新
type HistoryEntryPatch struct {
	Slug      *string `json:"slug"`
	Content   *string `json:"content"`
	Timestamp *int64  `json:"timestamp"`
}

func (p *HistoryEntryPatch) Collection() Collection { return CollectionHistory }

// LinkEntryPatch 链接部分更新
type LinkEntryPatch struct {
	Source *string `json:"source"`
	Link   *string `json:"link"`
}

func (p *LinkEntryPatch) Collection() Collection { return CollectionLinks }

// ContentRevisionPatch 内容修订部分更新
type ContentRevisionPatch struct {
	Slug      *string `json:"slug"`
	Hash      *int64  `json:"hash"`
	UpdatedAt *string `json:"updated_at"`
}

func (p *ContentRevisionPatch) Collection() Collection { return CollectionRevisions }

// TagPatch 标签部分更新
type TagPatch struct {
	Name         *string `json:"name"`
	Count        *int64  `json:"count"`
	LatestUsedAt *int64  `json:"latest_used_at"`
}

func (p *TagPatch) Collection() Collection { return CollectionTags }

// NewPatch returns an empty patch of the collection's entity type
// NewPatch 返回集合对应实体类型的空补丁
func NewPatch(c Collection) (Patch, error) {
	switch c {
	case CollectionMemos:
		return &NotePatch{}, nil
	case CollectionFiles:
		return &AttachmentPatch{}, nil
	case CollectionHistory:
		return &HistoryEntryPatch{}, nil
	case CollectionLinks:
		return &LinkEntryPatch{}, nil
	case CollectionRevisions:
		return &ContentRevisionPatch{}, nil
	case CollectionTags:
		return &TagPatch{}, nil
	}
	return nil, code.ErrorCollectionNotFound.Clone().WithDetails(string(c))
}

// ApplyPatch merges the set fields of patch onto rec; identity is never changed
// ApplyPatch 将 patch 中已设置的字段合并到 rec，标识不会被修改
func ApplyPatch(rec Record, patch Patch) error {
	if patch == nil {
		return nil
	}
	if patch.Collection() != rec.Collection() {
		return code.ErrorRecordTypeMismatch.Clone().WithDetails(string(patch.Collection()), string(rec.Collection()))
	}
	id := rec.GetID()
	if err := convert.MergePatch(rec, patch); err != nil {
		return err
	}
	rec.SetID(id)
	return nil
}
