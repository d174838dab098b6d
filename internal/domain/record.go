package domain

import (
	"strconv"

	"github.com/echoapp/echo-sync-service/pkg/timex"
)

// Record is one stored entity with a store-assigned identity
// Record 具有存储分配标识的单条实体记录
type Record interface {
	GetID() int64
	SetID(id int64)
	Collection() Collection
}

// Toucher is a record whose update timestamps the store refreshes on update
// Toucher 更新时由存储刷新时间戳的记录
type Toucher interface {
	Touch(nowMs int64)
}

// Note 备忘录领域模型
type Note struct {
	ID                 int64    `json:"id"`
	Content            string   `json:"content"`
	CreatorID          int64    `json:"creator_id"`
	Source             string   `json:"source"`
	Tags               []string `json:"tags"`
	Pin                int      `json:"pin"`
	Slug               string   `json:"slug"`
	CreatedAt          string   `json:"created_at"`
	CreatedAtLong      int64    `json:"created_at_long"`
	UpdatedAt          string   `json:"updated_at"`
	UpdatedAtLong      int64    `json:"updated_at_long"`
	LocalUpdatedAt     string   `json:"local_updated_at"`
	LocalUpdatedAtLong int64    `json:"local_updated_at_long"`
	DeletedAt          *string  `json:"deleted_at"`
	DeletedAtLong      int64    `json:"deleted_at_long"`
	LinkedCount        int64    `json:"linked_count"`
	Files              []int64  `json:"files"`
	Links              []string `json:"links"`
	LinkedMemos        []int64  `json:"linked_memos"`
}

func (n *Note) GetID() int64           { return n.ID }
func (n *Note) SetID(id int64)         { n.ID = id }
func (n *Note) Collection() Collection { return CollectionMemos }

// IsDeleted 判断备忘录是否已软删除
func (n *Note) IsDeleted() bool {
	return n.DeletedAt != nil || n.DeletedAtLong != 0
}

// ApplyDefaults fills every unset field with its creation default; values the
// caller supplied are kept
// ApplyDefaults 为未设置的字段填充创建默认值，调用方提供的值保持不变
func (n *Note) ApplyDefaults(nowMs int64) {
	n.CreatedAt, n.CreatedAtLong = twin(n.CreatedAt, n.CreatedAtLong, nowMs)
	n.UpdatedAt, n.UpdatedAtLong = twin(n.UpdatedAt, n.UpdatedAtLong, nowMs)
	n.LocalUpdatedAt, n.LocalUpdatedAtLong = twin(n.LocalUpdatedAt, n.LocalUpdatedAtLong, nowMs)

	n.DeletedAt = nil
	n.DeletedAtLong = 0

	if n.CreatorID == 0 {
		n.CreatorID = 1
	}
	if n.Source == "" {
		n.Source = "local"
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if n.Slug == "" {
		n.Slug = "memo-" + strconv.FormatInt(nowMs, 10)
	}
	if n.Files == nil {
		n.Files = []int64{}
	}
	if n.LinkedMemos == nil {
		n.LinkedMemos = []int64{}
	}
}

// Touch refreshes the updated and local updated timestamp pairs
// Touch 刷新 updated 与 local_updated 时间戳对
func (n *Note) Touch(nowMs int64) {
	s := timex.FormatRecord(nowMs)
	n.UpdatedAt, n.UpdatedAtLong = s, nowMs
	n.LocalUpdatedAt, n.LocalUpdatedAtLong = s, nowMs
}

// MarkDeleted sets the soft delete pair and refreshes the updated fields
// MarkDeleted 设置软删除时间对并刷新更新时间
func (n *Note) MarkDeleted(nowMs int64) {
	s := timex.FormatRecord(nowMs)
	n.DeletedAt, n.DeletedAtLong = &s, nowMs
	n.Touch(nowMs)
}

// twin derives whichever half of a (string, epoch ms) timestamp pair is missing
func twin(s string, ms int64, nowMs int64) (string, int64) {
	switch {
	case s == "" && ms == 0:
		return timex.FormatRecord(nowMs), nowMs
	case s == "":
		return timex.FormatRecord(ms), ms
	case ms == 0:
		if parsed, err := timex.ParseRecord(s); err == nil {
			return s, parsed
		}
		return s, nowMs
	}
	return s, ms
}

// Attachment 附件领域模型
type Attachment struct {
	ID           int64  `json:"id"`
	CreatorID    int64  `json:"creator_id"`
	MemoID       int64  `json:"memo_id,omitempty"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url"`
}

func (a *Attachment) GetID() int64           { return a.ID }
func (a *Attachment) SetID(id int64)         { a.ID = id }
func (a *Attachment) Collection() Collection { return CollectionFiles }

// HistoryEntry 历史记录领域模型
type HistoryEntry struct {
	ID        int64  `json:"id"`
	Slug      string `json:"slug"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

func (h *HistoryEntry) GetID() int64           { return h.ID }
func (h *HistoryEntry) SetID(id int64)         { h.ID = id }
func (h *HistoryEntry) Collection() Collection { return CollectionHistory }

// LinkEntry 链接领域模型
type LinkEntry struct {
	ID     int64  `json:"id"`
	Source string `json:"source"`
	Link   string `json:"link"`
}

func (l *LinkEntry) GetID() int64           { return l.ID }
func (l *LinkEntry) SetID(id int64)         { l.ID = id }
func (l *LinkEntry) Collection() Collection { return CollectionLinks }

// ContentRevision 备忘录内容修订领域模型
type ContentRevision struct {
	ID        int64   `json:"id"`
	Slug      string  `json:"slug"`
	Hash      int64   `json:"hash"`
	UpdatedAt *string `json:"updated_at,omitempty"`
}

// Touch refreshes UpdatedAt when the revision carries one
// Touch 在修订记录带有 UpdatedAt 时刷新它
func (r *ContentRevision) Touch(nowMs int64) {
	if r.UpdatedAt != nil {
		s := timex.FormatRecord(nowMs)
		r.UpdatedAt = &s
	}
}

func (r *ContentRevision) GetID() int64           { return r.ID }
func (r *ContentRevision) SetID(id int64)         { r.ID = id }
func (r *ContentRevision) Collection() Collection { return CollectionRevisions }

// Tag 标签领域模型
type Tag struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Count        int64  `json:"count"`
	LatestUsedAt int64  `json:"latest_used_at"`
}

func (t *Tag) GetID() int64           { return t.ID }
func (t *Tag) SetID(id int64)         { t.ID = id }
func (t *Tag) Collection() Collection { return CollectionTags }
