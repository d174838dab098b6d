package domain

import (
	"encoding/json"

	"github.com/echoapp/echo-sync-service/pkg/code"
)

// Snapshot is the whole-store document: the stored collections plus the
// reserved keys that are always emitted as empty arrays
// Snapshot 整库文档：存储的集合以及始终输出为空数组的保留键
type Snapshot struct {
	Files                []*Attachment      `json:"files"`
	History              []*HistoryEntry    `json:"history"`
	Links                []*LinkEntry       `json:"links"`
	MemoActions          []json.RawMessage  `json:"memo_actions"`
	MemoContentHistories []*ContentRevision `json:"memo_content_histories"`
	Memos                []*Note            `json:"memos"`
	TagInfos             []json.RawMessage  `json:"tagInfos"`
	TagSort              []json.RawMessage  `json:"tagSort"`
	TagTreeName          []json.RawMessage  `json:"tag_tree_name"`
	TagActions           []json.RawMessage  `json:"tag_actions"`
	Tags                 []*Tag             `json:"tags"`
	ZipCache             []json.RawMessage  `json:"zipCache"`
}

// NewSnapshot 创建所有集合均为空数组的快照
func NewSnapshot() *Snapshot {
	s := &Snapshot{}
	s.Normalize()
	return s
}

// Normalize replaces nil slices with empty ones so every key serializes as []
// Normalize 将 nil 切片替换为空切片，保证每个键都序列化为 []
func (s *Snapshot) Normalize() {
	if s.Files == nil {
		s.Files = []*Attachment{}
	}
	if s.History == nil {
		s.History = []*HistoryEntry{}
	}
	if s.Links == nil {
		s.Links = []*LinkEntry{}
	}
	if s.MemoContentHistories == nil {
		s.MemoContentHistories = []*ContentRevision{}
	}
	if s.Memos == nil {
		s.Memos = []*Note{}
	}
	if s.Tags == nil {
		s.Tags = []*Tag{}
	}
	s.MemoActions = []json.RawMessage{}
	s.TagInfos = []json.RawMessage{}
	s.TagSort = []json.RawMessage{}
	s.TagTreeName = []json.RawMessage{}
	s.TagActions = []json.RawMessage{}
	s.ZipCache = []json.RawMessage{}
}

// Records returns the records of one collection in document order
// Records 按文档顺序返回某集合的记录
func (s *Snapshot) Records(c Collection) []Record {
	var out []Record
	switch c {
	case CollectionMemos:
		for _, v := range s.Memos {
			out = append(out, v)
		}
	case CollectionFiles:
		for _, v := range s.Files {
			out = append(out, v)
		}
	case CollectionHistory:
		for _, v := range s.History {
			out = append(out, v)
		}
	case CollectionLinks:
		for _, v := range s.Links {
			out = append(out, v)
		}
	case CollectionRevisions:
		for _, v := range s.MemoContentHistories {
			out = append(out, v)
		}
	case CollectionTags:
		for _, v := range s.Tags {
			out = append(out, v)
		}
	}
	return out
}

// Set replaces the records of one collection
// Set 替换某集合的记录
func (s *Snapshot) Set(c Collection, records []Record) error {
	for _, r := range records {
		if r.Collection() != c {
			return code.ErrorRecordTypeMismatch.Clone().WithDetails(string(r.Collection()), string(c))
		}
	}
	switch c {
	case CollectionMemos:
		s.Memos = collect[*Note](records)
	case CollectionFiles:
		s.Files = collect[*Attachment](records)
	case CollectionHistory:
		s.History = collect[*HistoryEntry](records)
	case CollectionLinks:
		s.Links = collect[*LinkEntry](records)
	case CollectionRevisions:
		s.MemoContentHistories = collect[*ContentRevision](records)
	case CollectionTags:
		s.Tags = collect[*Tag](records)
	default:
		return code.ErrorCollectionNotFound.Clone().WithDetails(string(c))
	}
	return nil
}

func collect[T Record](records []Record) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		out = append(out, r.(T))
	}
	return out
}
