// Package domain 定义领域模型和接口
package domain

import (
	"github.com/echoapp/echo-sync-service/pkg/code"
)

// Collection is a named store of records, one table per collection
// Collection 记录集合名称，每个集合对应一张表
type Collection string

const (
	CollectionMemos     Collection = "memos"
	CollectionFiles     Collection = "files"
	CollectionHistory   Collection = "history"
	CollectionLinks     Collection = "links"
	CollectionRevisions Collection = "memo_content_histories"
	CollectionTags      Collection = "tags"
)

// Collections lists every stored collection in seed document order
// Collections 按种子文档顺序列出所有存储的集合
var Collections = []Collection{
	CollectionFiles,
	CollectionHistory,
	CollectionLinks,
	CollectionRevisions,
	CollectionMemos,
	CollectionTags,
}

func (c Collection) String() string {
	return string(c)
}

// IsValid 判断集合名称是否合法
func (c Collection) IsValid() bool {
	for _, v := range Collections {
		if v == c {
			return true
		}
	}
	return false
}

// ParseCollection 解析集合名称，未知集合返回 ErrorCollectionNotFound
func ParseCollection(name string) (Collection, error) {
	c := Collection(name)
	if !c.IsValid() {
		return "", code.ErrorCollectionNotFound.Clone().WithDetails(name)
	}
	return c, nil
}

// NewRecord returns an empty record of the collection's entity type
// NewRecord 返回集合对应实体类型的空记录
func NewRecord(c Collection) (Record, error) {
	switch c {
	case CollectionMemos:
		return &Note{}, nil
	case CollectionFiles:
		return &Attachment{}, nil
	case CollectionHistory:
		return &HistoryEntry{}, nil
	case CollectionLinks:
		return &LinkEntry{}, nil
	case CollectionRevisions:
		return &ContentRevision{}, nil
	case CollectionTags:
		return &Tag{}, nil
	}
	return nil, code.ErrorCollectionNotFound.Clone().WithDetails(string(c))
}
