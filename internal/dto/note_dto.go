package dto

import "github.com/echoapp/echo-sync-service/internal/domain"

// NoteListRequest 备忘录分页请求参数
type NoteListRequest struct {
	Page     int `json:"page" form:"page"`
	PageSize int `json:"pageSize" form:"pageSize"`
}

// NoteGetRequest 获取/删除单条备忘录请求参数
type NoteGetRequest struct {
	ID int64 `json:"id" form:"id" binding:"required,gt=0"`
}

// NoteCreateRequest 创建备忘录请求参数
// Unset fields take the creation defaults of the store
// 未设置的字段使用存储的创建默认值
type NoteCreateRequest struct {
	Content       string   `json:"content" form:"content"`
	Tags          []string `json:"tags" form:"tags"`
	Pin           int      `json:"pin" form:"pin" binding:"oneof=0 1"`
	Slug          string   `json:"slug" form:"slug" binding:"max=255"`
	Source        string   `json:"source" form:"source"`
	CreatedAtLong int64    `json:"created_at_long" form:"created_at_long" binding:"gte=0"`
	Files         []int64  `json:"files" form:"files"`
	Links         []string `json:"links" form:"links"`
	LinkedMemos   []int64  `json:"linked_memos" form:"linked_memos"`
}

// Note converts the request into a new record
// Note 将请求转换为新记录
func (r *NoteCreateRequest) Note() *domain.Note {
	return &domain.Note{
		Content:       r.Content,
		Tags:          r.Tags,
		Pin:           r.Pin,
		Slug:          r.Slug,
		Source:        r.Source,
		CreatedAtLong: r.CreatedAtLong,
		Files:         r.Files,
		Links:         r.Links,
		LinkedMemos:   r.LinkedMemos,
	}
}

// NoteUpdateRequest 部分更新备忘录请求参数，省略的字段保持不变
type NoteUpdateRequest struct {
	ID int64 `json:"id" binding:"required,gt=0"`
	domain.NotePatch
}

// NoteListDTO 备忘录分页结果
type NoteListDTO struct {
	List  []*domain.Note `json:"list"`
	Total int64          `json:"total"`
}

// RecordGetRequest 通用集合记录读取参数
type RecordGetRequest struct {
	Collection string `uri:"collection" binding:"required"`
	ID         int64  `uri:"id"`
}
