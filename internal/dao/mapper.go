package dao

import (
	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/model"
)

// toDomain / toModel 在数据库模型与领域模型之间转换

func memoToDomain(m *model.Memo) *domain.Note {
	return &domain.Note{
		ID:                 m.ID,
		Content:            m.Content,
		CreatorID:          m.CreatorID,
		Source:             m.Source,
		Tags:               []string(m.Tags),
		Pin:                m.Pin,
		Slug:               m.Slug,
		CreatedAt:          m.CreatedAt,
		CreatedAtLong:      m.CreatedAtLong,
		UpdatedAt:          m.UpdatedAt,
		UpdatedAtLong:      m.UpdatedAtLong,
		LocalUpdatedAt:     m.LocalUpdatedAt,
		LocalUpdatedAtLong: m.LocalUpdatedAtLong,
		DeletedAt:          m.DeletedAt,
		DeletedAtLong:      m.DeletedAtLong,
		LinkedCount:        m.LinkedCount,
		Files:              []int64(m.Files),
		Links:              []string(m.Links),
		LinkedMemos:        []int64(m.LinkedMemos),
	}
}

func memoToModel(n *domain.Note) *model.Memo {
	return &model.Memo{
		ID:                 n.ID,
		Content:            n.Content,
		CreatorID:          n.CreatorID,
		Source:             n.Source,
		Tags:               model.JSONList[string](n.Tags),
		Pin:                n.Pin,
		Slug:               n.Slug,
		CreatedAt:          n.CreatedAt,
		CreatedAtLong:      n.CreatedAtLong,
		UpdatedAt:          n.UpdatedAt,
		UpdatedAtLong:      n.UpdatedAtLong,
		LocalUpdatedAt:     n.LocalUpdatedAt,
		LocalUpdatedAtLong: n.LocalUpdatedAtLong,
		DeletedAt:          n.DeletedAt,
		DeletedAtLong:      n.DeletedAtLong,
		LinkedCount:        n.LinkedCount,
		Files:              model.JSONList[int64](n.Files),
		Links:              model.JSONList[string](n.Links),
		LinkedMemos:        model.JSONList[int64](n.LinkedMemos),
	}
}

func fileToDomain(m *model.File) *domain.Attachment {
	return &domain.Attachment{
		ID:           m.ID,
		CreatorID:    m.CreatorID,
		MemoID:       m.MemoID,
		Name:         m.Name,
		Type:         m.Type,
		Size:         m.Size,
		Path:         m.Path,
		URL:          m.URL,
		ThumbnailURL: m.ThumbnailURL,
	}
}

func fileToModel(a *domain.Attachment) *model.File {
	return &model.File{
		ID:           a.ID,
		CreatorID:    a.CreatorID,
		MemoID:       a.MemoID,
		Name:         a.Name,
		Type:         a.Type,
		Size:         a.Size,
		Path:         a.Path,
		URL:          a.URL,
		ThumbnailURL: a.ThumbnailURL,
	}
}

func historyToDomain(m *model.History) *domain.HistoryEntry {
	return &domain.HistoryEntry{ID: m.ID, Slug: m.Slug, Content: m.Content, Timestamp: m.Timestamp}
}

func historyToModel(h *domain.HistoryEntry) *model.History {
	return &model.History{ID: h.ID, Slug: h.Slug, Content: h.Content, Timestamp: h.Timestamp}
}

func linkToDomain(m *model.Link) *domain.LinkEntry {
	return &domain.LinkEntry{ID: m.ID, Source: m.Source, Link: m.Link}
}

func linkToModel(l *domain.LinkEntry) *model.Link {
	return &model.Link{ID: l.ID, Source: l.Source, Link: l.Link}
}

func revisionToDomain(m *model.MemoContentHistory) *domain.ContentRevision {
	return &domain.ContentRevision{ID: m.ID, Slug: m.Slug, Hash: m.Hash, UpdatedAt: m.UpdatedAt}
}

func revisionToModel(r *domain.ContentRevision) *model.MemoContentHistory {
	return &model.MemoContentHistory{ID: r.ID, Slug: r.Slug, Hash: r.Hash, UpdatedAt: r.UpdatedAt}
}

func tagToDomain(m *model.Tag) *domain.Tag {
	return &domain.Tag{ID: m.ID, Name: m.Name, Count: m.Count, LatestUsedAt: m.LatestUsedAt}
}

func tagToModel(t *domain.Tag) *model.Tag {
	return &model.Tag{ID: t.ID, Name: t.Name, Count: t.Count, LatestUsedAt: t.LatestUsedAt}
}
