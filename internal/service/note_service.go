package service

import (
	"context"
	"sort"
	"time"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/internal/dto"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/logger"

	"go.uber.org/zap"
)

// NoteService 定义备忘录业务服务接口
type NoteService interface {
	// ListPage 按 created_at_long 降序、id 升序分页读取备忘录
	ListPage(ctx context.Context, page, pageSize int) ([]*domain.Note, int64, error)

	// Get 获取单条备忘录，不存在时返回 ErrorRecordNotFound
	Get(ctx context.Context, id int64) (*domain.Note, error)

	// Create 创建备忘录
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*domain.Note, error)

	// Update 部分更新备忘录
	Update(ctx context.Context, params *dto.NoteUpdateRequest) (*domain.Note, error)

	// Delete 物理删除备忘录
	Delete(ctx context.Context, id int64) error

	// Trash 软删除备忘录
	Trash(ctx context.Context, id int64) (*domain.Note, error)

	// Cleanup 清理超过保留时长的软删除备忘录
	Cleanup(ctx context.Context, retention time.Duration) (int64, error)
}

type noteService struct {
	store  domain.RecordStore
	clock  Clock
	logger *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(store domain.RecordStore, clock Clock, logger *zap.Logger) NoteService {
	if clock == nil {
		clock = SystemClock
	}
	return &noteService{store: store, clock: clock, logger: logger}
}

func (s *noteService) ListPage(ctx context.Context, page, pageSize int) ([]*domain.Note, int64, error) {
	if page < 1 || pageSize <= 0 {
		return nil, 0, code.ErrorInvalidParams.Clone().WithDetails("page must be >= 1 and pageSize > 0")
	}

	records, total, err := s.store.ReadAndCount(ctx, domain.CollectionMemos)
	if err != nil {
		return nil, 0, err
	}

	notes := make([]*domain.Note, 0, len(records))
	for _, r := range records {
		notes = append(notes, r.(*domain.Note))
	}
	sortNotes(notes)

	start := (page - 1) * pageSize
	if start >= len(notes) {
		return []*domain.Note{}, total, nil
	}
	end := start + pageSize
	if end > len(notes) {
		end = len(notes)
	}
	return notes[start:end], total, nil
}

// sortNotes orders by created_at_long desc, ties by id asc
func sortNotes(notes []*domain.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].CreatedAtLong != notes[j].CreatedAtLong {
			return notes[i].CreatedAtLong > notes[j].CreatedAtLong
		}
		return notes[i].ID < notes[j].ID
	})
}

func (s *noteService) Get(ctx context.Context, id int64) (*domain.Note, error) {
	rec, err := s.store.ReadOne(ctx, domain.CollectionMemos, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, code.ErrorRecordNotFound.Clone().WithDetails(recordRef(domain.CollectionMemos, id))
	}
	return rec.(*domain.Note), nil
}

func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*domain.Note, error) {
	note := params.Note()
	id, err := s.store.Create(ctx, domain.CollectionMemos, note)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("note created", zap.Int64(logger.FieldRecordID, id))
	return s.Get(ctx, id)
}

func (s *noteService) Update(ctx context.Context, params *dto.NoteUpdateRequest) (*domain.Note, error) {
	patch := params.NotePatch
	rec, err := s.store.Update(ctx, domain.CollectionMemos, params.ID, &patch)
	if err != nil {
		return nil, err
	}
	return rec.(*domain.Note), nil
}

func (s *noteService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, domain.CollectionMemos, id)
}

func (s *noteService) Trash(ctx context.Context, id int64) (*domain.Note, error) {
	return s.store.SoftDelete(ctx, id)
}

func (s *noteService) Cleanup(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	before := s.clock.Now().Add(-retention).UnixMilli()
	n, err := s.store.PurgeDeleted(ctx, before)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("purged soft-deleted notes",
			zap.String(logger.FieldCollection, string(domain.CollectionMemos)),
			zap.Int64("count", n))
	}
	return n, nil
}
