package service

import (
	"context"
	"strconv"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/pkg/code"
)

// RecordService 通用集合只读服务
type RecordService interface {
	// List 读取集合全部记录
	List(ctx context.Context, collection string) ([]domain.Record, error)

	// Get 读取集合中的单条记录，不存在时返回 ErrorRecordNotFound
	Get(ctx context.Context, collection string, id int64) (domain.Record, error)

	// Initialize 以种子数据初始化存储
	Initialize(ctx context.Context, seed *domain.Snapshot) error
}

type recordService struct {
	store domain.RecordStore
}

// NewRecordService 创建 RecordService 实例
func NewRecordService(store domain.RecordStore) RecordService {
	return &recordService{store: store}
}

func recordRef(c domain.Collection, id int64) string {
	return string(c) + "/" + strconv.FormatInt(id, 10)
}

func (s *recordService) List(ctx context.Context, collection string) ([]domain.Record, error) {
	c, err := domain.ParseCollection(collection)
	if err != nil {
		return nil, err
	}
	return s.store.Read(ctx, c)
}

func (s *recordService) Get(ctx context.Context, collection string, id int64) (domain.Record, error) {
	c, err := domain.ParseCollection(collection)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.ReadOne(ctx, c, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, code.ErrorRecordNotFound.Clone().WithDetails(recordRef(c, id))
	}
	return rec, nil
}

func (s *recordService) Initialize(ctx context.Context, seed *domain.Snapshot) error {
	return s.store.Initialize(ctx, seed)
}
