package service

import (
	"sync"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/pkg/code"
)

// Selection holds the per-collection ordered id sets chosen for sync.
// In all-collections mode per-item selection is disabled and a sync
// uploads the whole-store snapshot instead.
// Selection 保存每个集合中待同步的有序 id 集合。
// 全量模式下禁用单项选择，同步改为上传整库快照。
type Selection struct {
	mu       sync.Mutex
	all      bool
	selected map[domain.Collection][]int64
}

// NewSelection 创建空的同步选择
func NewSelection() *Selection {
	return &Selection{selected: make(map[domain.Collection][]int64)}
}

// Toggle adds id when absent and removes it when present; it reports
// whether id is selected afterwards
// Toggle 不存在时加入、存在时移除，返回操作后是否处于选中状态
func (s *Selection) Toggle(c domain.Collection, id int64) (bool, error) {
	if !c.IsValid() {
		return false, code.ErrorCollectionNotFound.Clone().WithDetails(string(c))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.all {
		return false, code.ErrorSelectionDisabled
	}

	ids := s.selected[c]
	for i, v := range ids {
		if v == id {
			s.selected[c] = append(ids[:i:i], ids[i+1:]...)
			return false, nil
		}
	}
	s.selected[c] = append(ids, id)
	return true, nil
}

// SelectAll replaces the selection of c with ids, keeping first occurrence order
// SelectAll 用 ids 替换集合 c 的选择，保留首次出现的顺序
func (s *Selection) SelectAll(c domain.Collection, ids []int64) error {
	if !c.IsValid() {
		return code.ErrorCollectionNotFound.Clone().WithDetails(string(c))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.all {
		return code.ErrorSelectionDisabled
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	s.selected[c] = out
	return nil
}

// Clear empties the selection of c; an empty c clears every collection
// Clear 清空集合 c 的选择，c 为空时清空全部
func (s *Selection) Clear(c domain.Collection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c == "" {
		s.selected = make(map[domain.Collection][]int64)
		return
	}
	delete(s.selected, c)
}

// Selected returns a copy of the ids selected in c
// Selected 返回集合 c 中已选 id 的副本
func (s *Selection) Selected(c domain.Collection) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64{}, s.selected[c]...)
}

// SetAllCollections switches all-collections mode; entering it drops the per-item sets
// SetAllCollections 切换全量模式，进入全量模式时丢弃单项选择
func (s *Selection) SetAllCollections(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = on
	if on {
		s.selected = make(map[domain.Collection][]int64)
	}
}

// AllCollections 是否处于全量模式
func (s *Selection) AllCollections() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.all
}

// Snapshot returns every non-empty selection keyed by collection name
// Snapshot 以集合名为键返回全部非空选择
func (s *Selection) Snapshot() map[string][]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]int64, len(s.selected))
	for c, ids := range s.selected {
		if len(ids) > 0 {
			out[string(c)] = append([]int64{}, ids...)
		}
	}
	return out
}
