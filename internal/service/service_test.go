package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/fileurl"
	"github.com/echoapp/echo-sync-service/pkg/storage"
)

// --- Mocks ---

type memStore struct {
	domain.RecordStore
	mu      sync.Mutex
	nextID  int64
	records map[domain.Collection][]domain.Record
}

func newMemStore() *memStore {
	return &memStore{records: make(map[domain.Collection][]domain.Record)}
}

func (m *memStore) put(recs ...domain.Record) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range recs {
		if r.GetID() > m.nextID {
			m.nextID = r.GetID()
		}
		m.records[r.Collection()] = append(m.records[r.Collection()], r)
	}
}

func (m *memStore) visible(c domain.Collection) []domain.Record {
	var out []domain.Record
	for _, r := range m.records[c] {
		if n, ok := r.(*domain.Note); ok && n.IsDeleted() {
			continue
		}
		out = append(out, r)
	}
	return out
}

func (m *memStore) Create(ctx context.Context, c domain.Collection, rec domain.Record) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	rec.SetID(m.nextID)
	if n, ok := rec.(*domain.Note); ok {
		n.ApplyDefaults(time.Now().UnixMilli())
	}
	m.records[c] = append(m.records[c], rec)
	return rec.GetID(), nil
}

func (m *memStore) Read(ctx context.Context, c domain.Collection) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.visible(c), nil
}

func (m *memStore) ReadAndCount(ctx context.Context, c domain.Collection) ([]domain.Record, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := m.visible(c)
	return out, int64(len(out)), nil
}

func (m *memStore) ReadOne(ctx context.Context, c domain.Collection, id int64) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.visible(c) {
		if r.GetID() == id {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memStore) SoftDelete(ctx context.Context, id int64) (*domain.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.visible(domain.CollectionMemos) {
		if r.GetID() == id {
			n := r.(*domain.Note)
			n.MarkDeleted(time.Now().UnixMilli())
			return n, nil
		}
	}
	return nil, code.ErrorRecordNotFound
}

func (m *memStore) PurgeDeleted(ctx context.Context, before int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []domain.Record
	var n int64
	for _, r := range m.records[domain.CollectionMemos] {
		if note := r.(*domain.Note); note.DeletedAtLong > 0 && note.DeletedAtLong < before {
			n++
			continue
		}
		kept = append(kept, r)
	}
	m.records[domain.CollectionMemos] = kept
	return n, nil
}

func (m *memStore) Dump(ctx context.Context) (*domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := domain.NewSnapshot()
	for _, c := range domain.Collections {
		if err := snap.Set(c, m.records[c]); err != nil {
			return nil, err
		}
	}
	return snap, nil
}

// memRemote is an in-memory remote store; failOn makes uploads to that path fail
type memRemote struct {
	mu      sync.Mutex
	files   map[string][]byte
	dirs    map[string]bool
	order   []string
	failOn  string
	blockCh chan struct{}
}

func newMemRemote() *memRemote {
	return &memRemote{files: map[string][]byte{}, dirs: map[string]bool{}}
}

var errUploadRefused = errors.New("upload refused")

func (r *memRemote) MkdirAll(ctx context.Context, dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dirs[dir] = true
	return nil
}

func (r *memRemote) SendContent(ctx context.Context, p string, content []byte, modTime time.Time) (string, error) {
	if r.blockCh != nil {
		<-r.blockCh
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if p == r.failOn {
		return "", errUploadRefused
	}
	r.files[p] = append([]byte{}, content...)
	r.order = append(r.order, p)
	return p, nil
}

func (r *memRemote) ReadContent(ctx context.Context, p string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data, ok := r.files[p]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (r *memRemote) List(ctx context.Context, dir string) ([]fileurl.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []fileurl.Entry
	for p, data := range r.files {
		if len(p) > len(dir) && p[:len(dir)] == dir {
			out = append(out, fileurl.Entry{Name: p[len(dir)+1:], Path: p, Size: int64(len(data))})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (r *memRemote) Delete(ctx context.Context, p string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, p)
	return nil
}

type staticRemote struct {
	RemoteConfigService
	client storage.Storager
	err    error
}

func (s *staticRemote) Storage(ctx context.Context) (storage.Storager, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.client, nil
}

type memSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func (m *memSettingRepo) Get(ctx context.Context, key string) (*domain.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, nil
	}
	return &domain.Setting{Key: key, Value: v}, nil
}

func (m *memSettingRepo) Save(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}

func (m *memSettingRepo) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}
