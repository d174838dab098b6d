package dao

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/pkg/code"
	"github.com/echoapp/echo-sync-service/pkg/writequeue"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngineWithConfig(DatabaseConfig{
		Type: "sqlite",
		Path: filepath.Join(t.TempDir(), "test.db"),
	}, zap.NewNop())
	require.NoError(t, err)

	cfg := writequeue.DefaultConfig()
	wq := writequeue.New(&cfg, zap.NewNop())
	t.Cleanup(func() {
		_ = wq.Shutdown(context.Background())
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db, wq, zap.NewNop())
}

func newTestStore(t *testing.T, seed *domain.Snapshot) domain.RecordStore {
	t.Helper()
	store := NewRecordStore(newTestDao(t))
	require.NoError(t, store.Initialize(context.Background(), seed))
	return store
}

func TestInitializeSeedsAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	seed := domain.NewSnapshot()
	seed.Memos = []*domain.Note{
		{ID: 5, Content: "five", CreatedAtLong: 10},
		{Content: "no id", CreatedAtLong: 20},
	}
	seed.Tags = []*domain.Tag{{ID: 2, Name: "go", Count: 3}}

	d := newTestDao(t)
	store := NewRecordStore(d)
	require.NoError(t, store.Initialize(ctx, seed))

	memos, err := store.Read(ctx, domain.CollectionMemos)
	require.NoError(t, err)
	require.Len(t, memos, 2)
	assert.Equal(t, int64(5), memos[0].GetID())
	assert.Equal(t, int64(6), memos[1].GetID())

	// a second initialize with another seed is a no-op
	other := domain.NewSnapshot()
	other.Memos = []*domain.Note{{ID: 100, Content: "ignored"}}
	require.NoError(t, store.Initialize(ctx, other))

	n, err := store.Count(ctx, domain.CollectionMemos)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	// the sequence was bumped past the explicit seed ids
	id, err := store.Create(ctx, domain.CollectionMemos, &domain.Note{Content: "new"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	id, err = store.Create(ctx, domain.CollectionTags, &domain.Tag{Name: "rust"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestCreateFillsDefaultsAndIgnoresCallerID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	note := &domain.Note{ID: 42, Content: "hello"}
	id, err := store.Create(ctx, domain.CollectionMemos, note)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	rec, err := store.ReadOne(ctx, domain.CollectionMemos, id)
	require.NoError(t, err)
	got := rec.(*domain.Note)
	assert.Equal(t, "hello", got.Content)
	assert.Equal(t, int64(1), got.CreatorID)
	assert.Equal(t, "local", got.Source)
	assert.Equal(t, []string{}, got.Tags)
	assert.Equal(t, []int64{}, got.Files)
	assert.Nil(t, got.Links)
	assert.NotZero(t, got.CreatedAtLong)
	assert.Equal(t, got.CreatedAtLong, got.UpdatedAtLong)
	assert.Regexp(t, `^memo-\d+$`, got.Slug)
}

func TestReadOneMissAndErrors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	rec, err := store.ReadOne(ctx, domain.CollectionFiles, 99)
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = store.Read(ctx, domain.Collection("zipCache"))
	assert.True(t, errors.Is(err, code.ErrorCollectionNotFound))

	content := "x"
	_, err = store.Update(ctx, domain.CollectionMemos, 99, &domain.NotePatch{Content: &content})
	assert.True(t, errors.Is(err, code.ErrorRecordNotFound))

	err = store.Delete(ctx, domain.CollectionMemos, 99)
	assert.True(t, errors.Is(err, code.ErrorRecordNotFound))

	_, err = store.Update(ctx, domain.CollectionMemos, 1, &domain.TagPatch{})
	assert.True(t, errors.Is(err, code.ErrorRecordTypeMismatch))
}

func TestUpdateRefreshesTimestamps(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	id, err := store.Create(ctx, domain.CollectionMemos, &domain.Note{
		Content:       "a",
		Tags:          []string{"t1"},
		CreatedAtLong: 1000,
		UpdatedAtLong: 1000,
	})
	require.NoError(t, err)

	pin := 1
	rec, err := store.Update(ctx, domain.CollectionMemos, id, &domain.NotePatch{Pin: &pin})
	require.NoError(t, err)
	n := rec.(*domain.Note)
	assert.Equal(t, 1, n.Pin)
	assert.Equal(t, "a", n.Content)
	assert.Equal(t, []string{"t1"}, n.Tags)
	assert.Equal(t, int64(1000), n.CreatedAtLong)
	assert.Greater(t, n.UpdatedAtLong, int64(1000))
	assert.Equal(t, n.UpdatedAtLong, n.LocalUpdatedAtLong)
}

func TestUpdateRefreshesRevisionTimestampWhenPresent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	old := "2020-01-01T00:00:00.000Z"
	withTime, err := store.Create(ctx, domain.CollectionRevisions, &domain.ContentRevision{Slug: "a", Hash: 1, UpdatedAt: &old})
	require.NoError(t, err)
	withoutTime, err := store.Create(ctx, domain.CollectionRevisions, &domain.ContentRevision{Slug: "b", Hash: 1})
	require.NoError(t, err)

	hash := int64(2)
	rec, err := store.Update(ctx, domain.CollectionRevisions, withTime, &domain.ContentRevisionPatch{Hash: &hash})
	require.NoError(t, err)
	r := rec.(*domain.ContentRevision)
	assert.Equal(t, int64(2), r.Hash)
	assert.Equal(t, "a", r.Slug)
	require.NotNil(t, r.UpdatedAt)
	assert.Greater(t, *r.UpdatedAt, old)

	stored, err := store.ReadOne(ctx, domain.CollectionRevisions, withTime)
	require.NoError(t, err)
	assert.Equal(t, r.UpdatedAt, stored.(*domain.ContentRevision).UpdatedAt)

	rec, err = store.Update(ctx, domain.CollectionRevisions, withoutTime, &domain.ContentRevisionPatch{Hash: &hash})
	require.NoError(t, err)
	assert.Nil(t, rec.(*domain.ContentRevision).UpdatedAt)
}

func TestSoftDeleteHidesAndPurgeRemoves(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	keep, _ := store.Create(ctx, domain.CollectionMemos, &domain.Note{Content: "keep"})
	gone, _ := store.Create(ctx, domain.CollectionMemos, &domain.Note{Content: "gone"})

	n, err := store.SoftDelete(ctx, gone)
	require.NoError(t, err)
	assert.True(t, n.IsDeleted())

	recs, total, err := store.ReadAndCount(ctx, domain.CollectionMemos)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, recs, 1)
	assert.Equal(t, keep, recs[0].GetID())

	rec, err := store.ReadOne(ctx, domain.CollectionMemos, gone)
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, err = store.SoftDelete(ctx, gone)
	assert.True(t, errors.Is(err, code.ErrorRecordNotFound))

	snap, err := store.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Memos, 2)
	assert.NotNil(t, snap.TagInfos)

	purged, err := store.PurgeDeleted(ctx, n.DeletedAtLong+1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	snap, err = store.Dump(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Memos, 1)
}

func TestConcurrentCreatesGetUniqueIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	const workers = 20
	ids := make(chan int64, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := store.Create(ctx, domain.CollectionLinks, &domain.LinkEntry{Source: "s", Link: "l"})
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

func TestIdentityIsMonotonicAndNeverReused(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20
	properties := gopter.NewProperties(parameters)

	var last int64
	properties.Property("ids strictly increase across creates and deletes", prop.ForAll(
		func(ops []bool) bool {
			for _, create := range ops {
				id, err := store.Create(ctx, domain.CollectionHistory, &domain.HistoryEntry{Slug: "s"})
				if err != nil || id <= last {
					return false
				}
				last = id
				if !create {
					if err := store.Delete(ctx, domain.CollectionHistory, id); err != nil {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOfN(5, gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestUpdatePreservesUnspecifiedFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 25
	properties := gopter.NewProperties(parameters)

	properties.Property("only patched fields change", prop.ForAll(
		func(content string, setContent bool, pin int, setPin bool, tag string, setTags bool) bool {
			base := &domain.Note{Content: "base", Pin: 0, Tags: []string{"base"}, Slug: "base-slug"}
			id, err := store.Create(ctx, domain.CollectionMemos, base)
			if err != nil {
				return false
			}

			patch := &domain.NotePatch{}
			want := *base
			if setContent {
				patch.Content = &content
				want.Content = content
			}
			if setPin {
				patch.Pin = &pin
				want.Pin = pin
			}
			if setTags {
				tags := []string{tag}
				patch.Tags = &tags
				want.Tags = tags
			}

			rec, err := store.Update(ctx, domain.CollectionMemos, id, patch)
			if err != nil {
				return false
			}
			got := rec.(*domain.Note)
			stored, err := store.ReadOne(ctx, domain.CollectionMemos, id)
			if err != nil || stored == nil {
				return false
			}
			s := stored.(*domain.Note)
			return got.Content == want.Content && s.Content == want.Content &&
				s.Pin == want.Pin && len(s.Tags) == 1 && s.Tags[0] == want.Tags[0] &&
				s.Slug == "base-slug" && s.CreatedAtLong == base.CreatedAtLong &&
				s.CreatorID == 1 && s.Source == "local"
		},
		gen.AlphaString(),
		gen.Bool(),
		gen.IntRange(0, 1),
		gen.Bool(),
		gen.Identifier(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func TestInitializeIsIdempotentProperty(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, nil)
	_, err := store.Create(ctx, domain.CollectionTags, &domain.Tag{Name: "first"})
	require.NoError(t, err)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 10
	properties := gopter.NewProperties(parameters)

	properties.Property("re-initializing never changes stored data", prop.ForAll(
		func(names []string) bool {
			seed := domain.NewSnapshot()
			for _, name := range names {
				seed.Tags = append(seed.Tags, &domain.Tag{Name: name})
			}
			if err := store.Initialize(ctx, seed); err != nil {
				return false
			}
			recs, err := store.Read(ctx, domain.CollectionTags)
			return err == nil && len(recs) == 1 && recs[0].(*domain.Tag).Name == "first"
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

func TestSettingRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSettingRepository(newTestDao(t))

	s, err := repo.Get(ctx, domain.SettingKeyWebDAVConfig)
	require.NoError(t, err)
	assert.Nil(t, s)

	require.NoError(t, repo.Save(ctx, domain.SettingKeyWebDAVConfig, `{"serverUrl":"a"}`))
	require.NoError(t, repo.Save(ctx, domain.SettingKeyWebDAVConfig, `{"serverUrl":"b"}`))

	s, err = repo.Get(ctx, domain.SettingKeyWebDAVConfig)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, `{"serverUrl":"b"}`, s.Value)

	require.NoError(t, repo.Delete(ctx, domain.SettingKeyWebDAVConfig))
	s, err = repo.Get(ctx, domain.SettingKeyWebDAVConfig)
	require.NoError(t, err)
	assert.Nil(t, s)
}
