package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestSync(store domain.RecordStore, remote *memRemote, clock Clock) *syncService {
	return NewSyncService(store, &staticRemote{client: remote}, SyncConfig{AppName: "echoapp", StatusReset: time.Hour}, clock, zap.NewNop()).(*syncService)
}

func seedNotes(store *memStore) {
	store.put(
		&domain.Note{ID: 1, Slug: "first", Content: "one", UpdatedAtLong: 1000},
		&domain.Note{ID: 2, Slug: "second", Content: "two"},
		&domain.Note{ID: 3, Content: "three"},
	)
}

func TestSyncCollectionUploadsInOrder(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	remote := newMemRemote()
	svc := newTestSync(store, remote, nil)

	var progress []int
	res, err := svc.SyncCollection(context.Background(), domain.CollectionMemos, []int64{3, 1, 2}, func(p int) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Uploaded)
	assert.Equal(t, []string{"/echoapp_memos/3.md", "/echoapp_memos/first.md", "/echoapp_memos/second.md"}, remote.order)
	assert.Equal(t, []int{33, 67, 100}, progress)
	assert.True(t, remote.dirs["/echoapp_memos"])
	assert.Contains(t, string(remote.files["/echoapp_memos/first.md"]), "title: first\n")
	assert.Equal(t, SyncStateSuccess, svc.Status().State)
}

func TestSyncCollectionJSONRecords(t *testing.T) {
	store := newMemStore()
	store.put(&domain.Tag{ID: 4, Name: "go"})
	remote := newMemRemote()
	svc := newTestSync(store, remote, nil)

	_, err := svc.SyncCollection(context.Background(), domain.CollectionTags, []int64{4}, nil)
	require.NoError(t, err)

	var tags []domain.Tag
	require.NoError(t, json.Unmarshal(remote.files["/echoapp_tags/4.json"], &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, "go", tags[0].Name)
}

func TestSyncCollectionPartialFailure(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	remote := newMemRemote()
	remote.failOn = "/echoapp_memos/second.md"
	svc := newTestSync(store, remote, nil)

	res, err := svc.SyncCollection(context.Background(), domain.CollectionMemos, []int64{1, 2, 3}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, code.ErrorSyncAborted))
	assert.True(t, errors.Is(err, errUploadRefused))

	var se *SyncError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Attempted)
	assert.Equal(t, 1, se.Uploaded)
	assert.Equal(t, 3, se.Total)
	assert.Equal(t, "/echoapp_memos/second.md", se.Path)
	assert.Equal(t, 1, res.Uploaded)

	// no rollback, and nothing after the failure is attempted
	assert.Equal(t, []string{"/echoapp_memos/first.md"}, remote.order)

	st := svc.Status()
	assert.Equal(t, SyncStateError, st.State)
	assert.Equal(t, 33, st.Progress)

	svc.Reset()
	assert.Equal(t, SyncStateIdle, svc.Status().State)
}

func TestSyncCollectionResolvesBeforeUpload(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	remote := newMemRemote()
	svc := newTestSync(store, remote, nil)

	_, err := svc.SyncCollection(context.Background(), domain.CollectionMemos, []int64{1, 99}, nil)
	assert.True(t, errors.Is(err, code.ErrorRecordNotFound))
	assert.Empty(t, remote.order)

	_, err = svc.SyncCollection(context.Background(), domain.CollectionMemos, nil, nil)
	assert.True(t, errors.Is(err, code.ErrorSyncEmptySelection))

	_, err = svc.SyncCollection(context.Background(), domain.Collection("zipCache"), []int64{1}, nil)
	assert.True(t, errors.Is(err, code.ErrorCollectionNotFound))
}

func TestSyncAllSnapshotNaming(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	store.put(&domain.Tag{ID: 9, Name: "t"})
	remote := newMemRemote()
	now := time.Date(2025, 3, 4, 5, 6, 7, 891_000_000, time.UTC)
	svc := newTestSync(store, remote, fixedClock(now))

	var progress []int
	res, err := svc.SyncAll(context.Background(), func(p int) { progress = append(progress, p) })
	require.NoError(t, err)

	want := "/echoapp_backup/echoapp_backup_2025-03-04T05-06-07-891Z.json"
	assert.Equal(t, []string{want}, res.Paths)
	assert.Equal(t, []int{0, 100}, progress)
	assert.True(t, remote.dirs["/echoapp_backup"])

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(remote.files[want], &doc))
	for _, key := range []string{"files", "history", "links", "memo_actions", "memo_content_histories",
		"memos", "tagInfos", "tagSort", "tag_tree_name", "tag_actions", "tags", "zipCache"} {
		assert.Contains(t, doc, key)
	}
	assert.JSONEq(t, "[]", string(doc["zipCache"]))

	var memos []domain.Note
	require.NoError(t, json.Unmarshal(doc["memos"], &memos))
	assert.Len(t, memos, 3)
}

func TestSyncSelectedFollowsSelection(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	remote := newMemRemote()
	svc := newTestSync(store, remote, fixedClock(time.UnixMilli(0)))

	require.NoError(t, svc.Selection().SelectAll(domain.CollectionMemos, []int64{2}))
	_, err := svc.SyncSelected(context.Background(), domain.CollectionMemos, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/echoapp_memos/second.md"}, remote.order)

	svc.Selection().SetAllCollections(true)
	res, err := svc.SyncSelected(context.Background(), domain.CollectionMemos, nil)
	require.NoError(t, err)
	assert.Equal(t, "all", res.Collection)
}

func TestSyncRejectsConcurrentRun(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	remote := newMemRemote()
	remote.blockCh = make(chan struct{})
	svc := newTestSync(store, remote, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SyncCollection(context.Background(), domain.CollectionMemos, []int64{1}, nil)
		done <- err
	}()

	require.Eventually(t, func() bool { return svc.Status().State == SyncStateSyncing }, time.Second, 5*time.Millisecond)
	_, err := svc.SyncAll(context.Background(), nil)
	assert.True(t, errors.Is(err, code.ErrorSyncInProgress))

	close(remote.blockCh)
	require.NoError(t, <-done)
}

func TestSyncIgnoresCallerCancellation(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	remote := newMemRemote()
	svc := newTestSync(store, remote, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := svc.SyncCollection(ctx, domain.CollectionMemos, []int64{1, 2}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Uploaded)
}

func TestSyncStatusResetsAfterWindow(t *testing.T) {
	store := newMemStore()
	seedNotes(store)
	svc := NewSyncService(store, &staticRemote{client: newMemRemote()},
		SyncConfig{StatusReset: 20 * time.Millisecond}, nil, zap.NewNop())
	defer svc.Shutdown()

	_, err := svc.SyncCollection(context.Background(), domain.CollectionMemos, []int64{1}, nil)
	require.NoError(t, err)
	assert.Equal(t, SyncStateSuccess, svc.Status().State)
	assert.Eventually(t, func() bool { return svc.Status().State == SyncStateIdle }, time.Second, 5*time.Millisecond)
}

func TestSyncRemoteNotConfigured(t *testing.T) {
	svc := NewSyncService(newMemStore(), &staticRemote{err: code.ErrorRemoteNotConfigured},
		SyncConfig{}, nil, zap.NewNop())
	defer svc.Shutdown()

	_, err := svc.SyncAll(context.Background(), nil)
	assert.True(t, errors.Is(err, code.ErrorRemoteNotConfigured))
	assert.Equal(t, SyncStateError, svc.Status().State)
}

func TestSnapshotFileName(t *testing.T) {
	ts := time.Date(2024, 12, 31, 23, 59, 59, 5_000_000, time.FixedZone("x", 3600))
	assert.Equal(t, "app_backup_2024-12-31T22-59-59-005Z.json", SnapshotFileName("app", ts))
}
