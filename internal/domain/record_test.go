package domain

import (
	"errors"
	"testing"

	"github.com/echoapp/echo-sync-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nowMs = int64(1741064767891) // 2025-03-04T05:06:07.891Z

func TestNoteApplyDefaults(t *testing.T) {
	n := &Note{Content: "hello"}
	n.ApplyDefaults(nowMs)

	assert.Equal(t, "2025-03-04T05:06:07.891Z", n.CreatedAt)
	assert.Equal(t, nowMs, n.CreatedAtLong)
	assert.Equal(t, nowMs, n.UpdatedAtLong)
	assert.Equal(t, nowMs, n.LocalUpdatedAtLong)
	assert.Equal(t, int64(1), n.CreatorID)
	assert.Equal(t, "local", n.Source)
	assert.Equal(t, []string{}, n.Tags)
	assert.Equal(t, "memo-1741064767891", n.Slug)
	assert.Equal(t, []int64{}, n.Files)
	assert.Equal(t, []int64{}, n.LinkedMemos)
	assert.Nil(t, n.Links)
	assert.Nil(t, n.DeletedAt)
	assert.False(t, n.IsDeleted())
}

func TestNoteApplyDefaultsKeepsCallerValues(t *testing.T) {
	deleted := "2020-01-01T00:00:00.000Z"
	n := &Note{
		Slug:          "mine",
		CreatorID:     7,
		CreatedAtLong: 1000,
		UpdatedAt:     "2025-03-04T05:06:07.891Z",
		DeletedAt:     &deleted,
		DeletedAtLong: 5,
	}
	n.ApplyDefaults(nowMs)

	assert.Equal(t, "mine", n.Slug)
	assert.Equal(t, int64(7), n.CreatorID)
	assert.Equal(t, "1970-01-01T00:00:01.000Z", n.CreatedAt)
	assert.Equal(t, nowMs, n.UpdatedAtLong)
	// a new note is never born deleted
	assert.Nil(t, n.DeletedAt)
	assert.Zero(t, n.DeletedAtLong)
}

func TestNoteTouchAndMarkDeleted(t *testing.T) {
	n := &Note{}
	n.ApplyDefaults(1)
	n.MarkDeleted(nowMs)

	require.NotNil(t, n.DeletedAt)
	assert.Equal(t, "2025-03-04T05:06:07.891Z", *n.DeletedAt)
	assert.Equal(t, nowMs, n.DeletedAtLong)
	assert.Equal(t, nowMs, n.UpdatedAtLong)
	assert.Equal(t, n.UpdatedAt, n.LocalUpdatedAt)
	assert.Equal(t, int64(1), n.CreatedAtLong)
}

func TestApplyPatch(t *testing.T) {
	n := &Note{ID: 3, Content: "a", Tags: []string{"x"}, Pin: 1}
	content := "b"
	require.NoError(t, ApplyPatch(n, &NotePatch{Content: &content}))
	assert.Equal(t, &Note{ID: 3, Content: "b", Tags: []string{"x"}, Pin: 1}, n)

	err := ApplyPatch(n, &TagPatch{})
	assert.True(t, errors.Is(err, code.ErrorRecordTypeMismatch))
}

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection("memo_content_histories")
	require.NoError(t, err)
	assert.Equal(t, CollectionRevisions, c)

	_, err = ParseCollection("tagInfos")
	assert.True(t, errors.Is(err, code.ErrorCollectionNotFound))
}

func TestSnapshotSetAndRecords(t *testing.T) {
	s := NewSnapshot()
	require.NoError(t, s.Set(CollectionTags, []Record{&Tag{ID: 1, Name: "go"}}))
	recs := s.Records(CollectionTags)
	require.Len(t, recs, 1)
	assert.Equal(t, "go", recs[0].(*Tag).Name)

	err := s.Set(CollectionMemos, []Record{&Tag{ID: 2}})
	assert.True(t, errors.Is(err, code.ErrorRecordTypeMismatch))
	assert.NotNil(t, s.ZipCache)
}
