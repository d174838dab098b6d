package service

import (
	"errors"
	"testing"

	"github.com/echoapp/echo-sync-service/internal/domain"
	"github.com/echoapp/echo-sync-service/pkg/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionToggle(t *testing.T) {
	s := NewSelection()

	on, err := s.Toggle(domain.CollectionMemos, 3)
	require.NoError(t, err)
	assert.True(t, on)
	_, _ = s.Toggle(domain.CollectionMemos, 1)
	_, _ = s.Toggle(domain.CollectionMemos, 2)
	assert.Equal(t, []int64{3, 1, 2}, s.Selected(domain.CollectionMemos))

	on, err = s.Toggle(domain.CollectionMemos, 1)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, []int64{3, 2}, s.Selected(domain.CollectionMemos))

	_, err = s.Toggle(domain.Collection("nope"), 1)
	assert.True(t, errors.Is(err, code.ErrorCollectionNotFound))
}

func TestSelectionSelectAllAndClear(t *testing.T) {
	s := NewSelection()
	require.NoError(t, s.SelectAll(domain.CollectionTags, []int64{5, 4, 5, 1}))
	assert.Equal(t, []int64{5, 4, 1}, s.Selected(domain.CollectionTags))
	require.NoError(t, s.SelectAll(domain.CollectionLinks, []int64{9}))

	s.Clear(domain.CollectionTags)
	assert.Empty(t, s.Selected(domain.CollectionTags))
	assert.Equal(t, map[string][]int64{"links": {9}}, s.Snapshot())

	s.Clear("")
	assert.Empty(t, s.Snapshot())
}

func TestSelectionAllCollectionsDisablesItems(t *testing.T) {
	s := NewSelection()
	_, _ = s.Toggle(domain.CollectionMemos, 1)

	s.SetAllCollections(true)
	assert.True(t, s.AllCollections())
	assert.Empty(t, s.Selected(domain.CollectionMemos))

	_, err := s.Toggle(domain.CollectionMemos, 2)
	assert.True(t, errors.Is(err, code.ErrorSelectionDisabled))
	assert.True(t, errors.Is(s.SelectAll(domain.CollectionMemos, []int64{1}), code.ErrorSelectionDisabled))

	s.SetAllCollections(false)
	_, err = s.Toggle(domain.CollectionMemos, 2)
	assert.NoError(t, err)
}
