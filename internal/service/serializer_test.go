package service

import (
	"encoding/json"
	"testing"

	"github.com/echoapp/echo-sync-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteMarkup(t *testing.T) {
	n := &domain.Note{
		Slug:      "groceries",
		Content:   "milk\neggs",
		CreatedAt: "2025-03-04T05:06:07.891Z",
		UpdatedAt: "2025-03-05T00:00:00.000Z",
		Tags:      []string{"home", "todo"},
	}
	want := "---\ntitle: groceries\ncreated: 2025-03-04T05:06:07.891Z\nupdated: 2025-03-05T00:00:00.000Z\ntags: home, todo\n---\n\nmilk\neggs"
	assert.Equal(t, want, string(Serializer{}.NoteMarkup(n)))

	untitled := string(Serializer{}.NoteMarkup(&domain.Note{}))
	assert.Contains(t, untitled, "title: Untitled\n")
	assert.Contains(t, untitled, "tags: \n")
}

func TestFileName(t *testing.T) {
	var s Serializer
	assert.Equal(t, "a-b.md", s.FileName(domain.CollectionMemos, &domain.Note{ID: 1, Slug: "a/b"}))
	assert.Equal(t, "7.md", s.FileName(domain.CollectionMemos, &domain.Note{ID: 7}))
	assert.Equal(t, "3.json", s.FileName(domain.CollectionTags, &domain.Tag{ID: 3, Name: "x"}))
}

func TestJSONIsIndentedAndParses(t *testing.T) {
	var s Serializer
	data, err := s.Content(domain.CollectionTags, &domain.Tag{ID: 3, Name: "go", Count: 2})
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")

	var back []domain.Tag
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, domain.Tag{ID: 3, Name: "go", Count: 2}, back[0])
}
