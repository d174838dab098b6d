package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt64Slice(t *testing.T) {
	ids, err := StrTo("1, 2,,3").Int64Slice()
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)

	_, err = StrTo("1,x").Int64Slice()
	assert.Error(t, err)
}

type target struct {
	Name string
	Pin  int
	Tags []string
}

type patch struct {
	Name *string
	Pin  *int
	Tags *[]string
}

func TestMergePatch(t *testing.T) {
	dst := &target{Name: "a", Pin: 1, Tags: []string{"x"}}
	zero := 0
	require.NoError(t, MergePatch(dst, &patch{Pin: &zero}))
	assert.Equal(t, &target{Name: "a", Pin: 0, Tags: []string{"x"}}, dst)

	name := "b"
	tags := []string{"y", "z"}
	require.NoError(t, MergePatch(dst, &patch{Name: &name, Tags: &tags}))
	assert.Equal(t, &target{Name: "b", Pin: 0, Tags: []string{"y", "z"}}, dst)
}
