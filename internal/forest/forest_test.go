package forest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type leaf struct {
	k1, k2, k3 int
	v          string
}

func collect(f *Forest[int, int, int, string]) []leaf {
	var out []leaf
	f.Range(func(k1, k2, k3 int, v string) bool {
		out = append(out, leaf{k1, k2, k3, v})
		return true
	})
	return out
}

func TestSetGet(t *testing.T) {
	f := New[int, int, int, string]()
	f.Set(1, 2, 3, "a")
	f.Set(1, 2, 3, "b")

	v, ok := f.Get(1, 2, 3)
	require.True(t, ok)
	assert.Equal(t, "b", v)
	assert.Equal(t, 1, f.Len(), "overwrite must not grow the count")

	_, ok = f.Get(1, 2, 4)
	assert.False(t, ok)
	_, ok = f.Get(9, 9, 9)
	assert.False(t, ok)
}

func TestDelete_PrunesEmptyLevels(t *testing.T) {
	f := New[int, int, int, string]()
	f.Set(1, 1, 1, "a")
	f.Set(1, 1, 2, "b")
	f.Set(1, 2, 1, "c")

	assert.True(t, f.Delete(1, 1, 1))
	assert.False(t, f.Delete(1, 1, 1))
	assert.True(t, f.HasBranch(1, 1))

	assert.True(t, f.Delete(1, 1, 2))
	assert.False(t, f.HasBranch(1, 1))
	assert.NotContains(t, f.roots[1], 1, "empty branch should be pruned")

	assert.True(t, f.Delete(1, 2, 1))
	assert.Empty(t, f.roots, "empty root should be pruned")
	assert.Equal(t, 0, f.Len())
}

func TestDeleteBranch_Cascades(t *testing.T) {
	f := New[int, int, int, string]()
	f.Set(1, 1, 1, "a")
	f.Set(1, 1, 2, "b")
	f.Set(1, 2, 1, "c")

	removed := f.DeleteBranch(1, 1)
	assert.Equal(t, map[int]string{1: "a", 2: "b"}, removed)
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, []leaf{{1, 2, 1, "c"}}, collect(f))

	assert.Nil(t, f.DeleteBranch(7, 7))
}

func TestDeleteRoot_Cascades(t *testing.T) {
	f := New[int, int, int, string]()
	f.Set(1, 1, 1, "a")
	f.Set(1, 2, 1, "b")
	f.Set(2, 1, 1, "c")

	assert.Equal(t, 2, f.DeleteRoot(1))
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, []leaf{{2, 1, 1, "c"}}, collect(f))
	assert.Equal(t, 0, f.DeleteRoot(1))
}

func TestRange_Ordered(t *testing.T) {
	f := New[int, int, int, string]()
	f.Set(2, 1, 1, "d")
	f.Set(1, 2, 2, "c")
	f.Set(1, 2, 1, "b")
	f.Set(1, 1, 5, "a")

	assert.Equal(t, []leaf{
		{1, 1, 5, "a"},
		{1, 2, 1, "b"},
		{1, 2, 2, "c"},
		{2, 1, 1, "d"},
	}, collect(f))

	var first []string
	f.Range(func(_, _, _ int, v string) bool {
		first = append(first, v)
		return false
	})
	assert.Equal(t, []string{"a"}, first)
	assert.Equal(t, []int{1, 2}, f.Keys3(1, 2))
}
