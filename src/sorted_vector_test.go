package lttoolbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSortedVectorInsert(t *testing.T) {
	var sv sorted_vector[int32]

	assert.True(t, sv.insert(5))
	assert.True(t, sv.insert(1))
	assert.True(t, sv.insert(3))
	assert.False(t, sv.insert(3), "duplicate insert must report false")

	assert.Equal(t, []int32{1, 3, 5}, sv.get())
	assert.True(t, sv.count(3))
	assert.False(t, sv.count(4))
}

func TestSortedVectorErase(t *testing.T) {
	var sv sorted_vector[int32]
	sv.insert_all([]int32{4, 2, 8})

	assert.True(t, sv.erase(4))
	assert.False(t, sv.erase(4))
	assert.Equal(t, []int32{2, 8}, sv.get())
}

func TestSortedVectorIntersects(t *testing.T) {
	var a, b, c sorted_vector[int32]
	a.insert_all([]int32{1, 3, 5})
	b.insert_all([]int32{2, 4, 5})
	c.insert_all([]int32{2, 4, 6})

	assert.True(t, a.intersects(&b))
	assert.False(t, a.intersects(&c))
	assert.False(t, a.intersects(&sorted_vector[int32]{}))
}

func TestSortedVectorInsertAllKeepsSetSemantics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var first = rapid.SliceOf(rapid.Int32()).Draw(t, "first")
		var second = rapid.SliceOf(rapid.Int32()).Draw(t, "second")

		var sv sorted_vector[int32]
		sv.insert_all(first)
		sv.insert_all(second)

		var want = make(map[int32]bool)
		for _, v := range first {
			want[v] = true
		}
		for _, v := range second {
			want[v] = true
		}

		assert.Equal(t, len(want), sv.size())
		var got = sv.get()
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i], "elements must stay strictly sorted")
		}
		for _, v := range got {
			assert.True(t, want[v])
		}
	})
}
