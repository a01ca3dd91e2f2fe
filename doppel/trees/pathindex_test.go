package trees

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPathIndex_InsertAndCount(t *testing.T) {
	idx := NewPathIndex()

	idx.Insert("/data/photos/a.jpg")
	idx.Insert("/data/photos/b.jpg")
	idx.Insert("/data/docs/a.jpg")

	count, found := idx.Count("/data/photos")
	assert.True(t, found)
	assert.Equal(t, 2, count)

	count, found = idx.Count("/data/docs")
	assert.True(t, found)
	assert.Equal(t, 1, count)

	_, found = idx.Count("/data/missing")
	assert.False(t, found)

	assert.Equal(t, int64(2), idx.Size(), "two distinct directories indexed")

	stats := idx.GetStats()
	assert.Equal(t, int64(3), stats.Insertions)
}

func TestPathIndex_TopDirectories(t *testing.T) {
	idx := NewPathIndex()

	idx.Insert("/data/a/1.txt")
	idx.Insert("/data/a/2.txt")
	idx.Insert("/data/a/3.txt")
	idx.Insert("/data/b/1.txt")
	idx.Insert("/data/c/1.txt")

	top := idx.TopDirectories(2)
	assert.Len(t, top, 2)
	assert.Equal(t, DirCount{Path: "/data/a", Count: 3}, top[0])
	assert.Equal(t, DirCount{Path: "/data/b", Count: 1}, top[1], "ties break by path order")

	all := idx.TopDirectories(0)
	assert.Len(t, all, 3, "non-positive n returns everything")
}

func TestPathIndex_CommonPrefix(t *testing.T) {
	t.Run("empty index has no prefix", func(t *testing.T) {
		assert.Empty(t, NewPathIndex().CommonPrefix())
	})

	t.Run("single directory is its own prefix", func(t *testing.T) {
		idx := NewPathIndex()
		idx.Insert("/data/photos/a.jpg")
		assert.Equal(t, "/data/photos", idx.CommonPrefix())
	})

	t.Run("prefix cuts back to a directory boundary", func(t *testing.T) {
		idx := NewPathIndex()
		idx.Insert("/data/sub1/a.txt")
		idx.Insert("/data/sub2/a.txt")
		assert.Equal(t, "/data", idx.CommonPrefix(), "partial component sub must not leak into the prefix")
	})

	t.Run("indexed ancestor survives intact", func(t *testing.T) {
		idx := NewPathIndex()
		idx.Insert("/data/sub/a.txt")
		idx.Insert("/data/sub/deep/a.txt")
		assert.Equal(t, "/data/sub", idx.CommonPrefix())
	})

	t.Run("disjoint roots fall back to slash", func(t *testing.T) {
		idx := NewPathIndex()
		idx.Insert("/alpha/a.txt")
		idx.Insert("/beta/a.txt")
		assert.Equal(t, "/", idx.CommonPrefix())
	})
}

func TestPathIndex_WalkDirs(t *testing.T) {
	idx := NewPathIndex()
	idx.Insert("/x/a.txt")
	idx.Insert("/y/a.txt")

	visited := map[string]int{}
	idx.WalkDirs(func(path string, count int) bool {
		visited[path] = count
		return false
	})

	assert.Equal(t, map[string]int{"/x": 1, "/y": 1}, visited)
}
