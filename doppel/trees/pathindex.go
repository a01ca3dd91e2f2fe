package trees

import (
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/armon/go-radix"
)

// PathIndexStats tracks usage metrics for the path index
type PathIndexStats struct {
	TotalDirs  int64
	Insertions int64
	Lookups    int64
	mu         sync.RWMutex
}

// DirCount pairs a directory with the number of duplicate files under it
type DirCount struct {
	Path  string
	Count int
}

// PathIndex aggregates duplicate locations per directory on a compressed
// trie (patricia tree), giving O(k) lookups where k is the path length.
// It powers the concentration summary shown after a scan.
type PathIndex struct {
	tree  *radix.Tree  // directory path -> duplicate count
	mu    sync.RWMutex // Read-write mutex for concurrent access
	stats *PathIndexStats
}

// NewPathIndex creates an empty patricia tree-based path index
func NewPathIndex() *PathIndex {
	return &PathIndex{
		tree:  radix.New(),
		stats: &PathIndexStats{},
	}
}

// Insert records one duplicate file, counted against its parent directory
func (idx *PathIndex) Insert(filePath string) {
	dir := idx.normalizePath(filepath.Dir(filePath))

	idx.mu.Lock()
	defer idx.mu.Unlock()

	count := 0
	if value, found := idx.tree.Get(dir); found {
		count = value.(int)
	}
	_, updated := idx.tree.Insert(dir, count+1)

	idx.stats.mu.Lock()
	if !updated {
		idx.stats.TotalDirs++
	}
	idx.stats.Insertions++
	idx.stats.mu.Unlock()

	slog.Debug("Path index insertion completed",
		"dir", dir,
		"count", count+1,
		"total_dirs", idx.stats.TotalDirs)
}

// Count returns the duplicate count recorded for an exact directory path
func (idx *PathIndex) Count(dirPath string) (int, bool) {
	normalized := idx.normalizePath(dirPath)

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.stats.mu.Lock()
	idx.stats.Lookups++
	idx.stats.mu.Unlock()

	value, found := idx.tree.Get(normalized)
	if !found {
		return 0, false
	}
	return value.(int), true
}

// Size returns the number of distinct directories holding duplicates
func (idx *PathIndex) Size() int64 {
	idx.stats.mu.RLock()
	defer idx.stats.mu.RUnlock()
	return idx.stats.TotalDirs
}

// GetStats returns a copy of the current path index statistics
func (idx *PathIndex) GetStats() PathIndexStats {
	idx.stats.mu.RLock()
	defer idx.stats.mu.RUnlock()

	return PathIndexStats{
		TotalDirs:  idx.stats.TotalDirs,
		Insertions: idx.stats.Insertions,
		Lookups:    idx.stats.Lookups,
	}
}

// WalkDirs executes fn for each indexed directory until fn returns true
func (idx *PathIndex) WalkDirs(fn func(path string, count int) bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	idx.tree.Walk(func(key string, value interface{}) bool {
		if count, ok := value.(int); ok {
			return fn(key, count)
		}
		return false // Continue if type assertion fails
	})
}

// TopDirectories returns the n directories with the most duplicates,
// ordered by count descending, path ascending on ties
func (idx *PathIndex) TopDirectories(n int) []DirCount {
	var all []DirCount
	idx.WalkDirs(func(path string, count int) bool {
		all = append(all, DirCount{Path: path, Count: count})
		return false
	})

	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Path < all[j].Path
	})

	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// CommonPrefix finds the longest common directory prefix among all indexed
// paths, trimmed back to a path-separator boundary so it names a real
// ancestor rather than a partial component.
func (idx *PathIndex) CommonPrefix() string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var prefix string
	first := true

	idx.tree.Walk(func(key string, value interface{}) bool {
		if first {
			prefix = key
			first = false
		} else {
			prefix = commonPrefix(prefix, key)
		}
		return len(prefix) == 0 // Stop if no common prefix
	})

	if first {
		return ""
	}

	// A byte-level prefix can end mid-component ("/a/sub" for /a/sub1 and
	// /a/sub2); cut back to the containing directory unless the prefix is
	// itself an indexed directory.
	if _, exact := idx.tree.Get(prefix); exact {
		return prefix
	}
	cut := strings.LastIndex(prefix, "/")
	switch {
	case cut > 0:
		return prefix[:cut]
	case cut == 0:
		return "/"
	default:
		return ""
	}
}

// commonPrefix finds the common prefix between two paths
func commonPrefix(path1, path2 string) string {
	minLen := len(path1)
	if len(path2) < minLen {
		minLen = len(path2)
	}

	for i := 0; i < minLen; i++ {
		if path1[i] != path2[i] {
			return path1[:i]
		}
	}

	return path1[:minLen]
}

// normalizePath ensures consistent path formatting for the index
func (idx *PathIndex) normalizePath(path string) string {
	// First replace backslashes with forward slashes (for Windows paths)
	normalized := strings.ReplaceAll(path, "\\", "/")

	// Then clean the path to resolve . and .. elements
	normalized = filepath.ToSlash(filepath.Clean(normalized))

	// Remove trailing slash unless it's the root
	if len(normalized) > 1 && strings.HasSuffix(normalized, "/") {
		normalized = strings.TrimSuffix(normalized, "/")
	}

	return normalized
}
