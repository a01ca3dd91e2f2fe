package terminal

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/murreyjs/doppel/doppel/types"

	runewidth "github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var displayTime = time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)

// cannedGrouper hands back a fixed partition regardless of input.
type cannedGrouper struct {
	groups *types.ContentGroups
}

func (g *cannedGrouper) GroupByContent(records []*types.FileRecord) *types.ContentGroups {
	return g.groups
}

func displayRecord(path string, size int64) *types.FileRecord {
	return types.NewFileRecord(path, size, displayTime)
}

func TestShowGroup(t *testing.T) {
	t.Run("lists members with position and sizes", func(t *testing.T) {
		console, out := newPlainConsole("")
		records := []*types.FileRecord{
			displayRecord("/data/a/photo.jpg", 12),
			displayRecord("/data/b/photo.jpg", 300),
		}

		console.ShowGroup("photo.jpg", records, 1, 3)
		text := out.String()

		assert.Contains(t, text, "Processing duplicates for: photo.jpg (1/3)")
		assert.Contains(t, text, strings.Repeat("=", 60))
		assert.Contains(t, text, "Found 2 copies:")
		assert.Contains(t, text, "  1. /data/a/photo.jpg")
		assert.Contains(t, text, "  2. /data/b/photo.jpg")
		assert.Contains(t, text, "Size: 12 B")
		assert.Contains(t, text, "Size: 300 B")
		assert.NotContains(t, text, "Hash:", "no hash lines without fingerprints")
	})

	t.Run("shows fingerprint prefixes when cached", func(t *testing.T) {
		console, out := newPlainConsole("")
		record := displayRecord("/data/a/photo.jpg", 12)
		record.SetFingerprint(types.NewFingerprint("deadbeefcafebabe"))

		console.ShowGroup("photo.jpg", []*types.FileRecord{record, displayRecord("/data/b/photo.jpg", 9)}, 1, 1)

		assert.Contains(t, out.String(), "Hash: deadbeef...")
	})
}

func TestShowContentGroups(t *testing.T) {
	t.Run("single version reads as identical", func(t *testing.T) {
		console, out := newPlainConsole("")
		r1 := displayRecord("/a/x.txt", 4)
		r2 := displayRecord("/b/x.txt", 4)

		groups := types.NewContentGroups()
		groups.Add("aaaaaaaa1111", r1)
		groups.Add("aaaaaaaa1111", r2)

		console.ShowContentGroups(groups, []*types.FileRecord{r1, r2})
		assert.Contains(t, out.String(), "✓ All files have identical content")
	})

	t.Run("nil partition reads as identical", func(t *testing.T) {
		console, out := newPlainConsole("")
		console.ShowContentGroups(nil, nil)
		assert.Contains(t, out.String(), "✓ All files have identical content")
	})

	t.Run("multiple versions are listed with member positions", func(t *testing.T) {
		console, out := newPlainConsole("")
		r1 := displayRecord("/a/x.txt", 4)
		r2 := displayRecord("/b/x.txt", 4)
		r3 := displayRecord("/c/x.txt", 4)

		groups := types.NewContentGroups()
		groups.Add("aaaaaaaa1111", r1)
		groups.Add("bbbbbbbb2222", r2)
		groups.Add("aaaaaaaa1111", r3)

		console.ShowContentGroups(groups, []*types.FileRecord{r1, r2, r3})
		text := out.String()

		assert.Contains(t, text, "Files have different content! (2 unique versions)")
		assert.Contains(t, text, "Group 1 (hash aaaaaaaa...): files 1, 3")
		assert.Contains(t, text, "Group 2 (hash bbbbbbbb...): files 2")
	})
}

func TestShowRemovalTargets(t *testing.T) {
	t.Run("previews paths, sizes, and the total", func(t *testing.T) {
		console, out := newPlainConsole("")
		targets := []*types.FileRecord{
			displayRecord("/x/a.txt", 5),
			displayRecord("/y/a.txt", 4),
		}

		console.ShowRemovalTargets(targets)
		text := out.String()

		assert.Contains(t, text, "Will delete 2 file(s):")
		assert.Contains(t, text, "  /x/a.txt (5 B)")
		assert.Contains(t, text, "  /y/a.txt (4 B)")
		assert.Contains(t, text, "Total space to free: 9 B")
	})

	t.Run("omits the total for zero bytes", func(t *testing.T) {
		console, out := newPlainConsole("")
		console.ShowRemovalTargets([]*types.FileRecord{displayRecord("/x/empty.txt", 0)})

		assert.Contains(t, out.String(), "Will delete 1 file(s):")
		assert.NotContains(t, out.String(), "Total space to free")
	})
}

func TestShowSummary(t *testing.T) {
	t.Run("nothing removed", func(t *testing.T) {
		console, out := newPlainConsole("")
		console.ShowSummary(types.RemovalStats{})
		text := out.String()

		assert.Contains(t, text, "REMOVAL COMPLETE")
		assert.Contains(t, text, "Files removed: 0")
		assert.Contains(t, text, "No files were removed.")
		assert.NotContains(t, text, "Space freed:")
	})

	t.Run("reports counts and freed space", func(t *testing.T) {
		console, out := newPlainConsole("")
		console.ShowSummary(types.RemovalStats{FilesRemoved: 3, BytesFreed: 123})
		text := out.String()

		assert.Contains(t, text, "Files removed: 3")
		assert.Contains(t, text, "Space freed: 123 B")
		assert.Contains(t, text, "Successfully cleaned up 3 duplicate files!")
	})
}

func TestShowScanReport(t *testing.T) {
	t.Run("empty index", func(t *testing.T) {
		console, out := newPlainConsole("")
		console.ShowScanReport(types.NewDuplicateIndex(), nil)
		assert.Equal(t, "No duplicate filenames found!\n", out.String())
	})

	t.Run("name mode listing", func(t *testing.T) {
		console, out := newPlainConsole("")
		index := types.NewDuplicateIndex()
		index.Add("notes.txt", []*types.FileRecord{
			displayRecord("/a/notes.txt", 12),
			displayRecord("/b/notes.txt", 8),
		})

		console.ShowScanReport(index, nil)
		text := out.String()

		assert.Contains(t, text, "Found 1 sets of duplicate filenames (2 total files):")
		assert.Contains(t, text, "Filename: notes.txt")
		assert.Contains(t, text, "Found 2 copies:")
		assert.Contains(t, text, "Size: 12 B, Modified: 2024-03-05 10:30:00")
		assert.NotContains(t, text, "→", "no content verdict without a grouper")
	})

	t.Run("content verdicts", func(t *testing.T) {
		console, out := newPlainConsole("")
		index := types.NewDuplicateIndex()
		r1 := displayRecord("/a/notes.txt", 12)
		r2 := displayRecord("/b/notes.txt", 8)
		index.Add("notes.txt", []*types.FileRecord{r1, r2})

		identical := types.NewContentGroups()
		identical.Add("aaaaaaaa", r1)
		identical.Add("aaaaaaaa", r2)

		console.ShowScanReport(index, &cannedGrouper{groups: identical})
		assert.Contains(t, out.String(), "→ All files have identical content")

		console2, out2 := newPlainConsole("")
		differing := types.NewContentGroups()
		differing.Add("aaaaaaaa", r1)
		differing.Add("bbbbbbbb", r2)

		console2.ShowScanReport(index, &cannedGrouper{groups: differing})
		assert.Contains(t, out2.String(), "→ Content differs between files (2 unique versions)")
	})
}

func TestFitPath(t *testing.T) {
	t.Run("long paths are truncated to the console width", func(t *testing.T) {
		console := NewConsole(strings.NewReader(""), &bytes.Buffer{}, Options{Color: false, Width: 20})

		long := "/very/long/path/that/keeps/going/file.txt"
		fitted := console.fitPath(long)
		require.NotEqual(t, long, fitted)
		assert.True(t, strings.HasSuffix(fitted, "…"))
		assert.LessOrEqual(t, runewidth.StringWidth(fitted), 14)

		short := "/a/b.txt"
		assert.Equal(t, short, console.fitPath(short))
	})
}
