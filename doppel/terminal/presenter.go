package terminal

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/murreyjs/doppel/doppel/interfaces"
	"github.com/murreyjs/doppel/doppel/types"

	"github.com/dustin/go-humanize"
	runewidth "github.com/mattn/go-runewidth"
)

// ShowGroup lists one duplicate set with its position in the session.
// Records carrying a fingerprint also get a hash prefix line.
func (c *Console) ShowGroup(name string, records []*types.FileRecord, position, total int) {
	divider := c.render(dividerStyle, strings.Repeat("=", dividerWidth))
	fmt.Fprintf(c.out, "\n%s\n", divider)
	fmt.Fprintln(c.out, c.render(headerStyle, fmt.Sprintf("Processing duplicates for: %s (%d/%d)", name, position, total)))
	fmt.Fprintln(c.out, divider)

	fmt.Fprintf(c.out, "\nFound %d copies:\n", len(records))
	for i, record := range records {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, c.render(pathStyle, c.fitPath(record.Path)))
		fmt.Fprintf(c.out, "     %s\n", c.render(detailStyle, fmt.Sprintf("Size: %s", humanize.Bytes(uint64(record.Size)))))
		if fp := record.Fingerprint(); fp.Present() {
			fmt.Fprintf(c.out, "     %s\n", c.render(detailStyle, fmt.Sprintf("Hash: %s...", fp.Short(c.fpLen))))
		}
	}
}

// ShowContentGroups reports whether a set's members actually share
// content. Indices refer to positions in the displayed records listing;
// unhashable members appear in no group.
func (c *Console) ShowContentGroups(groups *types.ContentGroups, records []*types.FileRecord) {
	if groups == nil || groups.Len() <= 1 {
		fmt.Fprintf(c.out, "\n%s\n", c.render(successStyle, "✓ All files have identical content"))
		return
	}

	fmt.Fprintf(c.out, "\n%s\n", c.render(warningStyle,
		fmt.Sprintf("⚠️  Files have different content! (%d unique versions)", groups.Len())))

	for i, fingerprint := range groups.Fingerprints() {
		indices := memberIndices(groups.Group(fingerprint), records)
		fmt.Fprintf(c.out, "     Group %d (hash %s...): files %s\n",
			i+1, shortHex(fingerprint, c.fpLen), strings.Join(indices, ", "))
	}
}

// ShowRemovalTargets previews the files slated for deletion and the
// total bytes they would free.
func (c *Console) ShowRemovalTargets(records []*types.FileRecord) {
	fmt.Fprintf(c.out, "\nWill delete %d file(s):\n", len(records))

	var total int64
	for _, record := range records {
		fmt.Fprintf(c.out, "  %s (%s)\n", c.render(pathStyle, c.fitPath(record.Path)), humanize.Bytes(uint64(record.Size)))
		total += record.Size
	}

	if total > 0 {
		fmt.Fprintf(c.out, "Total space to free: %s\n", humanize.Bytes(uint64(total)))
	}
}

// ShowSummary prints the end-of-session banner with removal counts
func (c *Console) ShowSummary(stats types.RemovalStats) {
	divider := c.render(dividerStyle, strings.Repeat("=", dividerWidth))
	fmt.Fprintf(c.out, "\n%s\n", divider)
	fmt.Fprintln(c.out, c.render(headerStyle, "REMOVAL COMPLETE"))
	fmt.Fprintln(c.out, divider)

	fmt.Fprintf(c.out, "Files removed: %d\n", stats.FilesRemoved)
	if stats.BytesFreed > 0 {
		fmt.Fprintf(c.out, "Space freed: %s\n", humanize.Bytes(uint64(stats.BytesFreed)))
	}

	if stats.FilesRemoved == 0 {
		fmt.Fprintln(c.out, "No files were removed.")
	} else {
		fmt.Fprintln(c.out, c.render(successStyle,
			fmt.Sprintf("Successfully cleaned up %d duplicate files!", stats.FilesRemoved)))
	}
}

// ShowScanReport prints the post-scan duplicate listing. A non-nil
// grouper adds a content verdict per set; fingerprints already cached on
// records are shown either way.
func (c *Console) ShowScanReport(index *types.DuplicateIndex, grouper interfaces.ContentGrouper) {
	if index == nil || index.Len() == 0 {
		fmt.Fprintln(c.out, "No duplicate filenames found!")
		return
	}

	fmt.Fprintf(c.out, "\nFound %d sets of duplicate filenames (%d total files):\n",
		index.Len(), index.TotalFiles())
	fmt.Fprintln(c.out, c.render(dividerStyle, strings.Repeat("=", dividerWidth)))

	for _, name := range index.Names() {
		c.showScanSet(name, index.Group(name), grouper)
	}
}

func (c *Console) showScanSet(name string, records []*types.FileRecord, grouper interfaces.ContentGrouper) {
	fmt.Fprintf(c.out, "\nFilename: %s\n", c.render(headerStyle, name))
	fmt.Fprintf(c.out, "Found %d copies:\n", len(records))

	for i, record := range records {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, c.render(pathStyle, c.fitPath(record.Path)))
		fmt.Fprintf(c.out, "     %s\n", c.render(detailStyle,
			fmt.Sprintf("Size: %s, Modified: %s",
				humanize.Bytes(uint64(record.Size)),
				record.ModTime.Format("2006-01-02 15:04:05"))))
		if fp := record.Fingerprint(); fp.Present() {
			fmt.Fprintf(c.out, "     %s\n", c.render(detailStyle, fmt.Sprintf("Hash: %s...", fp.Short(c.fpLen))))
		}
	}

	if grouper == nil {
		return
	}

	groups := grouper.GroupByContent(records)
	if groups.Len() > 1 {
		fmt.Fprintf(c.out, "     %s\n", c.render(warningStyle,
			fmt.Sprintf("→ Content differs between files (%d unique versions)", groups.Len())))
	} else if groups.Len() == 1 {
		fmt.Fprintf(c.out, "     %s\n", c.render(successStyle, "→ All files have identical content"))
	}
}

// fitPath truncates long paths so listing rows stay on one line
func (c *Console) fitPath(path string) string {
	max := c.width - pathIndent
	if max <= 0 || runewidth.StringWidth(path) <= max {
		return path
	}
	return runewidth.Truncate(path, max, "…")
}

// memberIndices maps group members back to their 1-based positions in
// the displayed listing. Matching is by record identity, not path.
func memberIndices(group []*types.FileRecord, records []*types.FileRecord) []string {
	indices := make([]string, 0, len(group))
	for _, member := range group {
		for i, record := range records {
			if record == member {
				indices = append(indices, strconv.Itoa(i+1))
				break
			}
		}
	}
	return indices
}

func shortHex(hex string, n int) string {
	if n <= 0 || n >= len(hex) {
		return hex
	}
	return hex[:n]
}
