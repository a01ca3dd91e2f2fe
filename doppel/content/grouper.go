package content

import (
	"log/slog"

	"github.com/murreyjs/doppel/doppel/interfaces"
	"github.com/murreyjs/doppel/doppel/types"
)

// Grouper partitions same-named records by content fingerprint
type Grouper struct {
	hasher interfaces.FileHasher
}

// NewGrouper creates a grouper backed by the given hasher
func NewGrouper(hasher interfaces.FileHasher) *Grouper {
	return &Grouper{hasher: hasher}
}

// GroupByContent partitions records by fingerprint, computing any absent
// fingerprints on demand. Unhashable records (failed fingerprints) are left
// out of every bucket; a failed attempt is never retried within a run.
func (g *Grouper) GroupByContent(records []*types.FileRecord) *types.ContentGroups {
	groups := types.NewContentGroups()

	for _, record := range records {
		if record.Fingerprint().Absent() {
			record.SetFingerprint(g.hasher.Hash(record.Path))
		}

		fp := record.Fingerprint()
		if fp.Failed() {
			slog.Debug("Excluding unhashable file from content grouping", "path", record.Path)
			continue
		}
		groups.Add(fp.Hex(), record)
	}

	return groups
}

var _ interfaces.ContentGrouper = (*Grouper)(nil)
