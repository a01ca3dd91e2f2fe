package interfaces

import (
	"context"

	"github.com/murreyjs/doppel/doppel/types"
)

// FileHasher defines content fingerprinting for a single file
type FileHasher interface {
	Hash(path string) types.Fingerprint
}

// DuplicateScanner defines the scan stage: walk a tree and return the
// filtered, sorted duplicate index
type DuplicateScanner interface {
	Scan(ctx context.Context, rootPath string) (*types.DuplicateIndex, error)

	// Walk counters from the most recent scan
	Scanned() int
	Skipped() int
}

// ContentGrouper partitions a name-group's records by content fingerprint
type ContentGrouper interface {
	GroupByContent(records []*types.FileRecord) *types.ContentGroups
}

// DuplicateRemover drives a whole removal session over a duplicate index
type DuplicateRemover interface {
	Run(ctx context.Context) (types.RemovalStats, error)
	Stats() types.RemovalStats
}
