package scanner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/murreyjs/doppel/doppel/interfaces"
	"github.com/murreyjs/doppel/doppel/options"
	"github.com/murreyjs/doppel/doppel/trees"
	"github.com/murreyjs/doppel/doppel/types"
)

// Structural scan failures, distinguishable with errors.Is
var (
	ErrRootNotFound  = errors.New("scan root does not exist")
	ErrNotADirectory = errors.New("scan root is not a directory")
)

const defaultProgressInterval = 1000

// ProgressFunc receives the running file count during a walk
type ProgressFunc func(scanned int)

// Scanner walks a directory tree and builds the duplicate index: lower-cased
// base filename -> records, groups of at least two, newest first. The walk is
// strictly sequential; order is the walk order of the underlying filesystem.
type Scanner struct {
	opts     options.ScanOptions
	hasher   interfaces.FileHasher
	progress ProgressFunc

	scanned   int
	skipped   int
	pathIndex *trees.PathIndex
}

// New creates a scanner. The compare-content decision is fixed here for the
// scanner's lifetime.
func New(hasher interfaces.FileHasher, opts options.ScanOptions) *Scanner {
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = defaultProgressInterval
	}
	return &Scanner{
		opts:      opts,
		hasher:    hasher,
		pathIndex: trees.NewPathIndex(),
	}
}

// SetProgress installs the walk progress observer. A nil func disables
// progress reporting.
func (s *Scanner) SetProgress(fn ProgressFunc) {
	s.progress = fn
}

// Scanned returns the number of files indexed by the most recent scan
func (s *Scanner) Scanned() int {
	return s.scanned
}

// Skipped returns the number of unreadable files the most recent scan
// passed over
func (s *Scanner) Skipped() int {
	return s.skipped
}

// PathIndex returns the per-directory duplicate counts from the most
// recent scan
func (s *Scanner) PathIndex() *trees.PathIndex {
	return s.pathIndex
}

// Scan walks rootPath and returns the duplicate index. The root must exist
// and be a directory; an unreadable subtree aborts the scan, an unreadable
// single file is skipped with a warning.
func (s *Scanner) Scan(ctx context.Context, rootPath string) (*types.DuplicateIndex, error) {
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %s: %w", rootPath, err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	ignored, err := loadIgnoreChecker(root, s.opts.IgnoreFile, s.opts.ExcludePatterns)
	if err != nil {
		return nil, err
	}

	s.scanned = 0
	s.skipped = 0
	s.pathIndex = trees.NewPathIndex()

	var nameOrder []string
	byName := make(map[string][]*types.FileRecord)

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Failed directory enumeration is fatal; there is no way to
			// know what the subtree held.
			return fmt.Errorf("cannot enumerate %s: %w", path, walkErr)
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if rel, relErr := filepath.Rel(root, path); relErr == nil && rel != "." {
			if d.IsDir() {
				// Directory patterns end in "/", so probe both forms
				if ignored.MatchesPath(rel) || ignored.MatchesPath(rel+"/") {
					slog.Debug("Skipping ignored directory", "path", path)
					return fs.SkipDir
				}
			} else if ignored.MatchesPath(rel) {
				return nil
			}
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		entryInfo, infoErr := d.Info()
		if infoErr != nil {
			slog.Warn("Could not read file metadata", "path", path, "error", infoErr)
			s.skipped++
			return nil
		}

		record := types.NewFileRecord(path, entryInfo.Size(), entryInfo.ModTime())
		if s.opts.CompareContent {
			record.SetFingerprint(s.hasher.Hash(path))
		}

		key := record.Key()
		if _, seen := byName[key]; !seen {
			nameOrder = append(nameOrder, key)
		}
		byName[key] = append(byName[key], record)

		s.scanned++
		if s.progress != nil && s.scanned%s.opts.ProgressInterval == 0 {
			s.progress(s.scanned)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	index := types.NewDuplicateIndex()
	for _, name := range nameOrder {
		records := byName[name]
		if len(records) < 2 {
			continue
		}

		// Newest first; the stable sort keeps encounter order on equal
		// timestamps.
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ModTime.After(records[j].ModTime)
		})

		index.Add(name, records)
		for _, record := range records {
			s.pathIndex.Insert(record.Path)
		}
	}

	slog.Info("Scan complete",
		"root", root,
		"files_scanned", s.scanned,
		"files_skipped", s.skipped,
		"duplicate_groups", index.Len())

	return index, nil
}

var _ interfaces.DuplicateScanner = (*Scanner)(nil)
