package types

import (
	"path/filepath"
	"strings"
	"time"
)

// fingerprintState distinguishes "not yet computed" from "computed and failed"
type fingerprintState uint8

const (
	fingerprintAbsent fingerprintState = iota
	fingerprintFailed
	fingerprintPresent
)

// Fingerprint is the tri-state content digest of a file. The zero value is
// the absent state.
type Fingerprint struct {
	hex   string
	state fingerprintState
}

// NewFingerprint wraps a computed hex digest
func NewFingerprint(hex string) Fingerprint {
	return Fingerprint{hex: hex, state: fingerprintPresent}
}

// FailedFingerprint marks a hashing attempt that hit an I/O error
func FailedFingerprint() Fingerprint {
	return Fingerprint{state: fingerprintFailed}
}

// Absent reports whether no hashing attempt has been made yet
func (f Fingerprint) Absent() bool { return f.state == fingerprintAbsent }

// Failed reports whether hashing was attempted and failed
func (f Fingerprint) Failed() bool { return f.state == fingerprintFailed }

// Present reports whether a digest is available
func (f Fingerprint) Present() bool { return f.state == fingerprintPresent }

// Hex returns the digest string, empty unless present
func (f Fingerprint) Hex() string {
	if f.state != fingerprintPresent {
		return ""
	}
	return f.hex
}

// Short returns the first n hex characters for display
func (f Fingerprint) Short(n int) string {
	hex := f.Hex()
	if n <= 0 || n >= len(hex) {
		return hex
	}
	return hex[:n]
}

// FileRecord is a snapshot of one file taken during the scan. Size and
// ModTime come from a single metadata read. The fingerprint may be populated
// at most once after construction; records are never otherwise mutated.
type FileRecord struct {
	Path    string
	Size    int64
	ModTime time.Time

	fingerprint Fingerprint
}

// NewFileRecord creates a record from one metadata snapshot
func NewFileRecord(path string, size int64, modTime time.Time) *FileRecord {
	return &FileRecord{
		Path:    path,
		Size:    size,
		ModTime: modTime,
	}
}

// Name returns the base filename
func (r *FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// Key returns the lower-cased base filename used for duplicate grouping.
// Simple lower-casing is intentional; it matches the historical behavior
// rather than full Unicode case-folding.
func (r *FileRecord) Key() string {
	return strings.ToLower(r.Name())
}

// Fingerprint returns the record's cached fingerprint
func (r *FileRecord) Fingerprint() Fingerprint {
	return r.fingerprint
}

// SetFingerprint caches the fingerprint on the record. The first call wins;
// later calls are no-ops and return false.
func (r *FileRecord) SetFingerprint(fp Fingerprint) bool {
	if !r.fingerprint.Absent() {
		return false
	}
	r.fingerprint = fp
	return true
}

// DuplicateIndex maps lower-cased base filenames to their duplicate groups.
// Name iteration order is first-encounter order from the walk, every group
// has at least two members, and members are sorted newest-first.
type DuplicateIndex struct {
	names  []string
	groups map[string][]*FileRecord
}

// NewDuplicateIndex creates an empty index
func NewDuplicateIndex() *DuplicateIndex {
	return &DuplicateIndex{groups: make(map[string][]*FileRecord)}
}

// Add appends a finished group under its name key. Adding the same name
// twice replaces the previous group without disturbing name order.
func (d *DuplicateIndex) Add(name string, records []*FileRecord) {
	if _, exists := d.groups[name]; !exists {
		d.names = append(d.names, name)
	}
	d.groups[name] = records
}

// Names returns the group keys in first-encounter order
func (d *DuplicateIndex) Names() []string {
	return d.names
}

// Group returns the records for a name key, nil if absent
func (d *DuplicateIndex) Group(name string) []*FileRecord {
	return d.groups[name]
}

// Len returns the number of duplicate groups
func (d *DuplicateIndex) Len() int {
	return len(d.names)
}

// TotalFiles returns the number of records across all groups
func (d *DuplicateIndex) TotalFiles() int {
	total := 0
	for _, records := range d.groups {
		total += len(records)
	}
	return total
}

// ContentGroups partitions one name-group's records by content fingerprint.
// Fingerprint iteration order is order of first appearance in the input;
// unhashable records appear in no group.
type ContentGroups struct {
	order []string
	byFP  map[string][]*FileRecord
}

// NewContentGroups creates an empty partition
func NewContentGroups() *ContentGroups {
	return &ContentGroups{byFP: make(map[string][]*FileRecord)}
}

// Add places a record in its fingerprint bucket
func (g *ContentGroups) Add(fingerprint string, record *FileRecord) {
	if _, exists := g.byFP[fingerprint]; !exists {
		g.order = append(g.order, fingerprint)
	}
	g.byFP[fingerprint] = append(g.byFP[fingerprint], record)
}

// Fingerprints returns the bucket keys in first-appearance order
func (g *ContentGroups) Fingerprints() []string {
	return g.order
}

// Group returns the records sharing a fingerprint
func (g *ContentGroups) Group(fingerprint string) []*FileRecord {
	return g.byFP[fingerprint]
}

// Len returns the number of distinct fingerprints
func (g *ContentGroups) Len() int {
	return len(g.order)
}

// Homogeneous reports whether every hashable record shares one fingerprint
func (g *ContentGroups) Homogeneous() bool {
	return len(g.order) == 1
}

// RemovalStats accumulates the outcome of one removal session. It is owned
// by a single engine and only ever increases.
type RemovalStats struct {
	FilesRemoved int
	BytesFreed   int64
}

// RecordRemoval counts one successful deletion
func (s *RemovalStats) RecordRemoval(size int64) {
	s.FilesRemoved++
	s.BytesFreed += size
}
