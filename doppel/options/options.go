package options

// HashAlgorithm selects the content digest
type HashAlgorithm string

const (
	HashMD5    HashAlgorithm = "md5"
	HashSHA256 HashAlgorithm = "sha256"
)

// RemovalMode defines how duplicate groups are resolved
type RemovalMode string

const (
	RemovalInteractive RemovalMode = "interactive"
	RemovalAutomatic   RemovalMode = "automatic"
)

// ScanOptions configures a duplicate scan
type ScanOptions struct {
	CompareContent   bool     // Hash files eagerly during the walk
	IgnoreFile       string   // Ignore-file name looked up at the scan root
	ExcludePatterns  []string // Additional gitignore-style exclude patterns
	ProgressInterval int      // Files between progress callbacks (0 = default)
}

// RemovalOptions configures a removal session
type RemovalOptions struct {
	Mode           RemovalMode // Automatic or interactive resolution
	CompareContent bool        // Show content analysis for each group
}

// DefaultScanOptions returns sensible defaults for scan operations
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		CompareContent:   false,
		IgnoreFile:       ".doppelignore",
		ProgressInterval: 1000,
	}
}

// DefaultRemovalOptions returns sensible defaults for removal operations
func DefaultRemovalOptions() RemovalOptions {
	return RemovalOptions{
		Mode:           RemovalInteractive,
		CompareContent: false,
	}
}
