package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreChecker interface for file ignore patterns
type IgnoreChecker interface {
	MatchesPath(path string) bool
}

// nullIgnoreChecker matches nothing
type nullIgnoreChecker struct{}

func (n *nullIgnoreChecker) MatchesPath(path string) bool {
	return false
}

// loadIgnoreChecker compiles the ignore file at the scan root, folding in
// any configured exclude patterns. A missing ignore file is not an error.
func loadIgnoreChecker(root, ignoreFile string, extraPatterns []string) (IgnoreChecker, error) {
	if ignoreFile != "" {
		ignorePath := filepath.Join(root, ignoreFile)

		if _, err := os.Stat(ignorePath); err == nil {
			checker, err := ignore.CompileIgnoreFileAndLines(ignorePath, extraPatterns...)
			if err != nil {
				return nil, fmt.Errorf("error reading %s file: %w", ignoreFile, err)
			}
			return checker, nil
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error checking for %s file: %w", ignoreFile, err)
		}
	}

	if len(extraPatterns) > 0 {
		return ignore.CompileIgnoreLines(extraPatterns...), nil
	}

	return &nullIgnoreChecker{}, nil
}
