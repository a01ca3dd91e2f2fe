package hashing

import (
	"crypto/md5"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"os"

	"github.com/murreyjs/doppel/doppel/interfaces"
	"github.com/murreyjs/doppel/doppel/options"
	"github.com/murreyjs/doppel/doppel/types"
)

const defaultChunkSize = 4096

// Hasher streams file content through a digest in fixed-size chunks so
// memory stays bounded regardless of file size.
type Hasher struct {
	algorithm options.HashAlgorithm
	chunkSize int
}

// New creates a hasher for the given algorithm. Unknown algorithms fall
// back to MD5, non-positive chunk sizes to the default.
func New(algorithm options.HashAlgorithm, chunkSize int) *Hasher {
	switch algorithm {
	case options.HashMD5, options.HashSHA256:
	default:
		algorithm = options.HashMD5
	}
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	return &Hasher{
		algorithm: algorithm,
		chunkSize: chunkSize,
	}
}

// Algorithm returns the digest this hasher computes
func (h *Hasher) Algorithm() options.HashAlgorithm {
	return h.algorithm
}

// Hash computes the file's content fingerprint. Any I/O failure yields the
// failed fingerprint; callers treat those records as unhashable rather than
// aborting.
func (h *Hasher) Hash(path string) types.Fingerprint {
	file, err := os.Open(path)
	if err != nil {
		slog.Warn("Could not open file for hashing", "path", path, "error", err)
		return types.FailedFingerprint()
	}
	defer file.Close()

	digest := h.newDigest()
	buf := make([]byte, h.chunkSize)
	if _, err := io.CopyBuffer(digest, file, buf); err != nil {
		slog.Warn("Could not read file for hashing", "path", path, "error", err)
		return types.FailedFingerprint()
	}

	return types.NewFingerprint(fmt.Sprintf("%x", digest.Sum(nil)))
}

func (h *Hasher) newDigest() hash.Hash {
	switch h.algorithm {
	case options.HashSHA256:
		return sha256.New()
	default:
		return md5.New()
	}
}

var _ interfaces.FileHasher = (*Hasher)(nil)
