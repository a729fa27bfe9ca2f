package syb

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/opencontainers/go-digest"

	"github.com/meigma/syb/internal/file"
)

// EntryDigest describes one payload as seen by Inspect.
type EntryDigest struct {
	Entry

	// Offset is the absolute archive offset of the payload.
	Offset uint64

	// Digest is the SHA-256 digest of the payload bytes.
	Digest digest.Digest
}

// Inspect reads the archive from r and calls fn for every entry, in table
// order, with the digest of its payload. Nothing is written to disk.
//
// Digests are computed for comparison only; archives do not store them.
func Inspect(ctx context.Context, r io.Reader, fn func(EntryDigest) error) (*Index, error) {
	idx, err := ReadIndex(r)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, DefaultBufferSize)
	for i, e := range idx.entries {
		digester := digest.Canonical.Digester()
		if _, err := file.CopyExact(ctx, digester.Hash(), r, e.Size, buf); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) {
				return idx, fmt.Errorf("%w: %s", ErrTruncatedPayload, e.Name)
			}
			return idx, fmt.Errorf("inspect %s: %w", e.Name, err)
		}
		ed := EntryDigest{Entry: e, Offset: idx.offsets[i], Digest: digester.Digest()}
		if err := fn(ed); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// InspectFile runs Inspect over the archive file at path.
func InspectFile(ctx context.Context, path string, fn func(EntryDigest) error) (*Index, error) {
	f, err := openArchive(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Inspect(ctx, f, fn)
}
