package syb

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
)

// Index is the decoded header and file-info table of an archive.
type Index struct {
	tableSize uint32
	entries   []Entry
	offsets   []uint64
	dataSize  uint64
}

// ReadIndex reads the header and file-info table from r, leaving r
// positioned at the first payload byte.
func ReadIndex(r io.Reader) (*Index, error) {
	tableSize, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	entries, err := ReadTable(r, tableSize)
	if err != nil {
		return nil, err
	}
	return newIndex(tableSize, entries), nil
}

// OpenIndex reads the index of the archive file at path.
func OpenIndex(path string) (*Index, error) {
	f, err := openArchive(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIndex(f)
}

func newIndex(tableSize uint32, entries []Entry) *Index {
	idx := &Index{
		tableSize: tableSize,
		entries:   entries,
		offsets:   make([]uint64, len(entries)),
	}
	off := uint64(HeaderSize) + uint64(tableSize)
	for i, e := range entries {
		idx.offsets[i] = off
		off += uint64(e.Size)
		idx.dataSize += uint64(e.Size)
	}
	return idx
}

// Entries returns a copy of the entries in table order.
func (idx *Index) Entries() []Entry {
	return slices.Clone(idx.entries)
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	return len(idx.entries)
}

// Entry returns the i-th entry in table order.
func (idx *Index) Entry(i int) Entry {
	return idx.entries[i]
}

// Offset returns the absolute archive offset of the i-th entry's payload.
func (idx *Index) Offset(i int) uint64 {
	return idx.offsets[i]
}

// TableSize returns the file-info table length recorded in the header.
func (idx *Index) TableSize() uint32 {
	return idx.tableSize
}

// DataOffset returns the absolute offset of the payload section.
func (idx *Index) DataOffset() uint64 {
	return uint64(HeaderSize) + uint64(idx.tableSize)
}

// DataSize returns the sum of all payload sizes.
func (idx *Index) DataSize() uint64 {
	return idx.dataSize
}

// ContainerSize returns the total archive length the index describes.
func (idx *Index) ContainerSize() uint64 {
	return idx.DataOffset() + idx.dataSize
}

// openArchive validates that path is an existing .syb file and opens it.
func openArchive(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: archive %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}
	if ext := filepath.Ext(path); ext != ".syb" && ext != ".SYB" {
		return nil, fmt.Errorf("%w: %s", ErrNotArchive, path)
	}
	f, err := os.Open(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return f, nil
}
