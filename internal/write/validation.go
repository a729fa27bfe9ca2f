// Package write holds the checks applied to source files while packing.
package write

import (
	"fmt"
	"io/fs"
	"os"
)

// ResolveEntryInfo gets FileInfo for a directory entry, filtering out
// subdirectories, symlinks and other non-regular files. Returns
// (info, ok, error) where ok=false means the entry should be skipped.
func ResolveEntryInfo(root *os.Root, d fs.DirEntry) (fs.FileInfo, bool, error) {
	if !d.Type().IsRegular() {
		return nil, false, nil
	}

	// Lstat again so the size comes from the file itself, not a cached dirent.
	info, err := root.Lstat(d.Name())
	if err != nil {
		return nil, false, err
	}
	if !info.Mode().IsRegular() {
		return nil, false, nil
	}
	return info, true, nil
}

// CheckFileUnchanged verifies that an open file still has the size recorded
// when it was enumerated.
func CheckFileUnchanged(f *os.File, name string, size int64) error {
	after, err := f.Stat()
	if err != nil {
		return err
	}
	if after.Size() != size {
		return fmt.Errorf("%s: size changed from %d to %d", name, size, after.Size())
	}
	return nil
}
