// Package platform opens source files without following symbolic links.
package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ErrSymlink is returned when attempting to open a symbolic link.
var ErrSymlink = errors.New("symbolic links not supported")

// OpenRegular opens name under root for reading and returns the file
// together with its info. Symbolic links and anything other than a regular
// file are rejected, as is a file replaced between the check and the open.
func OpenRegular(root *os.Root, name string) (*os.File, fs.FileInfo, error) {
	linfo, err := root.Lstat(name)
	if err != nil {
		return nil, nil, err
	}
	if linfo.Mode()&fs.ModeSymlink != 0 {
		return nil, nil, ErrSymlink
	}
	if !linfo.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("not a regular file: %s", name)
	}

	f, err := root.Open(name)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if !os.SameFile(linfo, info) {
		f.Close()
		return nil, nil, fmt.Errorf("file replaced while opening: %s", name)
	}
	return f, info, nil
}
