package syb

import (
	"fmt"
	"strings"
)

// entryOverhead is the table space an entry uses besides its name:
// the zero terminator and the u32 size.
const entryOverhead = 1 + 4

// Entry represents a file in the archive.
type Entry struct {
	// Name is the file name. It is a single path element of at most
	// MaxNameLen bytes and never contains a zero byte.
	Name string

	// Size is the payload length in bytes.
	Size uint32
}

// Ext returns the name suffix starting at the final dot, or "" if there is
// none. A leading dot does not start an extension, so ".hidden" has none.
func (e Entry) Ext() string {
	i := strings.LastIndexByte(e.Name, '.')
	if i <= 0 {
		return ""
	}
	return e.Name[i:]
}

// EncodedLen returns the number of table bytes the entry occupies.
func (e Entry) EncodedLen() int {
	return len(e.Name) + entryOverhead
}

// ValidateName checks that name can be stored in a table and extracted as a
// file directly under the destination directory.
func ValidateName(name string) error {
	switch {
	case len(name) > MaxNameLen:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrNameTooLong, len(name), MaxNameLen)
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "\x00/\\"):
		return fmt.Errorf("%w: %q is not a single path element", ErrInvalidName, name)
	}
	return nil
}
