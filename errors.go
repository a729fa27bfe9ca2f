package syb

import (
	"errors"
	"fmt"
)

// Sentinel errors for archive operations.
//
// Errors fall into four kinds: ErrNotFound, ErrFormat, ErrIO and
// ErrNameTooLong. More specific errors wrap the kind they belong to, so callers
// can match either the specific error or its kind with errors.Is.
var (
	// ErrNotFound is returned when a required input path does not exist.
	ErrNotFound = errors.New("syb: not found")

	// ErrFormat is returned when archive bytes do not follow the container layout.
	ErrFormat = errors.New("syb: invalid archive format")

	// ErrIO is returned when an output cannot be created or a path has the wrong type.
	ErrIO = errors.New("syb: i/o error")

	// ErrNameTooLong is returned when a file name exceeds MaxNameLen bytes.
	ErrNameTooLong = errors.New("syb: file name too long")

	// ErrSizeOverflow is returned when a file or table does not fit a 32-bit size field.
	ErrSizeOverflow = errors.New("syb: size overflow")

	// ErrFileChanged is returned when a source file changes size while it is packed.
	ErrFileChanged = errors.New("syb: file changed during packing")
)

// Format errors.
var (
	// ErrBadMagic is returned when a stream does not start with Magic.
	ErrBadMagic = fmt.Errorf("%w: wrong magic", ErrFormat)

	// ErrTruncatedTable is returned when the file-info table is cut short
	// or does not end on an entry boundary.
	ErrTruncatedTable = fmt.Errorf("%w: truncated or misaligned file-info table", ErrFormat)

	// ErrTruncatedPayload is returned when the body ends before an entry's payload does.
	ErrTruncatedPayload = fmt.Errorf("%w: truncated payload", ErrFormat)

	// ErrInvalidName is returned for empty names, names with a zero byte, and
	// names that are not a single path element.
	ErrInvalidName = fmt.Errorf("%w: invalid file name", ErrFormat)

	// ErrNotArchive is returned when an input path lacks the .syb extension.
	ErrNotArchive = fmt.Errorf("%w: not a SYB file", ErrFormat)

	// ErrTrailingData is returned in strict mode when bytes follow the last payload.
	ErrTrailingData = fmt.Errorf("%w: trailing data after last payload", ErrFormat)
)

// I/O errors.
var (
	// ErrNotDirectory is returned when a path that must be a directory is not one.
	ErrNotDirectory = fmt.Errorf("%w: not a directory", ErrIO)

	// ErrIsDirectory is returned when an output file path names a directory.
	ErrIsDirectory = fmt.Errorf("%w: is a directory", ErrIO)

	// ErrNotFile is returned when an input archive path names a directory.
	ErrNotFile = fmt.Errorf("%w: not a file", ErrIO)
)
