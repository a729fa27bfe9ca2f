package syb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// Magic is the byte sequence every archive starts with.
const Magic = "VXBG"

const (
	// HeaderSize is the size of the magic plus the table size field.
	HeaderSize = len(Magic) + 4

	// MaxNameLen is the longest file name, in bytes, an entry may carry.
	MaxNameLen = 127

	// DefaultBufferSize is the scratch buffer size used to copy payloads.
	DefaultBufferSize = 10 * 1024
)

// WriteHeader writes the magic and the table size.
func WriteHeader(w io.Writer, tableSize uint32) error {
	var hdr [HeaderSize]byte
	copy(hdr[:], Magic)
	binary.LittleEndian.PutUint32(hdr[len(Magic):], tableSize)
	_, err := w.Write(hdr[:])
	return err
}

// ReadHeader reads and validates the magic, then returns the table size.
//
// Returns ErrBadMagic if the stream does not start with Magic.
func ReadHeader(r io.Reader) (uint32, error) {
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:len(Magic)]); err != nil {
		if isShortRead(err) {
			return 0, fmt.Errorf("%w: stream too short", ErrBadMagic)
		}
		return 0, err
	}
	if string(hdr[:len(Magic)]) != Magic {
		return 0, fmt.Errorf("%w: %q", ErrBadMagic, hdr[:len(Magic)])
	}
	if _, err := io.ReadFull(r, hdr[len(Magic):]); err != nil {
		if isShortRead(err) {
			return 0, fmt.Errorf("%w: missing table size", ErrFormat)
		}
		return 0, err
	}
	return binary.LittleEndian.Uint32(hdr[len(Magic):]), nil
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
