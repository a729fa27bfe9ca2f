package syb

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/meigma/syb/internal/sizing"
)

// tableChunkSize bounds the read buffer used while parsing a table, so a
// hostile tableSize cannot force a large allocation up front.
const tableChunkSize = 4096

// TableSize returns the byte length of the file-info table for entries.
func TableSize(entries []Entry) (uint32, error) {
	var total uint32
	for _, e := range entries {
		n, err := sizing.ToUint32(int64(e.EncodedLen()), ErrSizeOverflow)
		if err != nil {
			return 0, err
		}
		var ok bool
		if total, ok = sizing.AddUint32(total, n); !ok {
			return 0, fmt.Errorf("%w: file-info table exceeds 4 GiB", ErrSizeOverflow)
		}
	}
	return total, nil
}

// WriteTable writes the file-info table for entries in the given order.
func WriteTable(w io.Writer, entries []Entry) error {
	rec := make([]byte, 0, MaxNameLen+entryOverhead)
	for _, e := range entries {
		if err := ValidateName(e.Name); err != nil {
			return err
		}
		rec = append(rec[:0], e.Name...)
		rec = append(rec, 0)
		rec = binary.LittleEndian.AppendUint32(rec, e.Size)
		if _, err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// ReadTable parses exactly tableSize bytes of file-info table from r.
//
// Returns ErrTruncatedTable if r ends early or the table does not end on an
// entry boundary, and ErrNameTooLong if a name exceeds MaxNameLen.
func ReadTable(r io.Reader, tableSize uint32) ([]Entry, error) {
	var p tableParser
	buf := make([]byte, min(int64(tableSize), tableChunkSize))
	remaining := int64(tableSize)
	for remaining > 0 {
		chunk := buf[:min(remaining, int64(len(buf)))]
		if _, err := io.ReadFull(r, chunk); err != nil {
			if isShortRead(err) {
				return nil, fmt.Errorf("%w: stream ends %d bytes before table end", ErrTruncatedTable, remaining)
			}
			return nil, err
		}
		for _, b := range chunk {
			if err := p.feed(b); err != nil {
				return nil, err
			}
		}
		remaining -= int64(len(chunk))
	}
	return p.finish()
}

// parseState is the field the table parser is currently accumulating.
type parseState uint8

const (
	stateName parseState = iota
	stateSize
)

// tableParser reconstructs entries from table bytes fed one at a time.
type tableParser struct {
	state   parseState
	name    []byte
	size    [4]byte
	sizeLen int
	entries []Entry
}

func (p *tableParser) feed(b byte) error {
	switch p.state {
	case stateName:
		if b == 0 {
			p.state = stateSize
			return nil
		}
		if len(p.name) == MaxNameLen {
			return fmt.Errorf("%w: entry %d name exceeds %d bytes", ErrNameTooLong, len(p.entries), MaxNameLen)
		}
		p.name = append(p.name, b)
	case stateSize:
		p.size[p.sizeLen] = b
		p.sizeLen++
		if p.sizeLen < len(p.size) {
			return nil
		}
		e := Entry{Name: string(p.name), Size: binary.LittleEndian.Uint32(p.size[:])}
		if err := ValidateName(e.Name); err != nil {
			return fmt.Errorf("entry %d: %w", len(p.entries), err)
		}
		p.entries = append(p.entries, e)
		p.name = p.name[:0]
		p.sizeLen = 0
		p.state = stateName
	}
	return nil
}

// finish returns the parsed entries, failing unless the parser stopped at
// the start of a new entry.
func (p *tableParser) finish() ([]Entry, error) {
	if p.state != stateName || len(p.name) > 0 {
		return nil, fmt.Errorf("%w: table ends inside entry %d", ErrTruncatedTable, len(p.entries))
	}
	return p.entries, nil
}
