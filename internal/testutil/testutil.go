// Package testutil builds archives and source directories for tests.
package testutil

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// TestEntry describes one archive entry by name and payload.
type TestEntry struct {
	Name string
	Data []byte
}

// BuildArchive encodes entries in the given order without going through the
// package under test. The table size is computed from the entries.
func BuildArchive(tb testing.TB, entries []TestEntry) []byte {
	tb.Helper()

	var table bytes.Buffer
	for _, e := range entries {
		table.WriteString(e.Name)
		table.WriteByte(0)
		table.Write(binary.LittleEndian.AppendUint32(nil, uint32(len(e.Data)))) //nolint:gosec // test payloads are small
	}
	return BuildRaw(tb, uint32(table.Len()), table.Bytes(), entries) //nolint:gosec // test tables are small
}

// BuildRaw assembles an archive from an explicit table size and raw table
// bytes, for tests that need an inconsistent header.
func BuildRaw(tb testing.TB, tableSize uint32, table []byte, entries []TestEntry) []byte {
	tb.Helper()

	var buf bytes.Buffer
	buf.WriteString("VXBG")
	buf.Write(binary.LittleEndian.AppendUint32(nil, tableSize))
	buf.Write(table)
	for _, e := range entries {
		buf.Write(e.Data)
	}
	return buf.Bytes()
}

// WriteFiles creates each file under dir.
func WriteFiles(tb testing.TB, dir string, files map[string][]byte) {
	tb.Helper()

	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			tb.Fatalf("write %s: %v", path, err)
		}
	}
}

// ReadFiles returns the content of every regular file directly inside dir.
func ReadFiles(tb testing.TB, dir string) map[string][]byte {
	tb.Helper()

	dirents, err := os.ReadDir(dir)
	if err != nil {
		tb.Fatalf("read dir %s: %v", dir, err)
	}
	files := make(map[string][]byte, len(dirents))
	for _, d := range dirents {
		if !d.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, d.Name()))
		if err != nil {
			tb.Fatalf("read %s: %v", d.Name(), err)
		}
		files[d.Name()] = data
	}
	return files
}

// Pattern returns n deterministic bytes that do not repeat with a short period.
func Pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i*7 + i/251)
	}
	return data
}
