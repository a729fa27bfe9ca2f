// Package syb reads and writes SYB archives, the flat file containers used by
// the game Syberia 2.
//
// An archive has a fixed layout, with all integers little-endian:
//   - Header: the magic bytes "VXBG" followed by the u32 byte length of the table
//   - File-info table: per entry, a zero-terminated name and a u32 payload size
//   - Payload section: every entry's bytes concatenated in table order
//
// There is no entry count, padding, compression or checksum. The table ends
// after exactly the number of bytes recorded in the header.
//
// [Pack] builds an archive from a flat directory. Entries are written in a
// deterministic order (see [SortEntries]) so that repacking extracted game
// assets reproduces the original file order. [Unpack] extracts every entry of
// an archive into a directory.
package syb
