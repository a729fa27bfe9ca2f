package syb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/meigma/syb/internal/file"
	"github.com/meigma/syb/internal/platform"
	"github.com/meigma/syb/internal/sizing"
	"github.com/meigma/syb/internal/write"
)

// Stats reports the outcome of a pack or unpack operation.
type Stats struct {
	// FileCount is the number of entries written.
	FileCount int

	// TotalBytes is the sum of all payload sizes.
	TotalBytes uint64
}

// Pack builds an archive from the regular files directly inside srcDir and
// writes it to w.
//
// Only the top level of srcDir is archived. Subdirectories, symbolic links
// and other non-regular files are skipped. Entries are ordered with
// [SortEntries] before anything is written.
//
// Returns ErrNotFound if srcDir does not exist and ErrNotDirectory if it is
// not a directory.
func Pack(ctx context.Context, srcDir string, w io.Writer, opts ...PackOption) (Stats, error) {
	cfg := newPackConfig(opts)
	p := &packer{cfg: cfg, logger: logOrDiscard(cfg.logger)}

	root, err := openSourceDir(srcDir)
	if err != nil {
		return Stats{}, err
	}
	defer root.Close()

	p.logger.Info("packing archive", "dir", srcDir)
	return p.pack(ctx, root, w)
}

// CollectEntries lists and orders the entries Pack would write for srcDir,
// without reading any file contents.
func CollectEntries(srcDir string) ([]Entry, error) {
	root, err := openSourceDir(srcDir)
	if err != nil {
		return nil, err
	}
	defer root.Close()

	p := &packer{logger: logOrDiscard(nil)}
	entries, err := p.collect(context.Background(), root)
	if err != nil {
		return nil, err
	}
	SortEntries(entries)
	return entries, nil
}

// packer holds state for archive creation.
type packer struct {
	cfg    packConfig
	logger *slog.Logger

	// exclude lists files that must never be packed, such as the archive
	// being written when it lives inside the source directory.
	exclude []fs.FileInfo
}

func (p *packer) pack(ctx context.Context, root *os.Root, w io.Writer) (Stats, error) {
	entries, err := p.collect(ctx, root)
	if err != nil {
		return Stats{}, err
	}
	SortEntries(entries)

	tableSize, err := TableSize(entries)
	if err != nil {
		return Stats{}, err
	}
	var total uint64
	for _, e := range entries {
		total += uint64(e.Size)
	}

	p.cfg.progress.report(ProgressEvent{Stage: StageWritingTable, BytesTotal: total, FilesTotal: len(entries)})
	cw := &file.CountingWriter{W: w}
	if err := WriteHeader(cw, tableSize); err != nil {
		return Stats{}, fmt.Errorf("%w: write header: %w", ErrIO, err)
	}
	if err := WriteTable(cw, entries); err != nil {
		return Stats{}, fmt.Errorf("write file-info table: %w", err)
	}
	p.logger.Debug("file-info table written", "entries", len(entries), "table_size", tableSize)

	buf := make([]byte, p.cfg.bufferSize)
	stats := Stats{}
	for _, e := range entries {
		if err := p.writePayload(ctx, root, cw, buf, e); err != nil {
			return stats, err
		}
		stats.FileCount++
		stats.TotalBytes += uint64(e.Size)
		p.cfg.progress.report(ProgressEvent{
			Stage:      StagePacking,
			Path:       e.Name,
			BytesDone:  stats.TotalBytes,
			BytesTotal: total,
			FilesDone:  stats.FileCount,
			FilesTotal: len(entries),
		})
	}

	p.logger.Info("archive packed", "file_count", stats.FileCount, "archive_size", cw.N)
	return stats, nil
}

// collect builds an entry for every regular file at the top of root, in
// directory listing order.
func (p *packer) collect(ctx context.Context, root *os.Root) ([]Entry, error) {
	p.cfg.progress.report(ProgressEvent{Stage: StageEnumerating})

	dirents, err := fs.ReadDir(root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("%w: read source directory: %w", ErrIO, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		info, ok, err := write.ResolveEntryInfo(root, d)
		if err != nil {
			return nil, fmt.Errorf("%w: stat %s: %w", ErrIO, d.Name(), err)
		}
		if !ok {
			p.logger.Debug("skipped non-regular entry", "name", d.Name(), "type", d.Type().String())
			continue
		}
		if p.excluded(info) {
			p.logger.Debug("skipped output archive", "name", d.Name())
			continue
		}
		if err := ValidateName(d.Name()); err != nil {
			return nil, err
		}
		size, err := sizing.ToUint32(info.Size(), ErrSizeOverflow)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is %d bytes", err, d.Name(), info.Size())
		}
		entries = append(entries, Entry{Name: d.Name(), Size: size})
	}
	return entries, nil
}

func (p *packer) excluded(info fs.FileInfo) bool {
	for _, ex := range p.exclude {
		if os.SameFile(info, ex) {
			return true
		}
	}
	return false
}

// writePayload streams one file's content to w, verifying that exactly
// e.Size bytes were available.
func (p *packer) writePayload(ctx context.Context, root *os.Root, w io.Writer, buf []byte, e Entry) error {
	f, _, err := platform.OpenRegular(root, e.Name)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", ErrIO, e.Name, err)
	}
	defer f.Close()

	if _, err := file.CopyExact(ctx, w, f, e.Size, buf); err != nil {
		var we *file.WriteError
		switch {
		case errors.Is(err, io.ErrUnexpectedEOF):
			return fmt.Errorf("%w: %s shrank below %d bytes", ErrFileChanged, e.Name, e.Size)
		case errors.As(err, &we):
			return fmt.Errorf("%w: write %s: %w", ErrIO, e.Name, we.Err)
		default:
			return fmt.Errorf("pack %s: %w", e.Name, err)
		}
	}
	if err := write.CheckFileUnchanged(f, e.Name, int64(e.Size)); err != nil {
		return fmt.Errorf("%w: %w", ErrFileChanged, err)
	}
	return nil
}

// openSourceDir validates srcDir and opens it as a root.
func openSourceDir(srcDir string) (*os.Root, error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: source directory %s", ErrNotFound, srcDir)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, srcDir)
	}
	root, err := os.OpenRoot(srcDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return root, nil
}
