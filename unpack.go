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
)

// Unpack extracts every entry of the archive read from r into destDir.
//
// The header and file-info table are fully parsed before destDir is touched,
// so a stream with a bad magic or malformed table leaves no trace on disk.
// destDir is created if missing. Existing files with an entry's name are
// overwritten. If extraction fails midway, files already written are left
// in place.
//
// Returns ErrBadMagic or another ErrFormat error for malformed input,
// ErrNameTooLong for an oversized name, and ErrNotDirectory if destDir
// exists but is not a directory.
func Unpack(ctx context.Context, r io.Reader, destDir string, opts ...UnpackOption) (Stats, error) {
	cfg := newUnpackConfig(opts)
	u := &unpacker{cfg: cfg, logger: logOrDiscard(cfg.logger)}

	cfg.progress.report(ProgressEvent{Stage: StageReadingTable})
	cr := &file.CountingReader{R: r}
	idx, err := ReadIndex(cr)
	if err != nil {
		return Stats{}, err
	}
	u.logger.Debug("file-info table read", "entries", idx.Len(), "table_size", idx.TableSize())

	root, err := prepareDestDir(destDir)
	if err != nil {
		return Stats{}, err
	}
	defer root.Close()

	u.logger.Info("unpacking archive", "dest", destDir, "entries", idx.Len())
	stats, err := u.extractAll(ctx, root, cr, idx)
	if err != nil {
		return stats, err
	}
	u.logger.Info("archive unpacked", "file_count", stats.FileCount, "bytes_read", cr.N)
	return stats, nil
}

// UnpackFile extracts the archive file at archivePath into destDir.
//
// archivePath must exist and carry a .syb or .SYB extension; otherwise
// ErrNotFound, ErrNotFile or ErrNotArchive is returned.
func UnpackFile(ctx context.Context, archivePath, destDir string, opts ...UnpackOption) (Stats, error) {
	f, err := openArchive(archivePath)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()
	return Unpack(ctx, f, destDir, opts...)
}

// unpacker holds state for archive extraction.
type unpacker struct {
	cfg    unpackConfig
	logger *slog.Logger
}

func (u *unpacker) extractAll(ctx context.Context, root *os.Root, r io.Reader, idx *Index) (Stats, error) {
	buf := make([]byte, u.cfg.bufferSize)
	stats := Stats{}
	for _, e := range idx.entries {
		if err := u.extract(ctx, root, r, buf, e); err != nil {
			return stats, err
		}
		stats.FileCount++
		stats.TotalBytes += uint64(e.Size)
		u.cfg.progress.report(ProgressEvent{
			Stage:      StageExtracting,
			Path:       e.Name,
			BytesDone:  stats.TotalBytes,
			BytesTotal: idx.DataSize(),
			FilesDone:  stats.FileCount,
			FilesTotal: idx.Len(),
		})
	}

	if u.cfg.strictEnd {
		if err := checkEnd(r, buf); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

// extract copies one payload from r into a file named after the entry.
func (u *unpacker) extract(ctx context.Context, root *os.Root, r io.Reader, buf []byte, e Entry) error {
	f, err := root.OpenFile(e.Name, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, e.Name, err)
	}

	_, copyErr := file.CopyExact(ctx, f, r, e.Size, buf)
	closeErr := f.Close()
	if copyErr != nil {
		var we *file.WriteError
		switch {
		case errors.Is(copyErr, io.ErrUnexpectedEOF):
			return fmt.Errorf("%w: %s", ErrTruncatedPayload, e.Name)
		case errors.As(copyErr, &we):
			return fmt.Errorf("%w: write %s: %w", ErrIO, e.Name, we.Err)
		default:
			return fmt.Errorf("extract %s: %w", e.Name, copyErr)
		}
	}
	if closeErr != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, e.Name, closeErr)
	}
	u.logger.Debug("extracted entry", "name", e.Name, "size", e.Size)
	return nil
}

// checkEnd fails with ErrTrailingData unless r is exhausted.
func checkEnd(r io.Reader, buf []byte) error {
	n, err := io.ReadFull(r, buf[:1])
	if n > 0 {
		return ErrTrailingData
	}
	if err != nil && !isShortRead(err) {
		return err
	}
	return nil
}

// prepareDestDir creates destDir if needed and opens it as a root.
func prepareDestDir(destDir string) (*os.Root, error) {
	info, err := os.Stat(destDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(destDir, 0o750); err != nil {
			return nil, fmt.Errorf("%w: create output directory: %w", ErrIO, err)
		}
	case err != nil:
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: output %s", ErrNotDirectory, destDir)
	}

	root, err := os.OpenRoot(destDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return root, nil
}
