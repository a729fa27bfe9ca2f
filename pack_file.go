package syb

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
)

// PackFile packs srcDir into an archive file at destPath.
//
// The archive is streamed to a temp file next to destPath, which then
// replaces destPath atomically, so a failed pack never leaves a partial
// archive behind. An existing file at destPath is overwritten; the
// PackWithOnOverwrite callback is invoked first. When destPath lies inside
// srcDir, neither the old archive nor the one being written is packed.
//
// Returns ErrNotFound or ErrNotDirectory for a bad srcDir, and
// ErrIsDirectory if destPath is a directory.
func PackFile(ctx context.Context, srcDir, destPath string, opts ...PackOption) (Stats, error) {
	cfg := newPackConfig(opts)
	p := &packer{cfg: cfg, logger: logOrDiscard(cfg.logger)}

	root, err := openSourceDir(srcDir)
	if err != nil {
		return Stats{}, err
	}
	defer root.Close()

	switch info, statErr := os.Stat(destPath); {
	case statErr == nil && info.IsDir():
		return Stats{}, fmt.Errorf("%w: output %s", ErrIsDirectory, destPath)
	case statErr == nil:
		p.logger.Warn("overwriting existing archive", "path", destPath)
		if cfg.onOverwrite != nil {
			cfg.onOverwrite(destPath)
		}
		p.exclude = append(p.exclude, info)
	case !errors.Is(statErr, fs.ErrNotExist):
		return Stats{}, fmt.Errorf("%w: %w", ErrIO, statErr)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".syb-*")
	if err != nil {
		return Stats{}, fmt.Errorf("%w: create output file: %w", ErrIO, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return Stats{}, fmt.Errorf("%w: chmod output file: %w", ErrIO, err)
	}
	tmpInfo, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return Stats{}, fmt.Errorf("%w: stat output file: %w", ErrIO, err)
	}
	p.exclude = append(p.exclude, tmpInfo)

	p.logger.Info("packing archive", "dir", srcDir, "dest", destPath)
	stats, err := p.pack(ctx, root, tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return stats, err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return stats, fmt.Errorf("%w: close output file: %w", ErrIO, err)
	}
	if err := atomic.ReplaceFile(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return stats, fmt.Errorf("%w: replace %s: %w", ErrIO, destPath, err)
	}
	return stats, nil
}
