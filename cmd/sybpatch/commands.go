package main

import (
	"context"
	"errors"
	"os"

	"github.com/alecthomas/units"

	"github.com/meigma/syb"
)

// diagnostic maps an error to a one-line message. The first matching
// sentinel wins, so specific errors are listed before their kinds.
type diagnostic struct {
	err error
	msg string
}

var unpackDiagnostics = []diagnostic{
	{syb.ErrNotFound, "Specified input SYB-file wasn't found!"},
	{syb.ErrNotArchive, "Specified input path is not a SYB-file!"},
	{syb.ErrNotFile, "Specified input path is not a SYB-file!"},
	{syb.ErrBadMagic, "Specified input file has a wrong format!"},
	{syb.ErrNameTooLong, "Specified input file contains a file name longer than 127 bytes!"},
	{syb.ErrInvalidName, "Specified input file contains a file name that can't be extracted!"},
	{syb.ErrFormat, "Specified input file is damaged!"},
	{syb.ErrNotDirectory, "Output path should be directory!"},
	{syb.ErrIO, "Couldn't write the output files!"},
}

var packDiagnostics = []diagnostic{
	{syb.ErrNotFound, "Specified input directory wasn't found!"},
	{syb.ErrNotDirectory, "Specified input path is not a directory!"},
	{syb.ErrIsDirectory, "Specified output file is a directory!"},
	{syb.ErrNameTooLong, "Specified input directory contains a file name longer than 127 bytes!"},
	{syb.ErrInvalidName, "Specified input directory contains a file name that can't be stored!"},
	{syb.ErrSizeOverflow, "Specified input directory contains a file larger than 4 GiB!"},
	{syb.ErrFileChanged, "A source file changed while it was being packed!"},
	{syb.ErrIO, "Couldn't write the output file!"},
}

func (a *app) fail(err error, table []diagnostic) int {
	a.logger.Debug("operation failed", "error", err)
	for _, d := range table {
		if errors.Is(err, d.err) {
			a.out.errorf("%s", d.msg)
			return 1
		}
	}
	a.out.errorf("%v", err)
	return 1
}

func (a *app) runUnpack(ctx context.Context) int {
	stats, err := syb.UnpackFile(ctx, a.inputPath, a.outputPath,
		syb.UnpackWithLogger(a.logger),
		syb.UnpackWithBufferSize(int(a.bufferSize)),
	)
	if err != nil {
		return a.fail(err, unpackDiagnostics)
	}
	a.out.printf("%d files successfully unpacked.\n", stats.FileCount)
	return 0
}

func (a *app) runPack(ctx context.Context) int {
	stats, err := syb.PackFile(ctx, a.inputPath, a.outputPath,
		syb.PackWithLogger(a.logger),
		syb.PackWithBufferSize(int(a.bufferSize)),
		syb.PackWithOnOverwrite(func(string) {
			a.out.warnf("Specified output file exists! It will be rewritten!")
		}),
	)
	if err != nil {
		return a.fail(err, packDiagnostics)
	}
	a.out.printf("%d files successfully packed.\n", stats.FileCount)
	return 0
}

// runList prints the table of an archive, or the packing order of a directory.
func (a *app) runList(ctx context.Context) int {
	if info, err := os.Stat(a.listPath); err == nil && info.IsDir() {
		entries, err := syb.CollectEntries(a.listPath)
		if err != nil {
			return a.fail(err, packDiagnostics)
		}
		for _, e := range entries {
			a.out.printf("%-40s %10s\n", e.Name, units.Base2Bytes(e.Size))
		}
		a.out.printf("%d files.\n", len(entries))
		return 0
	}

	if a.listDigest {
		idx, err := syb.InspectFile(ctx, a.listPath, func(ed syb.EntryDigest) error {
			a.out.printf("%-40s %10s %10d %s\n", ed.Name, units.Base2Bytes(ed.Size), ed.Offset, ed.Digest)
			return nil
		})
		if err != nil {
			return a.fail(err, unpackDiagnostics)
		}
		a.out.printf("%d files, %s of data.\n", idx.Len(), units.Base2Bytes(idx.DataSize()))
		return 0
	}

	idx, err := syb.OpenIndex(a.listPath)
	if err != nil {
		return a.fail(err, unpackDiagnostics)
	}
	for i := range idx.Len() {
		e := idx.Entry(i)
		a.out.printf("%-40s %10s %10d\n", e.Name, units.Base2Bytes(e.Size), idx.Offset(i))
	}
	a.out.printf("%d files, %s of data.\n", idx.Len(), units.Base2Bytes(idx.DataSize()))
	return 0
}
