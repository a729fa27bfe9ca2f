package file

import (
	"context"
	"io"
)

// CopyWithContext copies from src to dst until EOF or error, checking for
// context cancellation between reads. Each read fills at most len(buf)
// bytes. It returns the number of bytes written.
func CopyWithContext(ctx context.Context, dst io.Writer, src io.Reader, buf []byte) (uint64, error) {
	var written uint64
	for {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := dst.Write(buf[:nr])
			if err := addCount(&written, nw); err != nil {
				return written, err
			}
			if ew != nil {
				return written, &WriteError{Err: ew}
			}
			if nw != nr {
				return written, &WriteError{Err: io.ErrShortWrite}
			}
		}
		if er != nil {
			if er == io.EOF {
				return written, nil
			}
			return written, er
		}
	}
}

// CopyExact copies exactly n bytes from src to dst in chunks of at most
// len(buf) bytes. It returns io.ErrUnexpectedEOF if src ends first.
func CopyExact(ctx context.Context, dst io.Writer, src io.Reader, n uint32, buf []byte) (uint64, error) {
	written, err := CopyWithContext(ctx, dst, io.LimitReader(src, int64(n)), buf)
	if err != nil {
		return written, err
	}
	if written != uint64(n) {
		return written, io.ErrUnexpectedEOF
	}
	return written, nil
}

// WriteError marks an error returned by the destination writer, so callers
// can tell it apart from a source read failure.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "write: " + e.Err.Error() }

func (e *WriteError) Unwrap() error { return e.Err }
