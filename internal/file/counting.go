package file

import (
	"errors"
	"io"
)

// ErrOverflow is returned when a byte count no longer fits in a uint64.
var ErrOverflow = errors.New("byte count overflow")

// addCount adds n to *total, refusing to wrap around.
func addCount(total *uint64, n int) error {
	if n <= 0 {
		return nil
	}
	if *total > ^uint64(0)-uint64(n) {
		return ErrOverflow
	}
	*total += uint64(n)
	return nil
}

// CountingReader tracks how many bytes of an archive stream were consumed.
type CountingReader struct {
	R io.Reader
	N uint64
}

func (cr *CountingReader) Read(p []byte) (int, error) {
	n, err := cr.R.Read(p)
	if cerr := addCount(&cr.N, n); cerr != nil {
		return n, cerr
	}
	return n, err
}

// CountingWriter tracks how many archive bytes were emitted.
type CountingWriter struct {
	W io.Writer
	N uint64
}

func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.W.Write(p)
	if cerr := addCount(&cw.N, n); cerr != nil {
		return n, cerr
	}
	return n, err
}
