package file

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkRecorder records the size of every write it receives.
type chunkRecorder struct {
	bytes.Buffer
	writes []int
}

func (c *chunkRecorder) Write(p []byte) (int, error) {
	c.writes = append(c.writes, len(p))
	return c.Buffer.Write(p)
}

func pattern(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 253)
	}
	return data
}

func TestCopyExact_Chunked(t *testing.T) {
	t.Parallel()

	src := pattern(25 * 1024)
	// Trailing bytes belong to the next payload and must stay unread.
	r := bytes.NewReader(append(append([]byte(nil), src...), "next"...))
	var dst chunkRecorder

	n, err := CopyExact(context.Background(), &dst, r, uint32(len(src)), make([]byte, 10*1024))
	require.NoError(t, err)
	assert.Equal(t, uint64(len(src)), n)
	assert.Equal(t, src, dst.Bytes())
	assert.Equal(t, []int{10 * 1024, 10 * 1024, 5 * 1024}, dst.writes)
	assert.Equal(t, 4, r.Len())
}

func TestCopyExact_Zero(t *testing.T) {
	t.Parallel()

	var dst bytes.Buffer
	n, err := CopyExact(context.Background(), &dst, bytes.NewReader([]byte("abc")), 0, make([]byte, 8))
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, dst.Len())
}

func TestCopyExact_ShortSource(t *testing.T) {
	t.Parallel()

	var dst bytes.Buffer
	n, err := CopyExact(context.Background(), &dst, bytes.NewReader([]byte("abc")), 10, make([]byte, 8))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, uint64(3), n)
}

func TestCopyWithContext_WriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk full")
	_, err := CopyWithContext(context.Background(), failingWriter{boom}, bytes.NewReader([]byte("abc")), make([]byte, 8))

	var we *WriteError
	require.ErrorAs(t, err, &we)
	require.ErrorIs(t, err, boom)
}

func TestCopyWithContext_ReadErrorIsNotWriteError(t *testing.T) {
	t.Parallel()

	boom := errors.New("bad sector")
	_, err := CopyWithContext(context.Background(), io.Discard, failingReader{boom}, make([]byte, 8))
	require.ErrorIs(t, err, boom)

	var we *WriteError
	assert.NotErrorAs(t, err, &we)
}

func TestCopyWithContext_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var dst bytes.Buffer
	_, err := CopyWithContext(ctx, &dst, bytes.NewReader([]byte("abc")), make([]byte, 8))
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, dst.Len())
}

func TestCountingWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cw := &CountingWriter{W: &buf}
	_, err := cw.Write([]byte("hello"))
	require.NoError(t, err)
	_, err = cw.Write([]byte(" world"))
	require.NoError(t, err)
	assert.Equal(t, uint64(11), cw.N)
}

func TestCountingReader(t *testing.T) {
	t.Parallel()

	cr := &CountingReader{R: bytes.NewReader(pattern(1000))}
	_, err := io.Copy(io.Discard, cr)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), cr.N)
}

func TestAddCount_Overflow(t *testing.T) {
	t.Parallel()

	total := ^uint64(0) - 2
	require.NoError(t, addCount(&total, 2))
	assert.Equal(t, ^uint64(0), total)
	require.ErrorIs(t, addCount(&total, 1), ErrOverflow)
	require.NoError(t, addCount(&total, 0))
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }
