package syb

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/syb/internal/testutil"
)

func TestUnpack_RoundTrip(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	files := map[string][]byte{
		"intro.mp3":     testutil.Pattern(3000),
		"step.wav":      testutil.Pattern(12 * 1024),
		"menu_2.jpg":    testutil.Pattern(1),
		"menu.jpg":      {},
		"readme.txt":    []byte("hello"),
		"noext":         []byte("no extension"),
		"under_sc.ore":  testutil.Pattern(777),
		"UPPER.MP3":     []byte("upper"),
		"with space.db": []byte("space"),
	}
	testutil.WriteFiles(t, src, files)

	var buf bytes.Buffer
	packStats, err := Pack(context.Background(), src, &buf)
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "out")
	stats, err := Unpack(context.Background(), &buf, dest)
	require.NoError(t, err)

	assert.Equal(t, packStats, stats)
	assert.Equal(t, len(files), stats.FileCount)
	assert.Equal(t, files, testutil.ReadFiles(t, dest))
}

func TestUnpack_RepackReproducesArchive(t *testing.T) {
	t.Parallel()

	original := testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "a.mp3", Data: []byte("a")},
		{Name: "b.mp3", Data: []byte("bb")},
		{Name: "a.wav", Data: []byte("ccc")},
		{Name: "pic.jpg", Data: []byte("dddd")},
		{Name: "pic_small.jpg", Data: []byte("e")},
		{Name: "data.bin", Data: []byte("ff")},
	})

	dir := t.TempDir()
	_, err := Unpack(context.Background(), bytes.NewReader(original), dir)
	require.NoError(t, err)

	var repacked bytes.Buffer
	_, err = Pack(context.Background(), dir, &repacked)
	require.NoError(t, err)
	assert.Equal(t, original, repacked.Bytes())
}

func TestUnpack_BadMagicHasNoSideEffects(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "out")
	_, err := Unpack(context.Background(), bytes.NewReader([]byte("PK\x03\x04junkjunkjunk")), dest)
	require.ErrorIs(t, err, ErrBadMagic)
	require.ErrorIs(t, err, ErrFormat)

	_, statErr := os.Stat(dest)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestUnpack_MalformedTableHasNoSideEffects(t *testing.T) {
	t.Parallel()

	table := []byte("x.bin\x00\x05\x00")
	data := testutil.BuildRaw(t, uint32(len(table)), table, nil)

	dest := filepath.Join(t.TempDir(), "out")
	_, err := Unpack(context.Background(), bytes.NewReader(data), dest)
	require.ErrorIs(t, err, ErrTruncatedTable)

	_, statErr := os.Stat(dest)
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestUnpack_ChunkedCopy(t *testing.T) {
	t.Parallel()

	big := testutil.Pattern(25 * 1024)
	data := testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "big.bin", Data: big},
		{Name: "tail.bin", Data: []byte("tail")},
	})

	dest := t.TempDir()
	stats, err := Unpack(context.Background(), bytes.NewReader(data), dest, UnpackWithBufferSize(10*1024))
	require.NoError(t, err)
	assert.Equal(t, uint64(len(big)+4), stats.TotalBytes)

	got := testutil.ReadFiles(t, dest)
	assert.Equal(t, big, got["big.bin"])
	assert.Equal(t, []byte("tail"), got["tail.bin"])
}

func TestUnpack_TruncatedPayload(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "first.bin", Data: []byte("complete")},
		{Name: "second.bin", Data: []byte("cut short")},
	})
	data = data[:len(data)-3]

	dest := t.TempDir()
	_, err := Unpack(context.Background(), bytes.NewReader(data), dest)
	require.ErrorIs(t, err, ErrTruncatedPayload)

	// Files written before the failure stay on disk.
	got := testutil.ReadFiles(t, dest)
	assert.Equal(t, []byte("complete"), got["first.bin"])
}

func TestUnpack_TrailingData(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, []testutil.TestEntry{{Name: "a.bin", Data: []byte("a")}})
	data = append(data, "extra"...)

	_, err := Unpack(context.Background(), bytes.NewReader(data), t.TempDir())
	require.NoError(t, err)

	_, err = Unpack(context.Background(), bytes.NewReader(data), t.TempDir(), UnpackWithStrictEnd(true))
	require.ErrorIs(t, err, ErrTrailingData)

	clean := testutil.BuildArchive(t, []testutil.TestEntry{{Name: "a.bin", Data: []byte("a")}})
	_, err = Unpack(context.Background(), bytes.NewReader(clean), t.TempDir(), UnpackWithStrictEnd(true))
	require.NoError(t, err)
}

func TestUnpack_DestinationIsFile(t *testing.T) {
	t.Parallel()

	dest := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(dest, []byte("x"), 0o644))

	data := testutil.BuildArchive(t, []testutil.TestEntry{{Name: "a.bin", Data: []byte("a")}})
	_, err := Unpack(context.Background(), bytes.NewReader(data), dest)
	require.ErrorIs(t, err, ErrNotDirectory)
	require.ErrorIs(t, err, ErrIO)
}

func TestUnpack_OverwritesExistingFiles(t *testing.T) {
	t.Parallel()

	dest := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dest, "a.bin"), []byte("a much longer old content"), 0o644))

	data := testutil.BuildArchive(t, []testutil.TestEntry{{Name: "a.bin", Data: []byte("new")}})
	_, err := Unpack(context.Background(), bytes.NewReader(data), dest)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dest, "a.bin"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

func TestUnpack_RejectsTraversalNames(t *testing.T) {
	t.Parallel()

	parent := t.TempDir()
	dest := filepath.Join(parent, "out")
	data := testutil.BuildArchive(t, []testutil.TestEntry{{Name: "../pwned.txt", Data: []byte("pwned")}})

	_, err := Unpack(context.Background(), bytes.NewReader(data), dest)
	require.ErrorIs(t, err, ErrInvalidName)

	_, statErr := os.Stat(filepath.Join(parent, "pwned.txt"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestUnpack_NameTooLong(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, []testutil.TestEntry{{Name: strings.Repeat("n", 128), Data: []byte("x")}})
	_, err := Unpack(context.Background(), bytes.NewReader(data), t.TempDir())
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestUnpack_Progress(t *testing.T) {
	t.Parallel()

	data := testutil.BuildArchive(t, []testutil.TestEntry{
		{Name: "a.bin", Data: []byte("aa")},
		{Name: "b.bin", Data: []byte("b")},
	})

	var events []ProgressEvent
	_, err := Unpack(context.Background(), bytes.NewReader(data), t.TempDir(), UnpackWithProgress(func(ev ProgressEvent) {
		events = append(events, ev)
	}))
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, StageReadingTable, events[0].Stage)
	assert.Equal(t, ProgressEvent{Stage: StageExtracting, Path: "b.bin", BytesDone: 3, BytesTotal: 3, FilesDone: 2, FilesTotal: 2}, events[2])
}

func TestUnpackFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := filepath.Join(dir, "Sound.SYB")
	require.NoError(t, os.WriteFile(archive, testutil.BuildArchive(t, []testutil.TestEntry{{Name: "s.wav", Data: []byte("s")}}), 0o644))

	stats, err := UnpackFile(context.Background(), archive, filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FileCount)
}

func TestUnpackFile_InputErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	wrongExt := filepath.Join(dir, "archive.zip")
	require.NoError(t, os.WriteFile(wrongExt, testutil.BuildArchive(t, nil), 0o644))
	dirWithExt := filepath.Join(dir, "folder.syb")
	require.NoError(t, os.Mkdir(dirWithExt, 0o755))

	_, err := UnpackFile(context.Background(), filepath.Join(dir, "missing.syb"), t.TempDir())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = UnpackFile(context.Background(), wrongExt, t.TempDir())
	require.ErrorIs(t, err, ErrNotArchive)
	require.ErrorIs(t, err, ErrFormat)

	_, err = UnpackFile(context.Background(), dirWithExt, t.TempDir())
	require.ErrorIs(t, err, ErrNotFile)
}
