package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/units"
)

// maxBufferSize bounds --buffer-size; the buffer is allocated up front.
const maxBufferSize = 64 * units.MiB

const banner = `Welcome to SYB-Patch program.
Its main purpose is to pack/unpack SYB-files from "Syberia 2" game.`

// app holds parsed command-line state for one invocation.
type app struct {
	kp *kingpin.Application

	bufferSize units.Base2Bytes
	verbose    bool
	timing     bool

	unpack *kingpin.CmdClause
	pack   *kingpin.CmdClause
	list   *kingpin.CmdClause

	inputPath  string
	outputPath string
	listPath   string
	listDigest bool

	out    *output
	logger *slog.Logger
}

func newApp(stdout io.Writer) *app {
	a := &app{out: newOutput(stdout)}

	kp := kingpin.New("sybpatch", banner)
	kp.UsageWriter(stdout)
	kp.ErrorWriter(stdout)

	kp.Flag("buffer-size", "Scratch buffer size used to copy file contents.").
		Envar("SYB_BUFFER_SIZE").Default("10KiB").BytesVar(&a.bufferSize)
	kp.Flag("verbose", "Log debug details to stderr.").
		Short('v').Envar("SYB_VERBOSE").BoolVar(&a.verbose)
	kp.Flag("timing", "Print the overall time spent.").BoolVar(&a.timing)

	a.unpack = kp.Command("unpack", "Unpack a SYB-file into a directory.")
	a.unpack.Arg("inputPath", "Source SYB-file to unpack.").Required().StringVar(&a.inputPath)
	a.unpack.Arg("outputPath", "Target directory, created if missing.").Required().StringVar(&a.outputPath)

	a.pack = kp.Command("pack", "Pack a directory into a SYB-file.")
	a.pack.Arg("inputPath", "Source directory to pack.").Required().StringVar(&a.inputPath)
	a.pack.Arg("outputPath", "Result SYB-file, overwritten if it exists.").Required().StringVar(&a.outputPath)

	a.list = kp.Command("list", "List the entries of a SYB-file, or the order a directory would be packed in.")
	a.list.Arg("path", "SYB-file or directory.").Required().StringVar(&a.listPath)
	a.list.Flag("digest", "Print the SHA-256 digest of every payload.").BoolVar(&a.listDigest)

	a.kp = kp
	return a
}

// run parses args, dispatches to the selected mode and returns the process
// exit code. Usage errors print help and exit 0.
func run(args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout)

	helped := false
	a.kp.Terminate(func(int) { helped = true })

	cmd, err := a.kp.Parse(args)
	if err != nil || helped {
		if !helped {
			fmt.Fprintln(stdout, banner)
			fmt.Fprintln(stdout)
			a.kp.Usage(args)
		}
		return 0
	}

	if a.bufferSize <= 0 || a.bufferSize > maxBufferSize {
		a.out.errorf("Buffer size must be between 1B and %s!", maxBufferSize)
		return 1
	}

	level := slog.LevelError
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	start := time.Now()
	ctx := context.Background()

	var code int
	switch cmd {
	case a.unpack.FullCommand():
		code = a.runUnpack(ctx)
	case a.pack.FullCommand():
		code = a.runPack(ctx)
	case a.list.FullCommand():
		code = a.runList(ctx)
	}

	if a.timing {
		a.out.printf("Overall time spent (s): %.3f\n", time.Since(start).Seconds())
	}
	return code
}
