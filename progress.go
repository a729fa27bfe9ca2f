package syb

// ProgressEvent represents a progress update during packing or extraction.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the entry currently being processed, if applicable.
	Path string

	// BytesDone is the number of payload bytes completed so far.
	BytesDone uint64

	// BytesTotal is the total payload bytes of the operation.
	// Zero indicates the total is unknown.
	BytesTotal uint64

	// FilesDone is the number of entries completed.
	FilesDone int

	// FilesTotal is the total number of entries.
	// Zero indicates the total is unknown (e.g., during enumeration).
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

// Progress stages for pack and unpack operations.
const (
	// StageEnumerating indicates the source directory is being listed.
	StageEnumerating ProgressStage = iota

	// StageWritingTable indicates the header and file-info table are being written.
	StageWritingTable

	// StagePacking indicates file contents are being written to the archive.
	StagePacking

	// StageReadingTable indicates the header and file-info table are being parsed.
	StageReadingTable

	// StageExtracting indicates entries are being written to the destination.
	StageExtracting
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageEnumerating:
		return "enumerating"
	case StageWritingTable:
		return "writing table"
	case StagePacking:
		return "packing"
	case StageReadingTable:
		return "reading table"
	case StageExtracting:
		return "extracting"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates during operations.
type ProgressFunc func(ProgressEvent)

func (f ProgressFunc) report(ev ProgressEvent) {
	if f != nil {
		f(ev)
	}
}
