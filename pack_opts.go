package syb

import "log/slog"

// packConfig holds configuration for archive creation.
type packConfig struct {
	logger      *slog.Logger
	progress    ProgressFunc
	bufferSize  int
	onOverwrite func(path string)
}

// PackOption configures Pack and PackFile.
type PackOption func(*packConfig)

func newPackConfig(opts []PackOption) packConfig {
	cfg := packConfig{bufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// PackWithLogger sets the logger for pack operations.
// A nil logger disables logging.
func PackWithLogger(logger *slog.Logger) PackOption {
	return func(cfg *packConfig) {
		cfg.logger = logger
	}
}

// PackWithProgress sets a callback that receives progress updates.
func PackWithProgress(fn ProgressFunc) PackOption {
	return func(cfg *packConfig) {
		cfg.progress = fn
	}
}

// PackWithBufferSize sets the scratch buffer size used to copy file contents.
// Values <= 0 use DefaultBufferSize.
func PackWithBufferSize(n int) PackOption {
	return func(cfg *packConfig) {
		if n <= 0 {
			n = DefaultBufferSize
		}
		cfg.bufferSize = n
	}
}

// PackWithOnOverwrite sets a callback that PackFile invokes before it
// replaces an existing destination file.
func PackWithOnOverwrite(fn func(path string)) PackOption {
	return func(cfg *packConfig) {
		cfg.onOverwrite = fn
	}
}

// logOrDiscard returns logger, falling back to a discard logger if nil.
func logOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
