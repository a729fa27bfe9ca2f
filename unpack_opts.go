package syb

import "log/slog"

// unpackConfig holds configuration for archive extraction.
type unpackConfig struct {
	logger     *slog.Logger
	progress   ProgressFunc
	bufferSize int
	strictEnd  bool
}

// UnpackOption configures Unpack and UnpackFile.
type UnpackOption func(*unpackConfig)

func newUnpackConfig(opts []UnpackOption) unpackConfig {
	cfg := unpackConfig{bufferSize: DefaultBufferSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// UnpackWithLogger sets the logger for unpack operations.
// A nil logger disables logging.
func UnpackWithLogger(logger *slog.Logger) UnpackOption {
	return func(cfg *unpackConfig) {
		cfg.logger = logger
	}
}

// UnpackWithProgress sets a callback that receives progress updates.
func UnpackWithProgress(fn ProgressFunc) UnpackOption {
	return func(cfg *unpackConfig) {
		cfg.progress = fn
	}
}

// UnpackWithBufferSize sets the scratch buffer size used to copy payloads.
// Values <= 0 use DefaultBufferSize.
func UnpackWithBufferSize(n int) UnpackOption {
	return func(cfg *unpackConfig) {
		if n <= 0 {
			n = DefaultBufferSize
		}
		cfg.bufferSize = n
	}
}

// UnpackWithStrictEnd makes Unpack fail with ErrTrailingData when bytes
// remain after the last payload. By default trailing bytes are ignored.
func UnpackWithStrictEnd(strict bool) UnpackOption {
	return func(cfg *unpackConfig) {
		cfg.strictEnd = strict
	}
}
