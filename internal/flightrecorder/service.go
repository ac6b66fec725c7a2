// Package flightrecorder keeps a rolling execution trace of a command and writes it out on demand, typically
// when the command fails.
package flightrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/trace"
	"time"

	"github.com/myrjola/fitplan/internal/errors"
)

const (
	// defaultMinAge is the minimum age of trace events to keep.
	defaultMinAge = time.Minute

	// defaultMaxBytes is the maximum size of the trace buffer.
	defaultMaxBytes = 16 * 1024 * 1024 // 16MB
)

// Recorder wraps a runtime flight recorder that dumps into a directory.
type Recorder struct {
	logger         *slog.Logger
	flightRecorder *trace.FlightRecorder
	directory      string
	now            func() time.Time
}

// Config configures the recorder. Zero MinAge and MaxBytes select the defaults.
type Config struct {
	Logger    *slog.Logger
	MinAge    time.Duration
	MaxBytes  uint64
	Directory string
}

// New creates a recorder writing into cfg.Directory, creating the directory when missing.
func New(cfg Config) (*Recorder, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Directory == "" {
		return nil, errors.New("trace directory is required")
	}

	if stat, err := os.Stat(cfg.Directory); err != nil {
		if err = os.MkdirAll(cfg.Directory, 0o755); err != nil { //nolint:mnd // rwxr-xr-x
			return nil, errors.Wrap(err, "create trace directory", slog.String("path", cfg.Directory))
		}
	} else if !stat.IsDir() {
		return nil, errors.Wrap(errors.New("not a directory"), "check trace directory",
			slog.String("path", cfg.Directory))
	}

	minAge := cfg.MinAge
	if minAge == 0 {
		minAge = defaultMinAge
	}
	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}

	return &Recorder{
		logger: cfg.Logger,
		flightRecorder: trace.NewFlightRecorder(trace.FlightRecorderConfig{
			MinAge:   minAge,
			MaxBytes: maxBytes,
		}),
		directory: cfg.Directory,
		now:       time.Now,
	}, nil
}

// Start begins recording. Only one flight recorder can be active per process.
func (r *Recorder) Start(ctx context.Context) error {
	if err := r.flightRecorder.Start(); err != nil {
		return fmt.Errorf("start flight recorder: %w", err)
	}
	r.logger.LogAttrs(ctx, slog.LevelDebug, "flight recorder started", slog.String("directory", r.directory))
	return nil
}

// Stop ends recording. Capture must be called before Stop.
func (r *Recorder) Stop(ctx context.Context) {
	r.flightRecorder.Stop()
	r.logger.LogAttrs(ctx, slog.LevelDebug, "flight recorder stopped")
}

// Capture writes the recorded window to <name>-<timestamp>.trace and returns the file path.
func (r *Recorder) Capture(ctx context.Context, name string) (_ string, err error) {
	timestamp := r.now().UTC().Format("20060102-150405")
	path := filepath.Join(r.directory, fmt.Sprintf("%s-%s.trace", name, timestamp))

	file, err := os.Create(path)
	if err != nil {
		return "", errors.Wrap(err, "create trace file", slog.String("path", path))
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, errors.Wrap(closeErr, "close trace file", slog.String("path", path)))
		}
	}()

	n, err := r.flightRecorder.WriteTo(file)
	if err != nil {
		return "", errors.Wrap(err, "write trace", slog.String("path", path))
	}

	r.logger.LogAttrs(ctx, slog.LevelWarn, "captured trace", slog.String("path", path), slog.Int64("bytes", n))
	return path, nil
}
