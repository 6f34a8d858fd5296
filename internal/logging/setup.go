package logging

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/isseis/go-elfdeps/internal/terminal"
)

// File permissions for per-run log files and their directory.
var (
	logDirPerm  os.FileMode = 0o750
	logFilePerm os.FileMode = 0o600
)

// ErrEmptyLogDirectory is returned when a log directory is requested but empty.
var ErrEmptyLogDirectory = errors.New("log directory cannot be empty")

// GenerateRunID generates a new UUID v4 for run identification.
func GenerateRunID() string {
	return uuid.New().String()
}

// Options configures Setup.
type Options struct {
	// Level is the textual log level ("debug", "info", "warn", "error").
	// Invalid values fall back to info.
	Level string

	// LogDir, when non-empty, receives one auto-named JSON log file per run.
	LogDir string

	// RunID tags every record of this run.
	RunID string
}

// Setup installs the default slog logger. Human-readable records go to
// stderr; stdout is reserved for dependency token output. Non-interactive
// runs only see warnings and errors on stderr so that batch callers such as
// rpmbuild stay quiet. When a log directory is given, a machine-readable
// JSON log is written per run as <hostname>_<timestamp>_<runID>.json.
func Setup(opts Options) error {
	var level slog.Level
	invalidLevel := false
	if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
		level = slog.LevelInfo
		invalidLevel = true
	}

	stderrLevel := level
	detector := terminal.NewDetector(terminal.DetectorOptions{})
	if !detector.IsInteractive() && stderrLevel < slog.LevelWarn {
		stderrLevel = slog.LevelWarn
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: stderrLevel}),
	}

	if opts.LogDir != "" {
		fileHandler, err := newFileHandler(opts.LogDir, opts.RunID, level)
		if err != nil {
			return err
		}
		handlers = append(handlers, fileHandler)
	}

	slog.SetDefault(slog.New(NewMultiHandler(handlers...)))

	if invalidLevel {
		slog.Warn("invalid log level, defaulting to info", "provided", opts.Level)
	}
	return nil
}

// newFileHandler opens the per-run JSON log file and returns a handler
// enriched with run identification attributes.
func newFileHandler(dir, runID string, level slog.Level) (slog.Handler, error) {
	if dir == "" {
		return nil, ErrEmptyLogDirectory
	}
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("cannot create log directory %s: %w", dir, err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	timestamp := time.Now().Format("20060102T150405Z")
	logPath := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.json", hostname, timestamp, runID))

	logF, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, logFilePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	jsonHandler := slog.NewJSONHandler(logF, &slog.HandlerOptions{Level: level})
	return jsonHandler.WithAttrs([]slog.Attr{
		slog.String("hostname", hostname),
		slog.Int("pid", os.Getpid()),
		slog.String("run_id", runID),
	}), nil
}
