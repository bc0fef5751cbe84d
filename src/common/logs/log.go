// Package logs provides the leveled, structured logger used by acs.
// Logs go to stderr by default so command output on stdout stays parseable,
// and can be routed to systemd journald on hosts that run acs as a service.
package logs

import (
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// LogOutput defines the output destination for logs
type LogOutput string

const (
	// OutputStdout sends logs to standard output
	OutputStdout LogOutput = "stdout"
	// OutputStderr sends logs to standard error
	OutputStderr LogOutput = "stderr"
	// OutputJournald sends logs to systemd journald
	OutputJournald LogOutput = "journald"
	// OutputAuto selects journald if available, otherwise stderr
	OutputAuto LogOutput = "auto"
)

// Logger wraps the charm log.Logger with its resolved destination
type Logger struct {
	*log.Logger
	output LogOutput
}

// Config holds the configuration for the logger
type Config struct {
	// Output specifies where logs should be sent (stdout, stderr, journald, auto)
	Output LogOutput
	// Level sets the minimum log level (debug, info, warn, error)
	Level string
	// Prefix sets a prefix for all log messages
	Prefix string
	// Identifier tags journald entries; defaults to "acs"
	Identifier string
	// Writer overrides Output when set
	Writer io.Writer
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Output:     OutputAuto,
		Level:      "info",
		Identifier: "acs",
	}
}

func journaldAvailable() bool {
	if _, err := exec.LookPath("systemd-cat"); err != nil {
		return false
	}
	if _, err := os.Stat("/run/systemd/journal/socket"); err != nil {
		return false
	}
	return true
}

// ParseLevel converts a string level to log.Level, defaulting to info
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// New creates a new Logger with the given configuration
func New(cfg Config) *Logger {
	writer, output := resolveWriter(cfg)

	logger := log.NewWithOptions(writer, log.Options{
		Level:           ParseLevel(cfg.Level),
		Prefix:          cfg.Prefix,
		ReportTimestamp: true,
		ReportCaller:    false,
	})

	return &Logger{
		Logger: logger,
		output: output,
	}
}

func resolveWriter(cfg Config) (io.Writer, LogOutput) {
	if cfg.Writer != nil {
		return cfg.Writer, cfg.Output
	}

	identifier := cfg.Identifier
	if identifier == "" {
		identifier = "acs"
	}

	switch cfg.Output {
	case OutputStdout:
		return os.Stdout, OutputStdout
	case OutputJournald, OutputAuto:
		if journaldAvailable() {
			return newJournaldWriter(identifier), OutputJournald
		}
		return os.Stderr, OutputStderr
	default:
		return os.Stderr, OutputStderr
	}
}

// NewDiscard returns a logger that drops everything, for tests and quiet modes
func NewDiscard() *Logger {
	return New(Config{Writer: io.Discard, Level: "error"})
}

// Output returns the resolved output destination
func (l *Logger) Output() LogOutput {
	return l.output
}

// journaldWriter pipes each record through systemd-cat
type journaldWriter struct {
	identifier string
}

func newJournaldWriter(identifier string) *journaldWriter {
	return &journaldWriter{identifier: identifier}
}

// Write implements io.Writer. Failures to reach journald fall back to stderr.
func (w *journaldWriter) Write(p []byte) (int, error) {
	cmd := exec.Command("systemd-cat", "-t", w.identifier)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return os.Stderr.Write(p)
	}
	if err := cmd.Start(); err != nil {
		return os.Stderr.Write(p)
	}

	n, _ := stdin.Write(p)
	stdin.Close()
	_ = cmd.Wait()

	return n, nil
}
