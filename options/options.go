// Package options defines the run-wide options threaded through every command.
package options

import (
	"io"
	"os"
	"strings"

	"github.com/gruntwork-io/azure-bootstrap/pkg/log"
	"github.com/gruntwork-io/azure-bootstrap/pkg/log/format"
	"github.com/mattn/go-isatty"
)

const defaultLogLevel = log.InfoLevel

// Options holds the settings shared by every command in a single run.
type Options struct {
	// Logger is the logger all progress output goes through. Writes to ErrWriter.
	Logger log.Logger

	// LogFormatter is the formatter attached to Logger, kept so commands can
	// toggle colors after flag parsing.
	LogFormatter *format.Formatter

	// Writer is the writer for command results. Defaults to stdout.
	Writer io.Writer

	// ErrWriter is the writer for diagnostics. Defaults to stderr.
	ErrWriter io.Writer

	// Env is a snapshot of the process environment at startup.
	Env map[string]string

	// NonInteractive disables all prompts. Confirmations are assumed accepted.
	NonInteractive bool
}

// New creates a new Options object with reasonable defaults for real usage.
func New() *Options {
	return NewWithWriters(os.Stdout, os.Stderr)
}

// NewWithWriters creates a new Options object writing to the given streams.
func NewWithWriters(stdout, stderr io.Writer) *Options {
	logFormatter := format.NewFormatter()
	if !writerIsTerminal(stderr) {
		logFormatter.SetDisableColors(true)
	}

	return &Options{
		Logger:       log.New(log.WithOutput(stderr), log.WithLevel(defaultLogLevel), log.WithFormatter(logFormatter)),
		LogFormatter: logFormatter,
		Writer:       stdout,
		ErrWriter:    stderr,
		Env:          parseEnvironment(os.Environ()),
	}
}

// NewForTest returns Options suitable for unit tests: non-interactive, debug
// logging, and writers the test controls.
func NewForTest(stdout, stderr io.Writer) *Options {
	opts := NewWithWriters(stdout, stderr)
	opts.NonInteractive = true
	opts.Logger.SetOptions(log.WithLevel(log.DebugLevel))
	opts.LogFormatter.SetDisableColors(true)

	return opts
}

func writerIsTerminal(writer io.Writer) bool {
	if file, ok := writer.(*os.File); ok {
		return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
	}

	return false
}

func parseEnvironment(environment []string) map[string]string {
	env := make(map[string]string, len(environment))

	for _, pair := range environment {
		key, value, found := strings.Cut(pair, "=")
		if found {
			env[key] = value
		}
	}

	return env
}
