package logging

import (
	"io"
	"os"

	hclog "github.com/hashicorp/go-hclog"
)

type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

// New builds the root logger. An unknown level falls back to warn so a typo
// never silences storage warnings.
func New(opts Options) hclog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Warn
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:       "studyplan",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
}

// Discard returns a logger that drops everything; used by tests and by
// adapters constructed without a logger.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}

// OrDiscard returns l, or a null logger when l is nil.
func OrDiscard(l hclog.Logger) hclog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
