package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/matzehuels/apollon/pkg/errors"
)

// newLogger creates the CLI logger. Timestamps look like "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logFormats maps --log-format values to formatters. json and logfmt are
// meant for `apollon serve` behind a log collector.
var logFormats = map[string]log.Formatter{
	"text":   log.TextFormatter,
	"json":   log.JSONFormatter,
	"logfmt": log.LogfmtFormatter,
}

func setLogFormat(l *log.Logger, name string) error {
	f, ok := logFormats[name]
	if !ok {
		return apperrors.New(apperrors.ErrCodeInvalidInput, "invalid log format %q (must be one of: text, json, logfmt)", name)
	}
	l.SetFormatter(f)
	return nil
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs e.g. "Generated 488 circles (12ms)". keyvals are passed to the
// logger as structured fields.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg+" ("+time.Since(p.start).Round(time.Millisecond).String()+")", keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default() outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
