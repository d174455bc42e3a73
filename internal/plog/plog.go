// Package plog builds a leveled *slog.Logger for the parser's own
// diagnostics, grounded on MacroPower-x's log package (log/log.go's
// CreateHandler / Format and Level enums): a small set of named levels
// and output formats, constructed once and handed to slog.New.
//
// The parser never fails on malformed input (spec.md §7); what this
// logger surfaces are the silently-tolerated oddities spec.md §9 and
// SPEC_FULL.md §6.5 call out by name (mismatched fence width, duplicate
// footnote reference, metadata key collision) so an embedder can see
// what was patched over without the parser itself raising an error.
package plog

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Format selects the slog.Handler's output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Level names the four severities New accepts; the parser itself logs
// only at debug level.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New builds an *slog.Logger writing to w at the given level and format,
// mirroring MacroPower-x's CreateHandler switch over Format.
func New(w io.Writer, level Level, format Format) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level.slogLevel()}
	var h slog.Handler
	switch format {
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	return slog.New(h)
}

// Default is the package-level logger used when a Parser isn't given its
// own via WithLogger. It writes text-formatted warnings and above to
// stderr, matching a library's usual "quiet unless something needs
// attention" default.
var Default = New(os.Stderr, LevelWarn, FormatText)

// Noop discards everything; useful for tests that don't want parser
// diagnostics mixed into test output.
var Noop = New(io.Discard, LevelError, FormatText)

// Debugf logs a printf-style formatted message at debug level on l. The
// parser's own call sites do not use it: they log structured key/value
// pairs through slog directly.
func Debugf(l interface{ Debug(string, ...any) }, format string, args ...any) {
	l.Debug(fmt.Sprintf(format, args...))
}
