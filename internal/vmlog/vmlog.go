// Package vmlog wraps log/slog with a handler tailored to a
// single-threaded interpreter: diagnostics always go to an optional log
// file, and additionally to stderr when running in trace mode or when the
// record is at warn level or above.
package vmlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Handler is a slog.Handler that tees records to an optional file and,
// selectively, to stderr.
type Handler struct {
	out   io.Writer
	h     slog.Handler
	trace bool
}

// New builds a Handler writing to file (which may be nil to discard) with
// the given level. When trace is true every record also reaches stderr;
// otherwise only slog.LevelWarn and above do.
func New(file io.Writer, level slog.Level, trace bool) *Handler {
	return &Handler{
		out: file,
		h: slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: level,
		}),
		trace: trace,
	}
}

func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithAttrs(attrs), trace: h.trace}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{out: h.out, h: h.h.WithGroup(name), trace: h.trace}
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	formattedTime := r.Time.Format("2006/01/02 15:04:05")
	strs := []string{formattedTime, r.Level.String() + ":", r.Message}

	if r.NumAttrs() != 0 {
		r.Attrs(func(a slog.Attr) bool {
			strs = append(strs, a.Key+"="+a.Value.String())
			return true
		})
	}
	line := strings.Join(strs, " ") + "\n"

	var err error
	if h.out != nil {
		_, err = h.out.Write([]byte(line))
	}
	if h.trace || r.Level >= slog.LevelWarn {
		_, err = os.Stderr.Write([]byte(line))
	}
	return err
}
