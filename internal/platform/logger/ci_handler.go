package logger

import (
	"context"
	"io"
	"log/slog"
	"sort"

	"github.com/phrazzld/bpcalc/internal/ciutil"
)

// CIHandler is a custom slog.Handler that adds CI environment metadata
// to log records before passing them to a JSON handler.
type CIHandler struct {
	handler slog.Handler
	// attrs is sorted by key so output is stable across runs
	attrs []slog.Attr
}

// NewCIHandler creates a new CIHandler writing JSON to out, adding the
// metadata reported by ciutil.Metadata to each record.
func NewCIHandler(out io.Writer, opts *slog.HandlerOptions) *CIHandler {
	return newCIHandler(out, opts, ciutil.Metadata())
}

func newCIHandler(out io.Writer, opts *slog.HandlerOptions, metadata map[string]string) *CIHandler {
	var handlerOpts slog.HandlerOptions
	if opts != nil {
		// Clone the options to avoid modifying the caller's options
		handlerOpts = *opts
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.String(k, metadata[k]))
	}

	return &CIHandler{
		handler: slog.NewJSONHandler(out, &handlerOpts),
		attrs:   attrs,
	}
}

// Enabled implements the slog.Handler interface.
func (h *CIHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// WithAttrs implements the slog.Handler interface.
func (h *CIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CIHandler{
		handler: h.handler.WithAttrs(attrs),
		attrs:   h.attrs,
	}
}

// WithGroup implements the slog.Handler interface.
func (h *CIHandler) WithGroup(name string) slog.Handler {
	return &CIHandler{
		handler: h.handler.WithGroup(name),
		attrs:   h.attrs,
	}
}

// Handle implements the slog.Handler interface.
func (h *CIHandler) Handle(ctx context.Context, record slog.Record) error {
	enhanced := record.Clone()
	enhanced.AddAttrs(h.attrs...)
	return h.handler.Handle(ctx, enhanced)
}
