package events

import (
	"context"
	"log/slog"
)

// LogEventHandler writes each classification event to a structured logger.
// Accepted readings are logged at info, rejected ones at warn.
type LogEventHandler struct {
	logger *slog.Logger
}

// NewLogEventHandler creates a handler that logs to logger.
func NewLogEventHandler(logger *slog.Logger) *LogEventHandler {
	return &LogEventHandler{logger: logger.With("component", "telemetry")}
}

// HandleEvent implements EventHandler.
func (h *LogEventHandler) HandleEvent(ctx context.Context, event *ClassificationEvent) error {
	attrs := []slog.Attr{
		slog.String("event_id", event.ID.String()),
		slog.String("source", string(event.Source)),
		slog.Int("systolic", event.Systolic),
		slog.Int("diastolic", event.Diastolic),
	}
	if event.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", event.TraceID))
	}

	if event.Succeeded() {
		attrs = append(attrs, slog.String("category", event.Category))
		h.logger.LogAttrs(ctx, slog.LevelInfo, "classification recorded", attrs...)
		return nil
	}

	attrs = append(attrs, slog.String("error", event.Error))
	h.logger.LogAttrs(ctx, slog.LevelWarn, "classification rejected", attrs...)
	return nil
}
