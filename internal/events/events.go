package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
)

// Source identifies the entry point that produced a classification attempt.
type Source string

// Known sources.
const (
	SourceForm Source = "form"
	SourceAPI  Source = "api"
	SourceCLI  Source = "cli"
)

// ClassificationEvent is the telemetry record emitted for every classification
// attempt, successful or not. Exactly one of Category and Error is set.
type ClassificationEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Source    Source `json:"source"`
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`

	// Category is the machine name of the assigned category
	Category string `json:"category,omitempty"`

	// Error is the reason the reading was rejected
	Error string `json:"error,omitempty"`

	// TraceID correlates the event with the HTTP request that produced it
	TraceID string `json:"trace_id,omitempty"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewClassificationEvent builds an event for one classification attempt.
// A non-nil err marks the attempt as rejected and the category is ignored.
func NewClassificationEvent(
	source Source,
	reading bloodpressure.Reading,
	category bloodpressure.Category,
	err error,
) *ClassificationEvent {
	event := &ClassificationEvent{
		ID:        uuid.New(),
		Source:    source,
		Systolic:  reading.Systolic,
		Diastolic: reading.Diastolic,
		CreatedAt: time.Now().UTC(),
	}
	if err != nil {
		event.Error = err.Error()
	} else {
		event.Category = category.String()
	}
	return event
}

// Succeeded reports whether the reading was classified.
func (e *ClassificationEvent) Succeeded() bool {
	return e.Error == ""
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *ClassificationEvent) error
}

// EventHandlerFunc adapts a plain function to EventHandler.
type EventHandlerFunc func(ctx context.Context, event *ClassificationEvent) error

// HandleEvent calls f.
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *ClassificationEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *ClassificationEvent) error
}
