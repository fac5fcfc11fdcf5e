package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockEventHandler records every event it receives.
type MockEventHandler struct {
	mu           sync.Mutex
	HandledCount int
	LastEvent    *events.ClassificationEvent
	HandlerError error
}

func (m *MockEventHandler) HandleEvent(ctx context.Context, event *events.ClassificationEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HandledCount++
	m.LastEvent = event
	return m.HandlerError
}

func newEvent() *events.ClassificationEvent {
	return events.NewClassificationEvent(
		events.SourceAPI,
		bloodpressure.Reading{Systolic: 120, Diastolic: 70},
		bloodpressure.PreHigh,
		nil,
	)
}

func TestNewClassificationEvent(t *testing.T) {
	t.Parallel()

	t.Run("accepted reading", func(t *testing.T) {
		t.Parallel()
		event := newEvent()

		assert.NotEmpty(t, event.ID)
		assert.Equal(t, events.SourceAPI, event.Source)
		assert.Equal(t, 120, event.Systolic)
		assert.Equal(t, 70, event.Diastolic)
		assert.Equal(t, "pre_high", event.Category)
		assert.Empty(t, event.Error)
		assert.True(t, event.Succeeded())
		assert.False(t, event.CreatedAt.IsZero())
	})

	t.Run("rejected reading", func(t *testing.T) {
		t.Parallel()
		_, err := bloodpressure.Classify(80, 90)
		require.Error(t, err)

		event := events.NewClassificationEvent(
			events.SourceForm,
			bloodpressure.Reading{Systolic: 80, Diastolic: 90},
			0,
			err,
		)

		assert.Empty(t, event.Category)
		assert.Equal(t, err.Error(), event.Error)
		assert.False(t, event.Succeeded())
	})

	t.Run("ids are unique", func(t *testing.T) {
		t.Parallel()
		assert.NotEqual(t, newEvent().ID, newEvent().ID)
	})
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()

	t.Run("no handlers", func(t *testing.T) {
		t.Parallel()
		log, buf := logger.GetTestLogger(t)
		emitter := events.NewInMemoryEventEmitter(log)

		require.NoError(t, emitter.EmitEvent(context.Background(), newEvent()))
		logger.AssertLogContains(t, buf, "no handlers registered for event")
	})

	t.Run("dispatches to every handler", func(t *testing.T) {
		t.Parallel()
		log, _ := logger.GetTestLogger(t)
		emitter := events.NewInMemoryEventEmitter(log)
		first := &MockEventHandler{}
		second := &MockEventHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event := newEvent()
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 2, emitter.HandlerCount())
		assert.Equal(t, 1, first.HandledCount)
		assert.Equal(t, 1, second.HandledCount)
		assert.Same(t, event, first.LastEvent)
		assert.Same(t, event, second.LastEvent)
	})

	t.Run("returns first error and keeps dispatching", func(t *testing.T) {
		t.Parallel()
		log, buf := logger.GetTestLogger(t)
		emitter := events.NewInMemoryEventEmitter(log)
		errFirst := errors.New("first failure")
		failing := &MockEventHandler{HandlerError: errFirst}
		alsoFailing := &MockEventHandler{HandlerError: errors.New("second failure")}
		healthy := &MockEventHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(alsoFailing)
		emitter.RegisterHandler(healthy)

		err := emitter.EmitEvent(context.Background(), newEvent())

		assert.ErrorIs(t, err, errFirst)
		assert.Equal(t, 1, healthy.HandledCount)
		logger.AssertLogContains(t, buf, "handler failed to process event")
	})

	t.Run("handler func adapter", func(t *testing.T) {
		t.Parallel()
		log, _ := logger.GetTestLogger(t)
		emitter := events.NewInMemoryEventEmitter(log)
		var got *events.ClassificationEvent
		emitter.RegisterHandler(events.EventHandlerFunc(
			func(ctx context.Context, event *events.ClassificationEvent) error {
				got = event
				return nil
			}))

		event := newEvent()
		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Same(t, event, got)
	})

	t.Run("concurrent emit and register", func(t *testing.T) {
		t.Parallel()
		log, _ := logger.GetTestLogger(t)
		emitter := events.NewInMemoryEventEmitter(log)
		handler := &MockEventHandler{}
		emitter.RegisterHandler(handler)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				_ = emitter.EmitEvent(context.Background(), newEvent())
			}()
			go func() {
				defer wg.Done()
				emitter.RegisterHandler(&MockEventHandler{})
			}()
		}
		wg.Wait()

		assert.Equal(t, 21, emitter.HandlerCount())
		handler.mu.Lock()
		defer handler.mu.Unlock()
		assert.Equal(t, 20, handler.HandledCount)
	})
}

func TestLogEventHandler(t *testing.T) {
	t.Parallel()

	t.Run("accepted reading logs at info", func(t *testing.T) {
		t.Parallel()
		log, buf := logger.GetTestLogger(t)
		handler := events.NewLogEventHandler(log)
		event := newEvent()
		event.TraceID = "trace-123"

		require.NoError(t, handler.HandleEvent(context.Background(), event))

		entry := logger.FindLogEntry(t, buf, "classification recorded")
		require.NotNil(t, entry)
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "pre_high", entry["category"])
		assert.Equal(t, "api", entry["source"])
		assert.Equal(t, "trace-123", entry["trace_id"])
		assert.EqualValues(t, 120, entry["systolic"])
	})

	t.Run("rejected reading logs at warn", func(t *testing.T) {
		t.Parallel()
		log, buf := logger.GetTestLogger(t)
		handler := events.NewLogEventHandler(log)
		_, err := bloodpressure.Classify(80, 80)
		event := events.NewClassificationEvent(events.SourceCLI,
			bloodpressure.Reading{Systolic: 80, Diastolic: 80}, 0, err)

		require.NoError(t, handler.HandleEvent(context.Background(), event))

		entry := logger.FindLogEntry(t, buf, "classification rejected")
		require.NotNil(t, entry)
		assert.Equal(t, "WARN", entry["level"])
		assert.Contains(t, entry["error"], "greater than diastolic")
		assert.NotContains(t, entry, "trace_id")
	})
}
