package api

import (
	"context"
	"testing"

	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/platform/logger"
	"github.com/phrazzld/bpcalc/internal/service"
	"github.com/stretchr/testify/require"
)

// MockReadingService is a mock implementation of service.ReadingService.
type MockReadingService struct {
	ClassifyFn   func(ctx context.Context, req service.ClassifyRequest) (*service.Result, error)
	CategoriesFn func() []service.CategoryInfo
	Requests     []service.ClassifyRequest
}

// Classify implements service.ReadingService
func (m *MockReadingService) Classify(ctx context.Context, req service.ClassifyRequest) (*service.Result, error) {
	m.Requests = append(m.Requests, req)
	if m.ClassifyFn != nil {
		return m.ClassifyFn(ctx, req)
	}
	return nil, nil
}

// Categories implements service.ReadingService
func (m *MockReadingService) Categories() []service.CategoryInfo {
	if m.CategoriesFn != nil {
		return m.CategoriesFn()
	}
	return nil
}

// recordingEmitter collects emitted events.
type recordingEmitter struct {
	events []*events.ClassificationEvent
}

func (e *recordingEmitter) EmitEvent(ctx context.Context, event *events.ClassificationEvent) error {
	e.events = append(e.events, event)
	return nil
}

// newRealService wires the production reading service around a recording emitter.
func newRealService(t *testing.T) (service.ReadingService, *recordingEmitter) {
	t.Helper()
	log, _ := logger.GetTestLogger(t)
	emitter := &recordingEmitter{}
	svc, err := service.NewReadingService(bloodpressure.NewDefaultService(), emitter, log)
	require.NoError(t, err)
	return svc, emitter
}
