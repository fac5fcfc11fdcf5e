package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/bpcalc/internal/domain"
	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/redact"
)

// ClassifyRequest is one classification attempt.
type ClassifyRequest struct {
	Reading bloodpressure.Reading
	Source  events.Source
	// TraceID links the emitted event to the originating HTTP request, if any.
	TraceID string
}

// Result is a classified reading with its display texts.
type Result struct {
	Reading     bloodpressure.Reading
	Category    bloodpressure.Category
	Label       string
	Explanation string
}

// CategoryInfo describes one row of the category chart.
type CategoryInfo struct {
	Category    bloodpressure.Category
	Label       string
	Explanation string
}

// ReadingService classifies readings submitted by any entry point.
type ReadingService interface {
	// Classify validates and classifies the reading. Range violations return a
	// *domain.ValidationError wrapping domain.ErrOutOfRange; a systolic value not
	// above the diastolic one returns an error matching
	// bloodpressure.ErrInvalidRelationship.
	Classify(ctx context.Context, req ClassifyRequest) (*Result, error)

	// Categories returns the chart of all categories in ascending severity.
	Categories() []CategoryInfo
}

type readingService struct {
	classifier bloodpressure.Service
	emitter    events.EventEmitter
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewReadingService creates a ReadingService.
// It returns an error if the classifier or emitter is nil.
func NewReadingService(
	classifier bloodpressure.Service,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (ReadingService, error) {
	if classifier == nil {
		return nil, fmt.Errorf("%w: classifier", ErrNilDependency)
	}
	if emitter == nil {
		return nil, fmt.Errorf("%w: emitter", ErrNilDependency)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &readingService{
		classifier: classifier,
		emitter:    emitter,
		validator:  validator.New(),
		logger:     logger.With("component", "reading_service"),
	}, nil
}

func (s *readingService) Classify(ctx context.Context, req ClassifyRequest) (*Result, error) {
	log := s.logger.With("source", req.Source)
	if req.TraceID != "" {
		log = log.With("trace_id", req.TraceID)
	}

	if err := s.validateRanges(req.Reading); err != nil {
		log.DebugContext(ctx, "reading out of range", "error", err)
		s.emit(ctx, log, req, 0, err)
		return nil, err
	}

	category, err := s.classifier.Classify(req.Reading)
	if err != nil {
		log.DebugContext(ctx, "reading could not be classified", "error", err)
		s.emit(ctx, log, req, 0, err)
		return nil, fmt.Errorf("failed to classify reading: %w", err)
	}

	s.emit(ctx, log, req, category, nil)

	return &Result{
		Reading:     req.Reading,
		Category:    category,
		Label:       s.classifier.Label(category),
		Explanation: s.classifier.Explain(category),
	}, nil
}

func (s *readingService) Categories() []CategoryInfo {
	all := bloodpressure.Categories()
	chart := make([]CategoryInfo, 0, len(all))
	for _, c := range all {
		chart = append(chart, CategoryInfo{
			Category:    c,
			Label:       s.classifier.Label(c),
			Explanation: s.classifier.Explain(c),
		})
	}
	return chart
}

// validateRanges checks the reading against its validate tags and reports the
// first offending field.
func (s *readingService) validateRanges(r bloodpressure.Reading) error {
	err := s.validator.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("", "reading is invalid", err)
	}

	switch fieldErrs[0].Field() {
	case "Systolic":
		return domain.NewValidationError("systolic",
			fmt.Sprintf("must be between %d and %d", bloodpressure.SystolicMin, bloodpressure.SystolicMax),
			domain.ErrOutOfRange)
	case "Diastolic":
		return domain.NewValidationError("diastolic",
			fmt.Sprintf("must be between %d and %d", bloodpressure.DiastolicMin, bloodpressure.DiastolicMax),
			domain.ErrOutOfRange)
	default:
		return domain.NewValidationError(fieldErrs[0].Field(), "is invalid", domain.ErrValidation)
	}
}

// emit sends the telemetry event. Failures are logged and never returned.
func (s *readingService) emit(
	ctx context.Context,
	log *slog.Logger,
	req ClassifyRequest,
	category bloodpressure.Category,
	cause error,
) {
	event := events.NewClassificationEvent(req.Source, req.Reading, category, cause)
	event.TraceID = req.TraceID

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.WarnContext(ctx, "failed to emit classification event",
			"event_id", event.ID,
			"error", redact.Error(err))
	}
}
