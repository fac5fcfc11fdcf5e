package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/bpcalc/internal/api/shared"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/platform/logger"
	"github.com/phrazzld/bpcalc/internal/service"
)

// ReadingHandler serves the JSON classification API.
type ReadingHandler struct {
	readingService service.ReadingService
	logger         *slog.Logger
}

// NewReadingHandler creates a new ReadingHandler.
func NewReadingHandler(readingService service.ReadingService, logger *slog.Logger) *ReadingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReadingHandler{
		readingService: readingService,
		logger:         logger.With("component", "reading_handler"),
	}
}

// Classify handles POST /api/readings/classify requests.
func (h *ReadingHandler) Classify(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ClassifyRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Debug("invalid classify request body", "error", err)
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	result, err := h.readingService.Classify(r.Context(), service.ClassifyRequest{
		Reading: req.Reading(),
		Source:  events.SourceAPI,
		TraceID: shared.GetTraceID(r.Context()),
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to classify reading")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resultToResponse(result))
}

// Categories handles GET /api/categories requests.
func (h *ReadingHandler) Categories(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, chartToResponse(h.readingService.Categories()))
}
