package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/phrazzld/bpcalc/internal/api/shared"
	"github.com/phrazzld/bpcalc/internal/domain/bloodpressure"
	"github.com/phrazzld/bpcalc/internal/events"
	"github.com/phrazzld/bpcalc/internal/platform/logger"
	"github.com/phrazzld/bpcalc/internal/redact"
	"github.com/phrazzld/bpcalc/internal/service"
)

//go:embed templates/index.html
var templateFS embed.FS

// formPage is the data rendered into index.html.
type formPage struct {
	Systolic     string
	Diastolic    string
	Error        string
	Result       *ReadingResponse
	Chart        []CategoryResponse
	SystolicMin  int
	SystolicMax  int
	DiastolicMin int
	DiastolicMax int
}

// FormHandler serves the HTML calculator form.
type FormHandler struct {
	readingService service.ReadingService
	tmpl           *template.Template
	logger         *slog.Logger
}

// NewFormHandler parses the embedded page template and returns a handler.
func NewFormHandler(readingService service.ReadingService, logger *slog.Logger) (*FormHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse form template: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FormHandler{
		readingService: readingService,
		tmpl:           tmpl,
		logger:         logger.With("component", "form_handler"),
	}, nil
}

// Index handles GET / and renders an empty form.
func (h *FormHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.newPage())
}

// Submit handles POST / and renders the form with either the classification
// or a validation message. Submitted values are echoed back.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	page := h.newPage()

	r.Body = http.MaxBytesReader(w, r.Body, shared.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		page.Error = "The form could not be read, please try again"
		h.render(w, r, http.StatusBadRequest, page)
		return
	}

	systolic, rawSystolic, sysErr := parseFormInt(r, "systolic")
	diastolic, rawDiastolic, diaErr := parseFormInt(r, "diastolic")
	page.Systolic, page.Diastolic = rawSystolic, rawDiastolic

	if err := firstError(sysErr, diaErr); err != nil {
		page.Error = GetSafeErrorMessage(err)
		h.render(w, r, http.StatusBadRequest, page)
		return
	}

	result, err := h.readingService.Classify(r.Context(), service.ClassifyRequest{
		Reading: bloodpressure.Reading{Systolic: systolic, Diastolic: diastolic},
		Source:  events.SourceForm,
		TraceID: shared.GetTraceID(r.Context()),
	})
	if err != nil {
		status := MapErrorToStatusCode(err)
		if status >= http.StatusInternalServerError {
			logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to classify form reading",
				"error", redact.Error(err))
		}
		page.Error = GetSafeErrorMessage(err)
		h.render(w, r, status, page)
		return
	}

	response := resultToResponse(result)
	page.Result = &response
	h.render(w, r, http.StatusOK, page)
}

func (h *FormHandler) newPage() formPage {
	return formPage{
		Chart:        chartToResponse(h.readingService.Categories()),
		SystolicMin:  bloodpressure.SystolicMin,
		SystolicMax:  bloodpressure.SystolicMax,
		DiastolicMin: bloodpressure.DiastolicMin,
		DiastolicMax: bloodpressure.DiastolicMax,
	}
}

// render executes the template into a buffer first so a template failure can
// still produce a clean 500 response.
func (h *FormHandler) render(w http.ResponseWriter, r *http.Request, status int, page formPage) {
	var buf bytes.Buffer
	if err := h.tmpl.Execute(&buf, page); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to render form", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("failed to write form response", "error", err)
	}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
