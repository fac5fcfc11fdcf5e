package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/bpcalc/internal/api"
	apiMiddleware "github.com/phrazzld/bpcalc/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	formHandler, err := api.NewFormHandler(app.readingService, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create form handler: %w", err)
	}
	readingHandler := api.NewReadingHandler(app.readingService, app.logger)

	// Classification endpoints are rate limited; static lookups are not
	r.Group(func(r chi.Router) {
		r.Use(app.rateLimiter.Middleware)
		r.Post("/", formHandler.Submit)
		r.Post("/api/readings/classify", readingHandler.Classify)
	})

	r.Get("/", formHandler.Index)
	r.Get("/api/categories", readingHandler.Categories)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r, nil
}
