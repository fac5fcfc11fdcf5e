// Package api handles incoming HTTP requests for the blood pressure
// calculator. FormHandler serves the server-rendered HTML form and
// ReadingHandler serves the JSON API. Both translate HTTP input into
// service.ReadingService calls and map domain errors to safe client messages.
package api
