// Package events carries telemetry about classification attempts.
//
// Services emit a ClassificationEvent for every attempt without knowing which
// handlers consume it. The in-memory emitter fans each event out to the
// registered handlers: LogEventHandler writes it to the structured log, and the
// RabbitMQ publisher in platform/rabbitmq forwards it to a broker when enabled.
package events
