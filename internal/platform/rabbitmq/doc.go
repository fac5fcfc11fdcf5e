// Package rabbitmq forwards classification telemetry to a RabbitMQ broker.
// The Publisher implements events.EventHandler and writes every event as a
// persistent JSON message to a durable queue on the default exchange.
package rabbitmq
