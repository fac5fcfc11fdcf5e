// Package service contains the application use cases. ReadingService checks a
// submitted reading against the accepted ranges, classifies it with the
// bloodpressure domain service and emits a telemetry event for every attempt.
//
// Services receive their collaborators through constructor injection and never
// depend on transport or broker implementations directly.
package service
