// Package middleware provides HTTP middleware for request tracing and
// Redis-backed rate limiting.
package middleware
