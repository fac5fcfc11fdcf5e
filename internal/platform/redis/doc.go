// Package redis builds the Redis client used by the request rate limiter.
package redis
