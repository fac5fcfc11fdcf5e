package middleware

import (
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/bpcalc/internal/api/shared"
	"github.com/phrazzld/bpcalc/internal/config"
	"github.com/phrazzld/bpcalc/internal/platform/logger"
	"github.com/phrazzld/bpcalc/internal/redact"
	"github.com/redis/go-redis/v9"
)

// tokenBucketScript refills the bucket for the elapsed whole intervals and
// takes one token. It returns {allowed, remaining, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local refill_tokens = tonumber(ARGV[3])
local interval_ms = tonumber(ARGV[4])
local ttl_seconds = tonumber(ARGV[5])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

local elapsed = math.max(0, now_ms - last_refill)
local intervals = math.floor(elapsed / interval_ms)
if intervals > 0 then
  tokens = math.min(capacity, tokens + intervals * refill_tokens)
  last_refill = last_refill + intervals * interval_ms
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
  allowed = 1
  tokens = tokens - 1
else
  retry_after_ms = math.max(0, interval_ms - (now_ms - last_refill))
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// ErrRateLimited is logged when a client has exhausted its bucket.
var ErrRateLimited = errors.New("rate limit exceeded")

// RateLimiter limits requests per client IP with a token bucket stored in Redis.
// Redis failures let the request through.
type RateLimiter struct {
	cfg    config.RateLimitConfig
	client redis.Scripter
	now    func() time.Time
}

// NewRateLimiter creates a limiter backed by client. A nil client or a
// disabled config yields a limiter whose middleware is a no-op.
func NewRateLimiter(cfg config.RateLimitConfig, client redis.Scripter) *RateLimiter {
	return &RateLimiter{cfg: cfg, client: client, now: time.Now}
}

// Enabled reports whether requests are actually limited.
func (l *RateLimiter) Enabled() bool {
	return l.cfg.Enabled && l.client != nil
}

// Middleware returns the HTTP middleware enforcing the limit.
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !l.Enabled() {
		return next
	}

	interval := time.Duration(l.cfg.RefillIntervalMS) * time.Millisecond
	// keep idle buckets long enough to refill completely
	ttl := time.Duration(math.Ceil(float64(l.cfg.Capacity)/float64(l.cfg.RefillTokens))) * interval
	if ttl < time.Minute {
		ttl = time.Minute
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := l.key(r)
		log := logger.FromContextOrDefault(r.Context(), slog.Default())

		vals, err := tokenBucketScript.Run(r.Context(), l.client, []string{key},
			l.now().UnixMilli(),
			l.cfg.Capacity,
			l.cfg.RefillTokens,
			interval.Milliseconds(),
			int64(ttl/time.Second),
		).Int64Slice()
		if err != nil || len(vals) != 3 {
			log.Warn("rate limiter unavailable, allowing request",
				"key", key,
				"error", redact.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		allowed, remaining, retryMS := vals[0] == 1, vals[1], vals[2]
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.cfg.Capacity))
		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if !allowed {
			secs := int(math.Ceil(float64(retryMS) / 1000.0))
			if secs < 1 {
				secs = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(secs))
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Too many requests, please try again later", ErrRateLimited)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// key builds the bucket key from the configured prefix and the client IP.
// RealIP middleware runs earlier, so RemoteAddr already holds the client address.
func (l *RateLimiter) key(r *http.Request) string {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	if ip == "" {
		ip = "unknown"
	}
	return strings.Join([]string{l.cfg.Prefix, "ip", ip}, ":")
}
