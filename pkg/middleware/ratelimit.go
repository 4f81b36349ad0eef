package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"pet-rental/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimit is a fixed-window per-IP limiter backed by redis, shared across
// instances. Fails open when redis is unreachable so login does not go down
// with the cache.
func RateLimit(rdb *redis.Client, limit int, window time.Duration, prefix string, logger *zap.Logger) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	if prefix == "" {
		prefix = "rl"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := prefix + ":" + clientIP(r)

			res, err := fixedWindowScript.Run(r.Context(), rdb, []string{key}, window.Milliseconds()).Result()
			if err != nil {
				logger.Warn("Rate limiter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			count, ok := res.(int64)
			if !ok {
				if s, isStr := res.(string); isStr {
					count, _ = strconv.ParseInt(s, 10, 64)
				}
			}

			if count > int64(limit) {
				utils.ResponseJSON(w, http.StatusTooManyRequests, false, "Too many requests", nil, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
