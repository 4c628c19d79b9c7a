package middleware

import (
	"fmt"
	"net/http"
	"time"

	"car-rental/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimit enforces a fixed-window request quota per caller, keyed by user
// id when authenticated and remote address otherwise. Counters live in redis
// so the limit holds across instances. Redis being down fails open.
func RateLimit(rdb *redis.Client, limit, windowSeconds int, logger *zap.Logger) func(http.Handler) http.Handler {
	window := time.Duration(windowSeconds) * time.Second

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rdb == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			caller := r.RemoteAddr
			if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
				caller = userID.String()
			}
			key := fmt.Sprintf("ratelimit:%s:%s", r.URL.Path, caller)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("Rate limit counter unavailable", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := rdb.Expire(r.Context(), key, window).Err(); err != nil {
					logger.Warn("Failed to set rate limit window", zap.Error(err))
				}
			}

			if count > int64(limit) {
				logger.Warn("Rate limit exceeded",
					zap.String("caller", caller),
					zap.String("path", r.URL.Path),
					zap.Int64("count", count),
				)
				utils.ResponseTooManyRequests(w, "Too many requests, slow down")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
