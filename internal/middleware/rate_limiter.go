package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/santyarena1/soundtec-fin/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Rate limiting is backed by Redis so the counters survive restarts and are
// shared across replicas. Fixed window per IP: INCR on a key that expires
// with the window. When Redis is unreachable the request is let through;
// availability wins over throttling here.

// RateLimiter limits any request to `limit` per `window` per client IP.
func RateLimiter(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return limiter(rdb, "ratelimit:api", limit, window,
		"Demasiadas solicitudes. Intente nuevamente en un momento.")
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return limiter(rdb, "ratelimit:login", 20, time.Minute,
		"Demasiados intentos de login. Intente en 1 minuto.")
}

func limiter(rdb *redis.Client, prefix string, limit int, window time.Duration, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s", prefix, c.ClientIP())

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().Err(err).Str("key", prefix).Msg("rate limiter redis error, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, window)
		}

		if count > int64(limit) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(msg))
			return
		}
		c.Next()
	}
}
