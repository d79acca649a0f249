package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AgentTarik/gosat-api/internal/envelope"
	"github.com/AgentTarik/gosat-api/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const MsgRateLimited = "Muitas requisições. Tente novamente em instantes."

type RateLimitOptions struct {
	Store *LimiterStore
	Stats RateStats
	// KeyHeader, when present on the request, identifies the client instead of its IP.
	KeyHeader string
	// TrustXFF keys clients by the first X-Forwarded-For entry.
	TrustXFF   bool
	RetryAfter time.Duration
	Log        *zap.Logger
}

// RateLimit rejects clients that exceed their token bucket with a 429 envelope.
func RateLimit(opts RateLimitOptions) gin.HandlerFunc {
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = time.Second
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	retryAfter := strconv.Itoa(int(opts.RetryAfter.Round(time.Second).Seconds()))

	return func(c *gin.Context) {
		if opts.Store == nil {
			c.Next()
			return
		}

		key := clientKey(c, opts.KeyHeader, opts.TrustXFF)
		allowed := opts.Store.Allow(key)
		telemetry.IncRateLimitDecision(allowed)

		if opts.Stats != nil {
			ev := RateEvent{
				Key:     key,
				Allowed: allowed,
				Method:  c.Request.Method,
				Route:   c.FullPath(),
				At:      time.Now(),
			}
			ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
			if err := opts.Stats.Record(ctx, ev); err != nil {
				opts.Log.Debug("rate stats record failed", zap.Error(err))
			}
			cancel()
		}

		if !allowed {
			c.Header("Retry-After", retryAfter)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, envelope.Build(MsgRateLimited, http.StatusTooManyRequests))
			return
		}
		c.Next()
	}
}

func clientKey(c *gin.Context, header string, trustXFF bool) string {
	if header != "" {
		if v := strings.TrimSpace(c.GetHeader(header)); v != "" {
			return "h:" + v
		}
	}
	if trustXFF {
		if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
			if ip := strings.TrimSpace(strings.Split(xff, ",")[0]); ip != "" {
				return "ip:" + ip
			}
		}
	}
	if ip := c.RemoteIP(); ip != "" {
		return "ip:" + ip
	}
	return "unknown"
}
