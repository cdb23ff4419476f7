package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/ff-collection-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-collection-ledger/internal/logger"
	"github.com/feral-file/ff-collection-ledger/internal/ratelimit"
)

// RateLimit rejects requests over the limiter's budget with 429. Authenticated
// requests are keyed by caller, others by client IP. A nil limiter admits everything.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if caller, ok := Caller(c); ok {
			key = "caller:" + caller.Hex()
		}

		if !limiter.Allow(key) {
			logger.WarnCtx(c.Request.Context(), "Request rate limited",
				zap.String("key", key),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierrors.NewRateLimitedError("Too many requests"))
			return
		}

		c.Next()
	}
}
