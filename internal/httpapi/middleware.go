package httpapi

import (
	"net/http"
	"time"

	"call-analytics/pkg/logger"
	"call-analytics/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// ingestSlotTTL bounds how long a leaked slot can linger after a crash.
const ingestSlotTTL = 30 * time.Second

// IngestBurstCap limits concurrent ingest requests per client IP using the
// Redis slot counter. On Redis failure the request is allowed through:
// the cap protects the store from bursts, it is not an auth boundary.
func IngestBurstCap(rdb *redis.Client, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ingest:cap:" + c.ClientIP()

		ok, err := utils.AcquireIngestSlot(c.Request.Context(), rdb, key, limit, ingestSlotTTL)
		if err != nil {
			logger.FromGin(c).Warn("ingest cap unavailable", "err", err)
			c.Next()
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many concurrent requests"})
			return
		}
		defer func() {
			if err := utils.ReleaseIngestSlot(c.Request.Context(), rdb, key); err != nil {
				logger.FromGin(c).Warn("ingest cap release failed", "err", err)
			}
		}()

		c.Next()
	}
}
