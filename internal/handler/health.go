package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports liveness of the API and its backing stores: postgres for
// the record set, redis for the notification queue. The payload stays
// coarse — component state only, no addresses or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		postgres := "up"
		if db == nil {
			postgres = "down"
		} else if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "down"
		}

		queue := "up"
		if rdb == nil || rdb.Ping(ctx).Err() != nil {
			queue = "down"
		}

		status := http.StatusOK
		overall := "ok"
		if postgres == "down" || queue == "down" {
			status = http.StatusServiceUnavailable
			overall = "degraded"
		}

		c.JSON(status, gin.H{
			"status":   overall,
			"postgres": postgres,
			"queue":    queue,
		})
	}
}
