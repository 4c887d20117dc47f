// Package middleware holds HTTP middleware shared by the service's write
// endpoints.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Request-level idempotency: a client that retries a write with the same
// X-Idempotency-Key gets the recorded response instead of a second charge or
// refund. This guards the HTTP surface only; per-call gateway idempotency
// keys are minted separately by the orchestrator.
const (
	IdempotencyKeyHeader = "X-Idempotency-Key"

	keyPrefix = "payments:idempotency:"

	statusProcessing = "processing"
	statusCompleted  = "completed"
)

// record is the stored state of an idempotent request.
type record struct {
	Status       string    `json:"status"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
}

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Redis *redis.Client

	// TTL for completed records.
	TTL time.Duration
	// TTL for in-flight records, bounding how long a concurrent duplicate
	// is rejected when the first attempt dies mid-request.
	ProcessingTTL time.Duration
}

// DefaultIdempotencyConfig returns the default configuration.
func DefaultIdempotencyConfig(client *redis.Client) *IdempotencyConfig {
	return &IdempotencyConfig{
		Redis:         client,
		TTL:           24 * time.Hour,
		ProcessingTTL: 60 * time.Second,
	}
}

type bodyRecorder struct {
	gin.ResponseWriter
	body []byte
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

// Idempotency returns a middleware that deduplicates write requests by the
// X-Idempotency-Key header. Requests without the header pass through.
func Idempotency(cfg *IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		redisKey := keyPrefix + key

		claimed, err := claim(ctx, cfg, redisKey)
		if err != nil {
			// Redis being down must not block payments; fall through.
			c.Next()
			return
		}

		if !claimed {
			stored, err := load(ctx, cfg, redisKey)
			if err != nil {
				c.Next()
				return
			}
			if stored.Status == statusProcessing {
				c.AbortWithStatusJSON(http.StatusConflict, gin.H{
					"success": false,
					"error": gin.H{
						"code":    "REQUEST_IN_PROGRESS",
						"message": "a request with this idempotency key is still being processed",
					},
				})
				return
			}
			// Replay the recorded response.
			c.Data(stored.ResponseCode, "application/json", []byte(stored.ResponseBody))
			c.Abort()
			return
		}

		recorder := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = recorder

		c.Next()

		completed := record{
			Status:       statusCompleted,
			ResponseCode: recorder.Status(),
			ResponseBody: string(recorder.body),
			CreatedAt:    time.Now().UTC(),
		}
		if data, err := json.Marshal(completed); err == nil {
			cfg.Redis.Set(ctx, redisKey, data, cfg.TTL)
		}
	}
}

// claim atomically marks the key as in flight. Returns false when another
// request already holds or completed it.
func claim(ctx context.Context, cfg *IdempotencyConfig, redisKey string) (bool, error) {
	data, err := json.Marshal(record{Status: statusProcessing, CreatedAt: time.Now().UTC()})
	if err != nil {
		return false, err
	}
	return cfg.Redis.SetNX(ctx, redisKey, data, cfg.ProcessingTTL).Result()
}

func load(ctx context.Context, cfg *IdempotencyConfig, redisKey string) (*record, error) {
	data, err := cfg.Redis.Get(ctx, redisKey).Bytes()
	if err != nil {
		return nil, err
	}
	var stored record
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return &stored, nil
}
