package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Handler exposes liveness and readiness probes. Redis is an optional
// dependency; a nil client is reported but never fails readiness.
type Handler struct {
	Pool         *pgxpool.Pool
	Redis        *redis.Client
	DBTimeout    time.Duration
	RedisTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ready := true
	dbStatus := "ok"
	if err := h.pingDB(r.Context()); err != nil {
		dbStatus = err.Error()
		ready = false
	}

	redisStatus := "disabled"
	if h.Redis != nil {
		redisStatus = "ok"
		if err := h.pingRedis(r.Context()); err != nil {
			redisStatus = err.Error()
			ready = false
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !ready {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(map[string]string{
		"db":    dbStatus,
		"redis": redisStatus,
	})
}

func (h Handler) pingDB(ctx context.Context) error {
	if h.Pool == nil {
		return errors.New("database pool not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(h.DBTimeout, 500*time.Millisecond))
	defer cancel()
	return h.Pool.Ping(ctx)
}

func (h Handler) pingRedis(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(h.RedisTimeout, 300*time.Millisecond))
	defer cancel()
	return h.Redis.Ping(ctx).Err()
}

func timeoutOrDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}
