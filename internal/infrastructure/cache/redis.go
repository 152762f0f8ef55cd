package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/innovators-table/followup-assistant/errors"
	"github.com/innovators-table/followup-assistant/internal/domain/entities"
	"github.com/innovators-table/followup-assistant/pkg/config"
)

const runKeyPrefix = "followup:run:"

// RedisRunStore persists run records in Redis so they survive process
// restarts and are shared across replicas.
type RedisRunStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRunStore connects to Redis and verifies the connection with a
// ping before returning the store.
func NewRedisRunStore(cfg *config.Config) (*RedisRunStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperrors.ErrCacheFailed("connect", err)
	}

	return &RedisRunStore{
		client: client,
		ttl:    cfg.Followup.RunTTL,
	}, nil
}

// Save stores a snapshot of the run as JSON, resetting its TTL.
func (rs *RedisRunStore) Save(run *entities.Run) error {
	data, err := json.Marshal(run)
	if err != nil {
		return apperrors.ErrCacheFailed("marshal run", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rs.client.Set(ctx, runKeyPrefix+run.ID.String(), data, rs.ttl).Err(); err != nil {
		return apperrors.ErrCacheFailed("save run", err)
	}
	return nil
}

// Get retrieves a run by ID. Missing or expired keys return RunNotFound.
func (rs *RedisRunStore) Get(runID string) (*entities.Run, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	data, err := rs.client.Get(ctx, runKeyPrefix+runID).Bytes()
	if err == redis.Nil {
		return nil, apperrors.ErrRunNotFound(runID)
	}
	if err != nil {
		return nil, apperrors.ErrCacheFailed("fetch run", err)
	}

	var run entities.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, apperrors.ErrCacheFailed("unmarshal run", err)
	}
	return &run, nil
}

// Close releases the underlying Redis connection.
func (rs *RedisRunStore) Close() error {
	return rs.client.Close()
}
