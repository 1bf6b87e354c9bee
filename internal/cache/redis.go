package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"nutridiary/internal/models"

	"github.com/redis/go-redis/v9"
)

// DiaryDayTTL bounds how long an assembled day may serve from cache; a
// save invalidates it explicitly, the TTL only covers missed
// invalidations.
const DiaryDayTTL = 15 * time.Minute

// ReferenceFoodsTTL covers the reference food table, which only changes
// when the seeder runs.
const ReferenceFoodsTTL = 24 * time.Hour

// RedisClient caches assembled diary days and the reference food table.
// A nil *RedisClient is a valid no-op cache, so the server can run with
// Redis unavailable.
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClient() (*RedisClient, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	ctx := context.Background()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisClient{client: client, ctx: ctx}, nil
}

func (r *RedisClient) Close() error {
	if r == nil {
		return nil
	}
	return r.client.Close()
}

func diaryKey(userID uint, date string) string {
	return fmt.Sprintf("diary:%d:%s", userID, date)
}

// StoreDiaryDay caches an assembled day.
func (r *RedisClient) StoreDiaryDay(userID uint, date string, day *models.FoodDiaryDay) error {
	if r == nil {
		return nil
	}
	jsonData, err := json.Marshal(day)
	if err != nil {
		return fmt.Errorf("failed to marshal diary day: %w", err)
	}
	return r.client.Set(r.ctx, diaryKey(userID, date), jsonData, DiaryDayTTL).Err()
}

// GetDiaryDay returns a cached day; the second return is false on miss.
func (r *RedisClient) GetDiaryDay(userID uint, date string) (*models.FoodDiaryDay, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	data, err := r.client.Get(r.ctx, diaryKey(userID, date)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get diary day from Redis: %w", err)
	}

	var day models.FoodDiaryDay
	if err := json.Unmarshal([]byte(data), &day); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal diary day: %w", err)
	}
	return &day, true, nil
}

// InvalidateDiaryDay drops a day from cache after it is mutated or saved.
func (r *RedisClient) InvalidateDiaryDay(userID uint, date string) error {
	if r == nil {
		return nil
	}
	return r.client.Del(r.ctx, diaryKey(userID, date)).Err()
}

// InvalidateUserDiary drops every cached diary day of a user. Goal
// propagation rewrites today's and future snapshots in the database,
// and dropping the whole set is cheaper than picking out the window.
func (r *RedisClient) InvalidateUserDiary(userID uint) error {
	if r == nil {
		return nil
	}
	iter := r.client.Scan(r.ctx, 0, fmt.Sprintf("diary:%d:*", userID), 0).Iterator()
	for iter.Next(r.ctx) {
		if err := r.client.Del(r.ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// StoreReferenceFoods caches the static food table.
func (r *RedisClient) StoreReferenceFoods(foods []models.Food) error {
	if r == nil {
		return nil
	}
	jsonData, err := json.Marshal(foods)
	if err != nil {
		return fmt.Errorf("failed to marshal reference foods: %w", err)
	}
	return r.client.Set(r.ctx, "foods:reference", jsonData, ReferenceFoodsTTL).Err()
}

// GetReferenceFoods returns the cached food table; false on miss.
func (r *RedisClient) GetReferenceFoods() ([]models.Food, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	data, err := r.client.Get(r.ctx, "foods:reference").Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get reference foods from Redis: %w", err)
	}

	var foods []models.Food
	if err := json.Unmarshal([]byte(data), &foods); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal reference foods: %w", err)
	}
	return foods, true, nil
}

// GetStatus reports connection health for the debug endpoint.
func (r *RedisClient) GetStatus() (map[string]interface{}, error) {
	if r == nil {
		return map[string]interface{}{"connected": false}, nil
	}
	if err := r.client.Ping(r.ctx).Err(); err != nil {
		return nil, err
	}

	stats := r.client.PoolStats()
	return map[string]interface{}{
		"connected":    true,
		"hits":         stats.Hits,
		"misses":       stats.Misses,
		"active_conns": stats.TotalConns,
	}, nil
}
