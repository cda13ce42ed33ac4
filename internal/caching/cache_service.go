package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"pharmatrack/internal/models"

	"github.com/redis/go-redis/v9"
)

// CacheService fronts Redis for the hot read paths: the settings singleton,
// the inventory summary header and the notification counters. Cache misses
// return (nil, nil); callers fall through to the database.
type CacheService interface {
	GetAlertSettings(ctx context.Context) (*models.AlertSettings, error)
	SetAlertSettings(ctx context.Context, settings *models.AlertSettings, ttl time.Duration) error
	DeleteAlertSettings(ctx context.Context) error

	GetStockSummary(ctx context.Context) (*models.StockSummary, error)
	SetStockSummary(ctx context.Context, summary *models.StockSummary, ttl time.Duration) error
	DeleteStockSummary(ctx context.Context) error

	GetNotificationCounts(ctx context.Context) (*models.NotificationCounts, error)
	SetNotificationCounts(ctx context.Context, counts *models.NotificationCounts, ttl time.Duration) error
	DeleteNotificationCounts(ctx context.Context) error

	Ping(ctx context.Context) error
}

const (
	settingsKey           = "pharmatrack:alert_settings"
	stockSummaryKey       = "pharmatrack:stock_summary"
	notificationCountsKey = "pharmatrack:notification_counts"
)

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %v", key, err)
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) GetAlertSettings(ctx context.Context) (*models.AlertSettings, error) {
	var settings models.AlertSettings
	hit, err := r.getJSON(ctx, settingsKey, &settings)
	if err != nil || !hit {
		return nil, err
	}
	return &settings, nil
}

func (r *redisCacheService) SetAlertSettings(ctx context.Context, settings *models.AlertSettings, ttl time.Duration) error {
	return r.setJSON(ctx, settingsKey, settings, ttl)
}

func (r *redisCacheService) DeleteAlertSettings(ctx context.Context) error {
	return r.client.Del(ctx, settingsKey).Err()
}

func (r *redisCacheService) GetStockSummary(ctx context.Context) (*models.StockSummary, error) {
	var summary models.StockSummary
	hit, err := r.getJSON(ctx, stockSummaryKey, &summary)
	if err != nil || !hit {
		return nil, err
	}
	return &summary, nil
}

func (r *redisCacheService) SetStockSummary(ctx context.Context, summary *models.StockSummary, ttl time.Duration) error {
	return r.setJSON(ctx, stockSummaryKey, summary, ttl)
}

func (r *redisCacheService) DeleteStockSummary(ctx context.Context) error {
	return r.client.Del(ctx, stockSummaryKey).Err()
}

func (r *redisCacheService) GetNotificationCounts(ctx context.Context) (*models.NotificationCounts, error) {
	var counts models.NotificationCounts
	hit, err := r.getJSON(ctx, notificationCountsKey, &counts)
	if err != nil || !hit {
		return nil, err
	}
	return &counts, nil
}

func (r *redisCacheService) SetNotificationCounts(ctx context.Context, counts *models.NotificationCounts, ttl time.Duration) error {
	return r.setJSON(ctx, notificationCountsKey, counts, ttl)
}

func (r *redisCacheService) DeleteNotificationCounts(ctx context.Context) error {
	return r.client.Del(ctx, notificationCountsKey).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
