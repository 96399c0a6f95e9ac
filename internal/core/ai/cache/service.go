package cache

import (
	"context"
	"fmt"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Service Redis 緩存後端，介面與行程內管理器一致
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService 創建 Redis 緩存服務
func NewService(cfg *config.CacheConfig) (*Service, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("Redis 快取已初始化",
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("ttl", cfg.TTL),
	)

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get 獲取緩存
func (s *Service) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.namespaced(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", common.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get cache: %w", err)
	}
	return value, nil
}

// Set 設置緩存
func (s *Service) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.namespaced(key), value, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// namespaced 加上服務命名空間，避免與其他用戶衝突
func (s *Service) namespaced(key string) string {
	return "ai:response:" + key
}

// Close 關閉 Redis 連接
func (s *Service) Close() error {
	return s.client.Close()
}
