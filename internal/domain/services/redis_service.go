package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"roomease-http-service/internal/infrastructure/config"
)

// 仪表盘摘要缓存键
const dashboardSummaryKey = "dashboard:summary"

// InterfaceRedisService 定义Redis服务接口
type InterfaceRedisService interface {
	Ping() error
	Set(key string, value interface{}, expiration time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	CacheDashboardSummary(summary interface{}, expiration time.Duration) error
	GetDashboardSummary(dest interface{}) error
	InvalidateDashboardSummary() error
}

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) InterfaceRedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// NewRedisServiceWithClient 使用已有客户端创建Redis服务（测试用）
func NewRedisServiceWithClient(client *redis.Client) InterfaceRedisService {
	return &RedisService{
		Client: client,
		Ctx:    context.Background(),
	}
}

// Ping 检查Redis连接是否可用
func (s *RedisService) Ping() error {
	ctx, cancel := context.WithTimeout(s.Ctx, 2*time.Second)
	defer cancel()
	return s.Client.Ping(ctx).Err()
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheDashboardSummary caches the dashboard summary with expiration
func (s *RedisService) CacheDashboardSummary(summary interface{}, expiration time.Duration) error {
	return s.Set(dashboardSummaryKey, summary, expiration)
}

// GetDashboardSummary gets the dashboard summary from cache
func (s *RedisService) GetDashboardSummary(dest interface{}) error {
	return s.Get(dashboardSummaryKey, dest)
}

// InvalidateDashboardSummary drops the cached dashboard summary
func (s *RedisService) InvalidateDashboardSummary() error {
	return s.Delete(dashboardSummaryKey)
}
