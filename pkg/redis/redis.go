package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jhart328/study-forge/config"
)

// Client Redis 客户端封装
// 当前用于学习计划快照缓存；后续可扩展其他缓存场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 学习计划快照缓存 ──

const (
	planKey = "plan:latest"
	planTTL = 10 * time.Minute
)

// SetPlan 缓存最近一次生成的学习计划（JSON 序列化后的会话列表）
func (c *Client) SetPlan(ctx context.Context, payload []byte) error {
	return c.rdb.Set(ctx, planKey, payload, planTTL).Err()
}

// GetPlan 读取缓存的学习计划；缓存未命中时返回 redis.Nil
func (c *Client) GetPlan(ctx context.Context) ([]byte, error) {
	return c.rdb.Get(ctx, planKey).Bytes()
}

// InvalidatePlan 使计划缓存失效（任务/偏好变更后调用）
func (c *Client) InvalidatePlan(ctx context.Context) error {
	return c.rdb.Del(ctx, planKey).Err()
}

// IsCacheMiss 判断错误是否为缓存未命中
func IsCacheMiss(err error) bool {
	return err == goredis.Nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
