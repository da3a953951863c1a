package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KalitoMero/silent-excel-vault/config"
)

// Client Redis 客户端封装
// 当前用于监控看板的共享缓存；连接不可用时上层降级为纯数据库读取
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

// ── 监控看板缓存 ──

const boardKey = "monitor:board"

// SetBoard 缓存看板 JSON，TTL 与轮询间隔挂钩
func (c *Client) SetBoard(ctx context.Context, payload []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, boardKey, payload, ttl).Err()
}

// GetBoard 读取缓存的看板 JSON；缓存未命中返回 (nil, nil)
func (c *Client) GetBoard(ctx context.Context) ([]byte, error) {
	b, err := c.rdb.Get(ctx, boardKey).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Close 关闭底层连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
