package database

import (
	"context"
	"edu_portal/internal/config"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Options 把配置映射为 go-redis 连接参数，读写超时与拨号超时一致
func Options(cfg *config.RedisConfig) *redis.Options {
	timeout := time.Duration(cfg.DialTimeout) * time.Second
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
}

// InitRedis 会话存储为 redis 时使用，启动时连不上直接报错
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(Options(cfg))

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.DialTimeout)*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", rdb.Options().Addr, err)
	}

	return rdb, nil
}
