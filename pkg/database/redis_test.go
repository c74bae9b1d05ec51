package database

import (
	"edu_portal/internal/config"
	"testing"
	"time"
)

func TestOptions(t *testing.T) {
	opts := Options(&config.RedisConfig{
		Host:         "cache",
		Port:         6380,
		Password:     "pw",
		DB:           2,
		PoolSize:     8,
		MinIdleConns: 1,
		DialTimeout:  5,
	})

	if opts.Addr != "cache:6380" || opts.Password != "pw" || opts.DB != 2 {
		t.Fatalf("opts = %+v", opts)
	}
	if opts.PoolSize != 8 || opts.MinIdleConns != 1 {
		t.Fatalf("pool = %d/%d", opts.PoolSize, opts.MinIdleConns)
	}
	if opts.DialTimeout != 5*time.Second || opts.ReadTimeout != 5*time.Second {
		t.Fatalf("timeouts = %v/%v", opts.DialTimeout, opts.ReadTimeout)
	}
}

func TestInitRedisUnreachable(t *testing.T) {
	_, err := InitRedis(&config.RedisConfig{Host: "127.0.0.1", Port: 1, PoolSize: 1, DialTimeout: 1})
	if err == nil {
		t.Fatal("expected ping error for an unreachable server")
	}
}
