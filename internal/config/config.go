package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Session   SessionConfig   `mapstructure:"session"`
	Security  SecurityConfig  `mapstructure:"security"`
	Log       LogConfig       `mapstructure:"log"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Payment   PaymentConfig   `mapstructure:"payment"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ConfigPath string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string `mapstructure:"port" validate:"required,numeric"`
	Mode string `mapstructure:"mode" validate:"omitempty,oneof=debug release test"`
}

// BackendConfig 学习平台 REST 后端
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout_seconds"`
}

type SessionConfig struct {
	Store    string `mapstructure:"store" validate:"oneof=cookie redis"`
	Name     string `mapstructure:"name" validate:"required"`
	Secret   string `mapstructure:"secret"`
	MaxAge   int    `mapstructure:"max_age" validate:"gte=0"`
	Secure   bool   `mapstructure:"secure"`
	RedisTTL int    `mapstructure:"redis_ttl_hours" validate:"gte=0"`
}

type SecurityConfig struct {
	CSRFEnabled    bool     `mapstructure:"csrf_enabled"`
	CSRFKey        string   `mapstructure:"csrf_key"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level      string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

type TracingConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint" validate:"required_if=Enabled true"`
	ServiceName       string  `mapstructure:"service_name" validate:"required"`
	SampleRatio       float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

type RedisConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Password     string `mapstructure:"password"`
	DB           int    `mapstructure:"db"`
	PoolSize     int    `mapstructure:"pool_size" validate:"gte=1"`
	MinIdleConns int    `mapstructure:"min_idle_conns" validate:"gte=0"`
	// 单位：秒
	DialTimeout int `mapstructure:"dial_timeout_seconds" validate:"gte=1"`
}

// PaymentConfig 外部支付提供方（例如 PortOne）
type PaymentConfig struct {
	ProviderURL string `mapstructure:"provider_url" validate:"omitempty,url"`
	APISecret   string `mapstructure:"api_secret"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("EDU_PORTAL")
	v.AutomaticEnv()

	setDefaults(v)

	// Backend
	v.BindEnv("backend.base_url", "BACKEND_BASE_URL")
	v.BindEnv("backend.timeout_seconds", "BACKEND_TIMEOUT_SECONDS")

	// Session
	v.BindEnv("session.store", "SESSION_STORE")
	v.BindEnv("session.secret", "SESSION_SECRET")
	v.BindEnv("security.csrf_key", "CSRF_KEY")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.port", "SERVER_PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Payment
	v.BindEnv("payment.provider_url", "PAYMENT_PROVIDER_URL")
	v.BindEnv("payment.api_secret", "PAYMENT_API_SECRET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")
	v.BindEnv("tracing.sample_ratio", "TRACING_SAMPLE_RATIO")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Backend.Timeout = cfg.Backend.Timeout * time.Second
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("backend.base_url", "http://localhost:8000/api/v1")
	v.SetDefault("backend.timeout_seconds", 10)
	v.SetDefault("session.store", "cookie")
	v.SetDefault("session.name", "edu_portal")
	v.SetDefault("session.max_age", 7*24*3600)
	v.SetDefault("session.redis_ttl_hours", 24*7)
	v.SetDefault("security.csrf_enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout_seconds", 3)
	v.SetDefault("tracing.service_name", "edu-portal")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// Validate 校验配置，release 模式下要求会话与 CSRF 密钥足够长
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Server.Mode == "release" {
		if len(cfg.Session.Secret) < 32 {
			return fmt.Errorf("session secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.Session.Secret))
		}
		if cfg.Security.CSRFEnabled && len(cfg.Security.CSRFKey) != 32 {
			return fmt.Errorf("csrf key must be exactly 32 bytes in release mode, got %d", len(cfg.Security.CSRFKey))
		}
	}

	return nil
}
