package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 服务配置（文件 + 环境变量，环境变量前缀 APP_）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Risk     RiskConfig     `mapstructure:"risk"`
	Batch    BatchConfig    `mapstructure:"batch"`
	Visitors VisitorsConfig `mapstructure:"visitors"`
	Sentry   SentryConfig   `mapstructure:"sentry"`
	Trace    TraceConfig    `mapstructure:"trace"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // debug / release
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"` // postgres / sqlite
	DSN    string `mapstructure:"dsn"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RiskConfig 风控计数阈值
type RiskConfig struct {
	ExpireSeconds int   `mapstructure:"expire_seconds"` // 计数窗口 TTL
	LimitCount    int64 `mapstructure:"limit_count"`    // 触发阈值
}

type BatchConfig struct {
	Size       int  `mapstructure:"size"` // 单次批量写入上限
	AsyncAudit bool `mapstructure:"async_audit"`
	Workers    int  `mapstructure:"workers"`
	QueueSize  int  `mapstructure:"queue_size"`
}

type VisitorsConfig struct {
	Max int `mapstructure:"max"` // 访客列表上限
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TraceConfig struct {
	Endpoint string `mapstructure:"endpoint"` // OTLP HTTP endpoint，空则不启用
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load 读取配置：./config.yaml（可选）+ APP_ 前缀环境变量覆盖
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=postgres port=5432 sslmode=disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("risk.expire_seconds", 600)
	v.SetDefault("risk.limit_count", 100)
	v.SetDefault("batch.size", 1000)
	v.SetDefault("batch.async_audit", false)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.queue_size", 10000)
	v.SetDefault("visitors.max", 10)
	v.SetDefault("log.level", "info")
}
