package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	S3        S3Config
	Storage   StorageConfig
	Pipeline  PipelineConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
	Environment     string        `envconfig:"ENVIRONMENT" default:"development"`
}

type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"5432"`
	User            string        `envconfig:"DB_USER" required:"true"`
	Password        string        `envconfig:"DB_PASSWORD" required:"true"`
	Name            string        `envconfig:"DB_NAME" required:"true"`
	SSLMode         string        `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type S3Config struct {
	Endpoint        string `envconfig:"S3_ENDPOINT"`
	Region          string `envconfig:"S3_REGION" default:"us-east-1"`
	Bucket          string `envconfig:"S3_BUCKET" default:"pixelvault"`
	AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID" default:""`
	SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY" default:""`
	UsePathStyle    bool   `envconfig:"S3_USE_PATH_STYLE" default:"false"`
}

// StorageConfig selects the blob backend: "s3" in deployments, "memory"
// for local development.
type StorageConfig struct {
	Backend string `envconfig:"STORAGE_BACKEND" default:"s3"`
}

type PipelineConfig struct {
	Workers   int `envconfig:"PIPELINE_WORKERS" default:"0"`
	QueueSize int `envconfig:"PIPELINE_QUEUE_SIZE" default:"64"`
}

// RateLimitConfig bounds fresh transformation executions per user and
// resource. Backend "redis" shares the window across replicas; "memory"
// keeps it process-local.
type RateLimitConfig struct {
	Backend     string        `envconfig:"RATE_LIMIT_BACKEND" default:"memory"`
	Window      time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"60s"`
	MaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"20"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return &cfg, nil
}
