package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	GRPC     GRPCConfig     `toml:"grpc"`
	Auth     AuthConfig     `toml:"auth"`
	Log      LogConfig      `toml:"log"`
	Kafka    KafkaConfig    `toml:"kafka"`
	Redis    RedisConfig    `toml:"redis"`
}

// DatabaseConfig contains database-related settings.
type DatabaseConfig struct {
	Driver string `toml:"driver"` // "sqlite3" (default) or "pgx"
	Path   string `toml:"path"`   // SQLite file path or Postgres DSN
}

// GRPCConfig contains gRPC server settings.
type GRPCConfig struct {
	Address string `toml:"address"` // gRPC server listen address (e.g., ":50051")
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret  string        `toml:"jwt_secret"` // JWT signing secret
	TokenTTL   time.Duration `toml:"token_ttl"`
	BcryptCost int           `toml:"bcrypt_cost"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json, logfmt
}

// KafkaConfig enables domain event publishing when Brokers is non-empty.
type KafkaConfig struct {
	Brokers     []string `toml:"brokers"`
	TopicPrefix string   `toml:"topic_prefix"`
}

// RedisConfig enables the user lookup cache when Addr is set.
type RedisConfig struct {
	Addr string        `toml:"addr"`
	DB   int           `toml:"db"`
	TTL  time.Duration `toml:"ttl"`
}

func defaults() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite3", Path: "app.db"},
		GRPC:     GRPCConfig{Address: ":50051"},
		Auth:     AuthConfig{TokenTTL: time.Hour, BcryptCost: 10},
		Log:      LogConfig{Level: "info", Format: "text"},
		Kafka:    KafkaConfig{TopicPrefix: "todo."},
		Redis:    RedisConfig{TTL: 5 * time.Minute},
	}
}

// Load loads configuration from an optional TOML file (CONFIG_FILE) and environment
// variables, env taking precedence.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile is like Load with an explicit TOML path ("" skips the file).
func LoadFile(path string) (*Config, error) {
	cfg, err := build(path)
	if err != nil {
		return nil, err
	}

	// Validate critical settings
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set; required for production")
	}

	return cfg, nil
}

// LoadWithDefaults is like Load but uses a safe default for JWT_SECRET in development.
// WARNING: Only use in development! Use Load() in production.
func LoadWithDefaults() (*Config, error) {
	return LoadFileWithDefaults(os.Getenv("CONFIG_FILE"))
}

// LoadFileWithDefaults is LoadWithDefaults with an explicit TOML path.
func LoadFileWithDefaults(path string) (*Config, error) {
	cfg, err := build(path)
	if err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = "dev-secret-change-me"
	}
	return cfg, nil
}

func build(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.Path = getEnv("DB_PATH", cfg.Database.Path)
	cfg.GRPC.Address = getEnv("GRPC_ADDRESS", cfg.GRPC.Address)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("LOG_FORMAT", cfg.Log.Format)
	cfg.Kafka.TopicPrefix = getEnv("KAFKA_TOPIC_PREFIX", cfg.Kafka.TopicPrefix)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		cfg.Kafka.Brokers = splitList(v)
	}

	var err error
	if cfg.Auth.TokenTTL, err = getEnvDuration("JWT_TTL", cfg.Auth.TokenTTL); err != nil {
		return err
	}
	if cfg.Redis.TTL, err = getEnvDuration("REDIS_TTL", cfg.Redis.TTL); err != nil {
		return err
	}
	if cfg.Auth.BcryptCost, err = getEnvInt("BCRYPT_COST", cfg.Auth.BcryptCost); err != nil {
		return err
	}
	if cfg.Redis.DB, err = getEnvInt("REDIS_DB", cfg.Redis.DB); err != nil {
		return err
	}
	return nil
}

// getEnv retrieves an environment variable with a default fallback.
func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

// getEnvInt retrieves an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultVal int) (int, error) {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid integer for %s: %w", key, err)
		}
		return intVal, nil
	}
	return defaultVal, nil
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
		}
		return d, nil
	}
	return defaultVal, nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{DB: %s (%s), gRPC: %s, Kafka: %v, Redis: %q, Auth: *** (masked) ***}",
		c.Database.Path, c.Database.Driver, c.GRPC.Address, c.Kafka.Brokers, c.Redis.Addr)
}
