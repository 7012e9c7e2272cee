package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Registry   RegistryConfig   `yaml:"registry"`
	Push       PushConfig       `yaml:"push"`
	Watcher    WatcherConfig    `yaml:"watcher"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// MongoConfig holds the document store connection configuration.
type MongoConfig struct {
	URI                    string        `yaml:"uri"`
	Database               string        `yaml:"database"`
	LockersCollection      string        `yaml:"lockers_collection"`
	ReservationsCollection string        `yaml:"reservations_collection"`
	ConnectTimeoutSeconds  int           `yaml:"connect_timeout_seconds"`
	ConnectTimeout         time.Duration `yaml:"-"` // Ignored by YAML parser
}

// RegistryConfig holds the push-subscription registry database configuration.
type RegistryConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// WatcherConfig holds the change-stream watcher configuration.
type WatcherConfig struct {
	Enabled bool `yaml:"enabled"`
	// AlertStatuses lists the door statuses that trigger operator
	// notifications when a locker transitions into them.
	AlertStatuses []string `yaml:"alert_statuses"`
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 5
	}

	if cfg.Mongo.Database == "" {
		cfg.Mongo.Database = "lockers"
	}
	if cfg.Mongo.LockersCollection == "" {
		cfg.Mongo.LockersCollection = "lockers"
	}
	if cfg.Mongo.ReservationsCollection == "" {
		cfg.Mongo.ReservationsCollection = "reservations"
	}
	if cfg.Mongo.ConnectTimeoutSeconds <= 0 {
		cfg.Mongo.ConnectTimeoutSeconds = 10
	}
	cfg.Mongo.ConnectTimeout = time.Duration(cfg.Mongo.ConnectTimeoutSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if len(cfg.Watcher.AlertStatuses) == 0 {
		cfg.Watcher.AlertStatuses = []string{"malfunction", "offline"}
	}

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}
