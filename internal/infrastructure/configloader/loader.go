package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// DatabaseConfig holds database-specific configurations. With UseMemory set
// the service runs on in-memory stores and the DSN is ignored.
type DatabaseConfig struct {
	DSN       string `yaml:"dsn"`
	UseMemory bool   `yaml:"useMemory"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// CoinGeckoConfig holds price-oracle specific configurations.
type CoinGeckoConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	VsCurrency           string `yaml:"vsCurrency"`
	PriceTTLSeconds      int    `yaml:"priceTTLSeconds"`
	RequestsPerMinute    int    `yaml:"requestsPerMinute"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// BlockaidConfig holds malicious-token scanner specific configurations.
type BlockaidConfig struct {
	BaseURL              string `yaml:"baseURL"`
	APIKey               string `yaml:"apiKey"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes      int    `yaml:"cacheTTLMinutes"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines    int `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds    int `yaml:"rpc_call_timeout_seconds"`
	RPCConnectTimeoutSeconds int `yaml:"rpc_connect_timeout_seconds"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	CoinGecko   CoinGeckoConfig   `yaml:"coingecko"`
	Blockaid    BlockaidConfig    `yaml:"blockaid"`
	Performance PerformanceConfig `yaml:"performance"`
}

// Load reads the YAML configuration file from the given path and unmarshals
// it, filling unset fields with defaults.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.CoinGecko.BaseURL == "" {
		cfg.CoinGecko.BaseURL = "https://api.coingecko.com/api/v3"
		logrus.Infof("CoinGecko.BaseURL not set, defaulting to %s", cfg.CoinGecko.BaseURL)
	}
	if cfg.CoinGecko.VsCurrency == "" {
		cfg.CoinGecko.VsCurrency = "usd"
	}
	if cfg.CoinGecko.PriceTTLSeconds <= 0 {
		cfg.CoinGecko.PriceTTLSeconds = 60
		logrus.Infof("CoinGecko.PriceTTLSeconds not set, defaulting to %d", cfg.CoinGecko.PriceTTLSeconds)
	}
	if cfg.CoinGecko.RequestsPerMinute <= 0 {
		cfg.CoinGecko.RequestsPerMinute = 30
	}
	if cfg.CoinGecko.RequestTimeoutMillis <= 0 {
		cfg.CoinGecko.RequestTimeoutMillis = 10000
	}
	// No default for APIKey, it should be set by the user if required by the API (Pro)

	if cfg.Blockaid.BaseURL == "" {
		cfg.Blockaid.BaseURL = "https://api.blockaid.io"
		logrus.Infof("Blockaid.BaseURL not set, defaulting to %s", cfg.Blockaid.BaseURL)
	}
	if cfg.Blockaid.RequestTimeoutMillis <= 0 {
		cfg.Blockaid.RequestTimeoutMillis = 10000
	}
	if cfg.Blockaid.CacheTTLMinutes <= 0 {
		cfg.Blockaid.CacheTTLMinutes = 10
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.RPCConnectTimeoutSeconds <= 0 {
		cfg.Performance.RPCConnectTimeoutSeconds = 5
	}

	return &cfg, nil
}
