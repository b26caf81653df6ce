package config

import (
	"fmt"
	"time"
)

type NinePayConfig struct {
	MerchantID  string `mapstructure:"merchant_id"`
	SecretKey   string `mapstructure:"secret_key"`
	ChecksumKey string `mapstructure:"checksum_key"`
	Environment string `mapstructure:"env"`
	BaseURL     string `mapstructure:"base_url"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type HTTPConfig struct {
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// GetTimeout returns the transport timeout, falling back to 15 seconds.
func (h *HTTPConfig) GetTimeout() time.Duration {
	if h.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(h.TimeoutSeconds) * time.Second
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// ReplayTTLSeconds bounds how long a processed notification is remembered.
	ReplayTTLSeconds int `mapstructure:"replay_ttl_seconds"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

func (r *RedisConfig) GetReplayTTL() time.Duration {
	if r.ReplayTTLSeconds <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(r.ReplayTTLSeconds) * time.Second
}
