package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/ninepay-go/ninepay/internal/shared/config"
)

type Config struct {
	NinePay sharedConfig.NinePayConfig `mapstructure:"ninepay"`
	Logger  sharedConfig.LoggerConfig  `mapstructure:"logger"`
	HTTP    sharedConfig.HTTPConfig    `mapstructure:"http"`
	Redis   sharedConfig.RedisConfig   `mapstructure:"redis"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// envBindings maps config keys to the environment names merchants already use.
var envBindings = map[string]string{
	"ninepay.merchant_id":  "NINEPAY_MERCHANT_ID",
	"ninepay.secret_key":   "NINEPAY_SECRET_KEY",
	"ninepay.checksum_key": "NINEPAY_CHECKSUM_KEY",
	"ninepay.env":          "NINEPAY_ENV",
	"ninepay.base_url":     "NINEPAY_BASE_URL",
}

// Load loads configuration from an optional file and environment variables.
// An empty path searches ./configs for config.yaml; a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NINEPAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ninepay.merchant_id", "")
	v.SetDefault("ninepay.secret_key", "")
	v.SetDefault("ninepay.checksum_key", "")
	v.SetDefault("ninepay.env", "SANDBOX")
	v.SetDefault("ninepay.base_url", "")

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	v.SetDefault("http.timeout_seconds", 15)

	// Redis defaults
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.replay_ttl_seconds", 86400)
}
