package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	Database struct {
		URL          string `mapstructure:"url"`
		MaxOpenConns int    `mapstructure:"max_open_conns"`
	} `mapstructure:"database"`
	JWT struct {
		Secret   string `mapstructure:"secret"`
		TTLHours int    `mapstructure:"ttl_hours"`
	} `mapstructure:"jwt"`
	RateLimit struct {
		Max                int `mapstructure:"max"`
		WindowSeconds      int `mapstructure:"window_seconds"`
		LoginMax           int `mapstructure:"login_max"`
		LoginWindowSeconds int `mapstructure:"login_window_seconds"`
	} `mapstructure:"rate_limit"`
	Cache struct {
		ProductTTLSeconds int `mapstructure:"product_ttl_seconds"`
	} `mapstructure:"cache"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
		Topic   string   `mapstructure:"topic"`
	} `mapstructure:"kafka"`
}

// Load reads configuration from config.yml, falling back to defaults.
// Every key can be overridden through the environment with a FULLMART_
// prefix, e.g. FULLMART_DATABASE_URL, FULLMART_JWT_SECRET.
func Load() (*Config, error) {
	viper.AddConfigPath("./config")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("database.url", "")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("jwt.secret", "")
	viper.SetDefault("jwt.ttl_hours", 72)
	viper.SetDefault("rate_limit.max", 100)
	viper.SetDefault("rate_limit.window_seconds", 60)
	viper.SetDefault("rate_limit.login_max", 5)
	viper.SetDefault("rate_limit.login_window_seconds", 900)
	viper.SetDefault("cache.product_ttl_seconds", 60)
	viper.SetDefault("kafka.brokers", []string{})
	viper.SetDefault("kafka.topic", "fullmart.orders")

	viper.SetEnvPrefix("FULLMART")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// the deployment environment traditionally sets these two without prefix
	_ = viper.BindEnv("database.url", "FULLMART_DATABASE_URL", "DATABASE_URL")
	_ = viper.BindEnv("jwt.secret", "FULLMART_JWT_SECRET", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// no config file is fine, defaults plus env cover everything
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Database.URL == "" {
		return nil, fmt.Errorf("database url is not set")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is not set")
	}

	return &cfg, nil
}
