// Package config loads server configuration with environment overrides.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type AuthConfig struct {
	AdminUser     string        `mapstructure:"admin_user"`
	AdminPassword string        `mapstructure:"admin_password"`
	JWTSecret     string        `mapstructure:"jwt_secret"`
	TokenDuration time.Duration `mapstructure:"token_duration"`
}

type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// Load builds the configuration from defaults and environment variables.
// ADMIN_USER and ADMIN_PASSWORD keep their historical names; everything
// else is prefixed with LODGE_.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 1717)
	v.SetDefault("auth.jwt_secret", "lodge-cms-secret-key-change-in-production")
	v.SetDefault("auth.token_duration", 24*time.Hour)
	v.SetDefault("storage.data_dir", ".")

	v.BindEnv("auth.admin_user", "ADMIN_USER")
	v.BindEnv("auth.admin_password", "ADMIN_PASSWORD")
	v.BindEnv("auth.jwt_secret", "LODGE_JWT_SECRET")
	v.BindEnv("server.port", "LODGE_PORT")
	v.BindEnv("storage.data_dir", "LODGE_DATA_DIR")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
