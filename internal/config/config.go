package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort  string `mapstructure:"SERVER_PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	PostgresURL string `mapstructure:"POSTGRES_URL"`
	RedisAddr   string `mapstructure:"REDIS_ADDR"`

	FetchTimeout    int  `mapstructure:"FETCH_TIMEOUT"` // seconds, per attempt
	BrowserFallback bool `mapstructure:"BROWSER_FALLBACK"`

	SMTPHost   string `mapstructure:"SMTP_HOST"`
	SMTPPort   int    `mapstructure:"SMTP_PORT"`
	SMTPSecure bool   `mapstructure:"SMTP_SECURE"`
	SMTPUser   string `mapstructure:"SMTP_USER"`
	SMTPPass   string `mapstructure:"SMTP_PASS"`
	SMTPFrom   string `mapstructure:"SMTP_FROM"`
}

// configKeys is every key Load recognizes. Unmarshal only sees keys viper
// already knows about, so each one must be bound explicitly for
// environment-only configuration to work without a .env file.
var configKeys = []string{
	"SERVER_PORT", "LOG_LEVEL", "POSTGRES_URL", "REDIS_ADDR",
	"FETCH_TIMEOUT", "BROWSER_FALLBACK",
	"SMTP_HOST", "SMTP_PORT", "SMTP_SECURE", "SMTP_USER", "SMTP_PASS", "SMTP_FROM",
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables.
	_ = viper.ReadInConfig()

	for _, key := range configKeys {
		_ = viper.BindEnv(key)
	}

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("FETCH_TIMEOUT", 5)
	viper.SetDefault("BROWSER_FALLBACK", false)
	viper.SetDefault("SMTP_PORT", 587)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
