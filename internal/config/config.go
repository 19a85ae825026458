package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret            string
		LoginTokenTTLMinutes int
		BcryptCost           int
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Scraper struct {
		TimeoutSeconds int
	}
	Log struct {
		Level string
	}
	Metrics struct {
		Enabled bool
	}
}

// Load reads configuration from environment variables and optional config files.
// Variables from a local .env file are applied first without overriding the
// process environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env") // optional file

	v := viper.New()
	v.SetEnvPrefix("SUPCON")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/supercontrol.db")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.logintokenttlminutes", 20)
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "receipts")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("scraper.timeoutseconds", 10)
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)

	if err := v.BindEnv("auth.jwtsecret", "SUPCON_AUTH_JWTSECRET", "TOKEN_SIGNING_SECRET"); err != nil {
		return Config{}, fmt.Errorf("bind jwt secret env: %w", err)
	}

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth jwt secret is required (TOKEN_SIGNING_SECRET)")
	}
	if c.Auth.LoginTokenTTLMinutes <= 0 {
		return fmt.Errorf("auth login token ttl must be positive, got %d", c.Auth.LoginTokenTTLMinutes)
	}
	return nil
}

// LoginTokenTTL is the lifetime of tokens issued by the login endpoint.
func (c Config) LoginTokenTTL() time.Duration {
	return time.Duration(c.Auth.LoginTokenTTLMinutes) * time.Minute
}

// ScraperTimeout bounds receipt page downloads.
func (c Config) ScraperTimeout() time.Duration {
	if c.Scraper.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Scraper.TimeoutSeconds) * time.Second
}
