package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName           string
	AppEnv            string
	AppPort           string
	DatabaseURL       string
	RedisURL          string
	NATSURL           string
	JWTSecret         string
	GithubToken       string
	PortfolioTimezone string
	InfoCacheTTL      time.Duration
	MemberCacheTTL    time.Duration
	SubmissionSubject string
	ShoutoutsEnabled  bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("ORGHUB")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "OrgHub API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("portfolio.timezone", "America/New_York")
	v.SetDefault("info.cache_ttl", "5m")
	v.SetDefault("member.cache_ttl", "10m")
	v.SetDefault("submission.subject", "orghub.submissions")
	v.SetDefault("shoutouts.enabled", true)

	infoTTL, err := time.ParseDuration(v.GetString("info.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid portfolio info cache ttl: %w", err)
	}

	memberTTL, err := time.ParseDuration(v.GetString("member.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid member cache ttl: %w", err)
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		DatabaseURL:       v.GetString("database.url"),
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		JWTSecret:         v.GetString("jwt.secret"),
		GithubToken:       v.GetString("github.token"),
		PortfolioTimezone: v.GetString("portfolio.timezone"),
		InfoCacheTTL:      infoTTL,
		MemberCacheTTL:    memberTTL,
		SubmissionSubject: v.GetString("submission.subject"),
		ShoutoutsEnabled:  v.GetBool("shoutouts.enabled"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if _, err := time.LoadLocation(cfg.PortfolioTimezone); err != nil {
		return Config{}, fmt.Errorf("invalid portfolio timezone %q: %w", cfg.PortfolioTimezone, err)
	}

	return cfg, nil
}
