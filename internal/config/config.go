package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string
	Port        int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// rate limits, requests per minute per IP
	LoginRateLimitAllowedPerMin         int `toml:"login_rate_limit_allowed_per_min"`
	SignupRateLimitAllowedPerMin        int `toml:"signup_rate_limit_allowed_per_min"`
	PasswordResetRateLimitAllowedPerMin int `toml:"password_reset_rate_limit_allowed_per_min"`
	// workouts
	CommonPlansPath     string `toml:"common_plans_path"`
	MaxCustomPlans      int    `toml:"max_custom_plans"`
	PlanCacheTTLSeconds int    `toml:"plan_cache_ttl_seconds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}

	if cfg == nil {
		return nil, fmt.Errorf("config section for env [%s] missing", env)
	}

	return cfg, nil
}

// Load reads the TOML file at path and returns the section for env, with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return t.Parse(env)
}

// Parse is Load for an already decoded file.
func (t *Toml) Parse(env string) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.LoginRateLimitAllowedPerMin <= 0 {
		c.LoginRateLimitAllowedPerMin = 10
	}
	if c.SignupRateLimitAllowedPerMin <= 0 {
		c.SignupRateLimitAllowedPerMin = 5
	}
	if c.PasswordResetRateLimitAllowedPerMin <= 0 {
		c.PasswordResetRateLimitAllowedPerMin = 3
	}
	if c.MaxCustomPlans <= 0 {
		c.MaxCustomPlans = 5
	}
	if c.PlanCacheTTLSeconds <= 0 {
		c.PlanCacheTTLSeconds = 300
	}
}
