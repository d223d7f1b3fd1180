// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
	Economy   EconomyConfig   `koanf:"economy"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
	ReferralURL string `koanf:"referral_url"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MigrationsPath  string        `koanf:"migrations_path"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath     string        `koanf:"private_key_path"`
	PublicKeyPath      string        `koanf:"public_key_path"`
	AccessTokenExpire  time.Duration `koanf:"access_token_expire"`
	RefreshTokenExpire time.Duration `koanf:"refresh_token_expire"`
	Issuer             string        `koanf:"issuer"`
	Audience           string        `koanf:"audience"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

// EconomyConfig holds every tunable of the ZP rewards economy. Loaded once at
// startup and injected as a value into the services, never mutated afterwards.
type EconomyConfig struct {
	DailyCheckinBonus        int64   `koanf:"daily_checkin_bonus"`
	StreakBonus              int64   `koanf:"streak_bonus"`
	StreakThreshold          int     `koanf:"streak_threshold"`
	MiningCycleHours         int     `koanf:"mining_cycle_hours"`
	InitialMiningRatePerHour int64   `koanf:"initial_mining_rate_zp_per_hour"`
	InitialMiningCapacity    int64   `koanf:"initial_mining_capacity_zp"`
	MaxReferralsPerUser      int     `koanf:"max_referrals_per_user"`
	ReferralInitialReward    int64   `koanf:"referral_initial_zp_reward"`
	ReferralDeletionCostPct  float64 `koanf:"referral_deletion_zp_cost_percentage"`
}

func (e EconomyConfig) MiningCycle() time.Duration {
	return time.Duration(e.MiningCycleHours) * time.Hour
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		k := koanf.New(".")

		if err := loadDefaults(k); err != nil {
			loadErr = fmt.Errorf("load defaults: %w", err)
			return
		}

		if configPath != "" {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				loadErr = fmt.Errorf("load config file: %w", err)
				return
			}
		}

		if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
			loadErr = fmt.Errorf("load env vars: %w", err)
			return
		}

		cfg = &Config{}
		if err := k.Unmarshal("", cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if err := validate(cfg); err != nil {
			loadErr = fmt.Errorf("validate config: %w", err)
			return
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":         "Ziver",
		"app.version":      "1.0.0",
		"app.environment":  "development",
		"app.referral_url": "https://ziver.app/refer",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.migrations_path":    "migrations",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"jwt.access_token_expire":  "15m",
		"jwt.refresh_token_expire": "168h",
		"jwt.issuer":               "ziver-backend",
		"jwt.audience":             "ziver-api",
		"jwt.private_key_path":     "keys/private.pem",
		"jwt.public_key_path":      "keys/public.pem",

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "ziver-backend",

		"economy.daily_checkin_bonus":                  50,
		"economy.streak_bonus":                         50,
		"economy.streak_threshold":                     5,
		"economy.mining_cycle_hours":                   4,
		"economy.initial_mining_rate_zp_per_hour":      10,
		"economy.initial_mining_capacity_zp":           50,
		"economy.max_referrals_per_user":               20,
		"economy.referral_initial_zp_reward":           1000,
		"economy.referral_deletion_zp_cost_percentage": 0.5,
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":             "database.url",
	"DATABASE_MIGRATIONS_PATH": "database.migrations_path",
	"REDIS_URL":                "redis.url",
	"ENVIRONMENT":              "app.environment",
	"HOST":                     "server.host",
	"PORT":                     "server.port",
	"LOG_LEVEL":                "log.level",
	"LOG_FORMAT":               "log.format",
	"REFERRAL_BASE_URL":        "app.referral_url",

	"JWT_PRIVATE_KEY_PATH":     "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":      "jwt.public_key_path",
	"JWT_ACCESS_TOKEN_EXPIRE":  "jwt.access_token_expire",
	"JWT_REFRESH_TOKEN_EXPIRE": "jwt.refresh_token_expire",
	"JWT_ISSUER":               "jwt.issuer",
	"JWT_AUDIENCE":             "jwt.audience",

	"RATE_LIMIT_REQUESTS": "rate_limit.requests",
	"RATE_LIMIT_WINDOW":   "rate_limit.window",
	"RATE_LIMIT_BURST":    "rate_limit.burst",

	"OTEL_ENDPOINT":               "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "otel.endpoint",
	"OTEL_SERVICE_NAME":           "otel.service_name",
	"OTEL_ENABLED":                "otel.enabled",
	"OTEL_INSECURE":               "otel.insecure",
	"OTEL_SAMPLE_RATE":            "otel.sample_rate",

	"ZP_DAILY_CHECKIN_BONUS":               "economy.daily_checkin_bonus",
	"ZP_STREAK_BONUS":                      "economy.streak_bonus",
	"ZP_STREAK_THRESHOLD":                  "economy.streak_threshold",
	"MINING_CYCLE_HOURS":                   "economy.mining_cycle_hours",
	"INITIAL_MINING_RATE_ZP_PER_HOUR":      "economy.initial_mining_rate_zp_per_hour",
	"INITIAL_MINING_CAPACITY_ZP":           "economy.initial_mining_capacity_zp",
	"MAX_REFERRALS_PER_USER":               "economy.max_referrals_per_user",
	"REFERRAL_INITIAL_ZP_REWARD":           "economy.referral_initial_zp_reward",
	"REFERRAL_DELETION_ZP_COST_PERCENTAGE": "economy.referral_deletion_zp_cost_percentage",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return validateEconomy(c.Economy)
}

func validateEconomy(e EconomyConfig) error {
	if e.DailyCheckinBonus < 0 || e.StreakBonus < 0 {
		return fmt.Errorf("economy bonuses must be non-negative")
	}

	if e.StreakThreshold < 1 {
		return fmt.Errorf("economy.streak_threshold must be at least 1")
	}

	if e.MiningCycleHours < 1 {
		return fmt.Errorf("economy.mining_cycle_hours must be at least 1")
	}

	if e.InitialMiningRatePerHour <= 0 || e.InitialMiningCapacity <= 0 {
		return fmt.Errorf("initial mining rate and capacity must be positive")
	}

	if e.MaxReferralsPerUser < 1 {
		return fmt.Errorf("economy.max_referrals_per_user must be at least 1")
	}

	if e.ReferralInitialReward < 0 {
		return fmt.Errorf("economy.referral_initial_zp_reward must be non-negative")
	}

	if e.ReferralDeletionCostPct < 0 || e.ReferralDeletionCostPct > 1 {
		return fmt.Errorf(
			"economy.referral_deletion_zp_cost_percentage must be in [0, 1]",
		)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
