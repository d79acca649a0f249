// Package config loads the service configuration from the environment,
// optionally layered over a YAML file named by CONFIG_FILE.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AgentTarik/gosat-api/internal/gateway"

	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string
	AppEnv     string
	AppVersion string
	LogLevel   string

	Partners PartnersConfig
	Auth     AuthConfig
	Database DatabaseConfig
	CPF      CPFConfig
	Rate     RateConfig
	Kafka    KafkaConfig
}

type PartnersConfig struct {
	// Destinations holds only the targets whose key is set.
	Destinations      map[gateway.Target]string
	AllowUnregistered bool
	Timeout           time.Duration
	// Strict makes a missing destination a startup error.
	Strict bool
}

type AuthConfig struct {
	BearerToken     string
	BearerTokenHash string
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	JWTAccessTTL    time.Duration
}

type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

type CPFConfig struct {
	AllowTestValues bool
}

type RateConfig struct {
	Enabled        bool
	RPS            float64
	Burst          int
	KeyHeader      string
	TrustXFF       bool
	RetryAfter     time.Duration
	StatsRedisAddr string
	StatsRedisPass string
	StatsRedisDB   int
	StatsPrefix    string
	StatsTTL       time.Duration
}

type KafkaConfig struct {
	Brokers   []string
	Topic     string
	QueueSize int
}

// Enabled reports whether events should be published to kafka.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LISTEN_ADDR", ":7001")
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("APP_VERSION", "1.0.0")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("ALLOW_NOT_REGISTERED_REQUESTS", false)
	v.SetDefault("OUTBOUND_TIMEOUT", gateway.DefaultTimeout)
	v.SetDefault("STRICT_DESTINATIONS", false)

	v.SetDefault("JWT_ISS", "gosat-api")
	v.SetDefault("JWT_ACCESS_TTL", 15*time.Minute)

	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("CPF_ALLOW_TEST_VALUES", true)

	v.SetDefault("RATE_ENABLED", true)
	v.SetDefault("RATE_RPS", 10.0)
	v.SetDefault("RATE_BURST", 20)
	v.SetDefault("TRUST_XFF", false)
	v.SetDefault("RETRY_AFTER", time.Second)
	v.SetDefault("RATE_STATS_REDIS_DB", 0)
	v.SetDefault("RATE_STATS_PREFIX", "ratelimit:stats")
	v.SetDefault("RATE_STATS_TTL", 24*time.Hour)

	v.SetDefault("KAFKA_TOPIC_LOAN_REQUESTS", "loan-requests")
	v.SetDefault("EVENTS_QUEUE_SIZE", 100)
}

// Load reads the configuration. Environment variables win over CONFIG_FILE
// entries, which win over defaults.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) Config {
	dest := make(map[gateway.Target]string)
	for _, t := range gateway.Targets() {
		if v.IsSet(t.ConfigKey()) {
			dest[t] = v.GetString(t.ConfigKey())
		}
	}

	return Config{
		ListenAddr: v.GetString("LISTEN_ADDR"),
		AppEnv:     v.GetString("APP_ENV"),
		AppVersion: v.GetString("APP_VERSION"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		Partners: PartnersConfig{
			Destinations:      dest,
			AllowUnregistered: v.GetBool("ALLOW_NOT_REGISTERED_REQUESTS"),
			Timeout:           v.GetDuration("OUTBOUND_TIMEOUT"),
			Strict:            v.GetBool("STRICT_DESTINATIONS"),
		},
		Auth: AuthConfig{
			BearerToken:     v.GetString("API_BEARER_TOKEN"),
			BearerTokenHash: v.GetString("API_BEARER_TOKEN_HASH"),
			JWTSecret:       v.GetString("JWT_SECRET"),
			JWTIssuer:       v.GetString("JWT_ISS"),
			JWTAudience:     v.GetString("JWT_AUD"),
			JWTAccessTTL:    v.GetDuration("JWT_ACCESS_TTL"),
		},
		Database: DatabaseConfig{
			URL:         v.GetString("DATABASE_URL"),
			AutoMigrate: v.GetBool("DB_AUTO_MIGRATE"),
		},
		CPF: CPFConfig{
			AllowTestValues: v.GetBool("CPF_ALLOW_TEST_VALUES"),
		},
		Rate: RateConfig{
			Enabled:        v.GetBool("RATE_ENABLED"),
			RPS:            v.GetFloat64("RATE_RPS"),
			Burst:          v.GetInt("RATE_BURST"),
			KeyHeader:      v.GetString("RATE_KEY_HEADER"),
			TrustXFF:       v.GetBool("TRUST_XFF"),
			RetryAfter:     v.GetDuration("RETRY_AFTER"),
			StatsRedisAddr: v.GetString("RATE_STATS_REDIS_ADDR"),
			StatsRedisPass: v.GetString("RATE_STATS_REDIS_PASSWORD"),
			StatsRedisDB:   v.GetInt("RATE_STATS_REDIS_DB"),
			StatsPrefix:    v.GetString("RATE_STATS_PREFIX"),
			StatsTTL:       v.GetDuration("RATE_STATS_TTL"),
		},
		Kafka: KafkaConfig{
			Brokers:   splitList(v.GetString("KAFKA_BROKERS")),
			Topic:     v.GetString("KAFKA_TOPIC_LOAN_REQUESTS"),
			QueueSize: v.GetInt("EVENTS_QUEUE_SIZE"),
		},
	}
}

// Validate fails fast on values the service cannot run with.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.ListenAddr) == "" {
		errs = append(errs, errors.New("LISTEN_ADDR is required"))
	}
	if c.Partners.Timeout <= 0 {
		errs = append(errs, errors.New("OUTBOUND_TIMEOUT must be > 0"))
	}
	if c.Partners.Strict {
		for _, t := range c.MissingDestinations() {
			errs = append(errs, fmt.Errorf("%s is required when STRICT_DESTINATIONS=true", t.ConfigKey()))
		}
	}
	if c.Rate.Enabled {
		if c.Rate.RPS <= 0 {
			errs = append(errs, errors.New("RATE_RPS must be > 0"))
		}
		if c.Rate.Burst <= 0 {
			errs = append(errs, errors.New("RATE_BURST must be > 0"))
		}
	}
	if c.Auth.JWTSecret != "" && c.Auth.JWTAccessTTL <= 0 {
		errs = append(errs, errors.New("JWT_ACCESS_TTL must be > 0"))
	}
	if c.Kafka.QueueSize <= 0 {
		errs = append(errs, errors.New("EVENTS_QUEUE_SIZE must be > 0"))
	}
	return errors.Join(errs...)
}

// MissingDestinations lists the targets without a usable address.
func (c Config) MissingDestinations() []gateway.Target {
	var out []gateway.Target
	for _, t := range gateway.Targets() {
		if strings.TrimSpace(c.Partners.Destinations[t]) == "" {
			out = append(out, t)
		}
	}
	return out
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
