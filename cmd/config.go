package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/domain/model/warehouse"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/orchestrator"
	"dispatch/internal/pkg/errs"
)

const (
	DefaultHTTPPort     = "8080"
	DefaultRegion       = "HCM"
	DefaultOutcomeTopic = "dispatch.outcomes"
	DefaultLogLevel     = "info"
)

type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// WarehouseNodes is the node table, "ID=URL" pairs separated by commas.
	WarehouseNodes     string
	DefaultRegion      string
	HealthProbeTimeout time.Duration
	SubmitTimeout      time.Duration
	RetryMaxAttempts   int
	RetryDelay         time.Duration

	// KafkaHost lists brokers separated by commas. Empty disables outcome events.
	KafkaHost                 string
	KafkaDispatchOutcomeTopic string

	// SelfTestSchedule is a cron schedule. Empty disables the self-test job.
	SelfTestSchedule string

	APIUsername string
	APIPassword string

	LogLevel string
}

// LoadConfig reads the configuration through getenv. Unset values fall back
// to defaults; malformed numbers and durations are reported together.
func LoadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		HTTPPort:                  valueOr(getenv("HTTP_PORT"), DefaultHTTPPort),
		DBHost:                    getenv("DB_HOST"),
		DBPort:                    getenv("DB_PORT"),
		DBUser:                    getenv("DB_USER"),
		DBPassword:                getenv("DB_PASSWORD"),
		DBName:                    getenv("DB_NAME"),
		DBSslMode:                 getenv("DB_SSLMODE"),
		WarehouseNodes:            valueOr(getenv("WAREHOUSE_NODES"), warehouse.DefaultRegistrySpec),
		DefaultRegion:             valueOr(getenv("DEFAULT_REGION"), DefaultRegion),
		KafkaHost:                 getenv("KAFKA_HOST"),
		KafkaDispatchOutcomeTopic: valueOr(getenv("KAFKA_DISPATCH_OUTCOME_TOPIC"), DefaultOutcomeTopic),
		SelfTestSchedule:          getenv("SELF_TEST_SCHEDULE"),
		APIUsername:               getenv("API_USERNAME"),
		APIPassword:               getenv("API_PASSWORD"),
		LogLevel:                  valueOr(getenv("LOG_LEVEL"), DefaultLogLevel),
	}

	if err := errors.Join(
		parseDuration(getenv, "HEALTH_PROBE_TIMEOUT", services.DefaultHealthProbeTimeout, &cfg.HealthProbeTimeout),
		parseDuration(getenv, "SUBMIT_TIMEOUT", services.DefaultSubmitTimeout, &cfg.SubmitTimeout),
		parseDuration(getenv, "RETRY_DELAY", orchestrator.DefaultRetryDelay, &cfg.RetryDelay),
		parseInt(getenv, "RETRY_MAX_ATTEMPTS", orchestrator.DefaultMaxAttempts, &cfg.RetryMaxAttempts),
	); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Database() postgres.Config {
	return postgres.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSslMode,
	}
}

func (c Config) RetryPolicy() orchestrator.RetryPolicy {
	return orchestrator.RetryPolicy{
		MaxAttempts: c.RetryMaxAttempts,
		Delay:       c.RetryDelay,
	}
}

// KafkaBrokers splits KafkaHost, nil when no broker is configured.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return strings.TrimSpace(value)
}

func parseDuration(getenv func(string) string, key string, fallback time.Duration, dst *time.Duration) error {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		*dst = fallback
		return nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a positive duration", raw))
	}

	*dst = d
	return nil
}

func parseInt(getenv func(string) string, key string, fallback int, dst *int) error {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		*dst = fallback
		return nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return errs.NewValueIsInvalidErrorWithCause(key, fmt.Errorf("%q is not a positive integer", raw))
	}

	*dst = n
	return nil
}
