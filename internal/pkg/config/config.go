package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlekSi/pointer"
	"retrier/internal/entities"
	"retrier/pkg/retrier"
)

type (
	Probes struct {
		Targets      []entities.Target
		Interval     time.Duration
		RunRateLimit int // on-demand запусков в секунду на одну цель
	}

	HTTPServer struct {
		Port             string
		RequestTimeout   time.Duration // middleware timeout, кроме запуска проверки
		RateLimiterQPS   int           // пополнение бакета клиента, запросов в секунду
		RateLimiterBurst int           // ёмкость бакета клиента
		PprofEnabled     bool
		PprofPort        string
	}

	Database struct {
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}

	Kafka struct {
		Brokers string
		Topic   string
		Sarama  Sarama
	}

	Sarama struct {
		Version string
	}

	Config struct {
		LogLevel string
		Probes   Probes
		Retry    retrier.Params
		Server   HTTPServer
		Database Database
		Kafka    Kafka
	}
)

// Enabled сообщает, настроена ли публикация событий в Kafka.
func (k Kafka) Enabled() bool {
	return k.Brokers != ""
}

// BrokerList возвращает адреса брокеров из KAFKA_BROKERS.
func (k Kafka) BrokerList() []string {
	return splitList(k.Brokers, ",")
}

func Load() (*Config, error) {
	cfg, err := loadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("environment loading: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validation: %w", err)
	}
	return cfg, nil
}

func loadFromEnv() (*Config, error) {
	targets, err := ParseTargets(os.Getenv("PROBE_TARGETS"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	probeInterval, err := osGetEnvDuration("PROBE_INTERVAL")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	runRateLimit, err := osGetInt("PROBE_RUN_RATE_LIMIT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	maxRetries, err := osLookupInt("RETRY_MAX_RETRIES")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	backoffBase, err := osLookupDuration("RETRY_BACKOFF_BASE")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	requestTimeout, err := osGetEnvDuration("MIDDLEWARE_REQUEST_TIMEOUT")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterQPS, err := osGetInt("MIDDLEWARE_RATE_LIMIT_QPS")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	rateLimiterBurst, err := osGetInt("MIDDLEWARE_RATE_LIMIT_BURST")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	pprofEnabled, err := osGetBool("PPROF_ENABLED")
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		LogLevel: logLevel,
		Probes: Probes{
			Targets:      targets,
			Interval:     probeInterval,
			RunRateLimit: runRateLimit,
		},
		Retry: retrier.Params{
			MaxRetries:  maxRetries,
			BackoffBase: backoffBase,
		},
		Server: HTTPServer{
			Port:             os.Getenv("PORT"),
			RequestTimeout:   requestTimeout,
			RateLimiterQPS:   rateLimiterQPS,
			RateLimiterBurst: rateLimiterBurst,
			PprofEnabled:     pprofEnabled,
			PprofPort:        os.Getenv("PPROF_PORT"),
		},
		Database: Database{
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     os.Getenv("POSTGRES_PORT"),
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
		},
		Kafka: Kafka{
			Brokers: os.Getenv("KAFKA_BROKERS"),
			Topic:   os.Getenv("KAFKA_TOPIC"),
			Sarama: Sarama{
				Version: os.Getenv("KAFKA_SARAMA_VERSION"),
			},
		},
	}, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server port is required (set via PORT env variable)")
	}
	if cfg.Server.RequestTimeout == time.Duration(0) {
		return errors.New("MIDDLEWARE_REQUEST_TIMEOUT is required")
	}
	if cfg.Server.RateLimiterQPS == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_QPS is required")
	}
	if cfg.Server.RateLimiterBurst == 0 {
		return errors.New("MIDDLEWARE_RATE_LIMIT_BURST is required")
	}
	if cfg.Server.PprofPort == "" && cfg.Server.PprofEnabled {
		return errors.New("PprofPort is required (set via PPROF_PORT env variable)")
	}

	if cfg.Database.Host == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if cfg.Database.Port == "" {
		return errors.New("POSTGRES_PORT is required")
	}
	if cfg.Database.User == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if cfg.Database.Password == "" {
		return errors.New("POSTGRES_PASSWORD is required")
	}
	if cfg.Database.DBName == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if cfg.Database.SSLMode == "" {
		return errors.New("POSTGRES_SSLMODE is required")
	}

	if len(cfg.Probes.Targets) == 0 {
		return errors.New("PROBE_TARGETS is required")
	}
	if cfg.Probes.Interval <= time.Duration(0) {
		return errors.New("PROBE_INTERVAL is required")
	}
	if cfg.Probes.RunRateLimit <= 0 {
		return errors.New("PROBE_RUN_RATE_LIMIT is required")
	}

	if _, err := retrier.NewConfig(cfg.Retry); err != nil {
		return fmt.Errorf("RETRY_MAX_RETRIES/RETRY_BACKOFF_BASE: %w", err)
	}

	if cfg.Kafka.Enabled() {
		if cfg.Kafka.Topic == "" {
			return errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
		}
		if cfg.Kafka.Sarama.Version == "" {
			return errors.New("KAFKA_SARAMA_VERSION is required when KAFKA_BROKERS is set")
		}
	}

	return nil
}

// ParseTargets разбирает PROBE_TARGETS: "name=kind://address,..."
//
// Для http(s) адресом остаётся весь URL, для postgres - весь DSN.
// Для grpc и kafka адрес - часть после "kind://", брокеры kafka перечисляются через ";".
func ParseTargets(raw string) ([]entities.Target, error) {
	items := splitList(raw, ",")
	targets := make([]entities.Target, 0, len(items))
	seen := make(map[string]struct{}, len(items))

	for _, item := range items {
		name, uri, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		uri = strings.TrimSpace(uri)
		if !ok || name == "" || uri == "" {
			return nil, fmt.Errorf("invalid probe target %q: expected name=kind://address", item)
		}

		scheme, rest, ok := strings.Cut(uri, "://")
		if !ok || rest == "" {
			return nil, fmt.Errorf("invalid probe target %q: expected name=kind://address", item)
		}

		target := entities.Target{Name: name}
		switch scheme {
		case "http", "https":
			target.Kind = entities.ProbeHTTP
			target.Address = uri
		case "postgres", "postgresql":
			target.Kind = entities.ProbePostgres
			target.Address = uri
		case "grpc":
			target.Kind = entities.ProbeGRPC
			target.Address = rest
		case "kafka":
			target.Kind = entities.ProbeKafka
			target.Address = rest
		default:
			return nil, fmt.Errorf("invalid probe target %q: unknown kind %q", item, scheme)
		}

		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate probe target name %q", name)
		}
		seen[name] = struct{}{}

		targets = append(targets, target)
	}

	return targets, nil
}

func splitList(raw, sep string) []string {
	var res []string
	for _, part := range strings.Split(raw, sep) {
		part = strings.TrimSpace(part)
		if part != "" {
			res = append(res, part)
		}
	}
	return res
}

func osGetInt(s string) (int, error) {
	val := os.Getenv(s)
	if val == "" {
		return 0, nil
	}

	res, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid int format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetEnvDuration(s string) (time.Duration, error) {
	val := os.Getenv(s)
	if val == "" {
		return time.Duration(0), nil
	}

	res, err := time.ParseDuration(val)
	if err != nil {
		return time.Duration(0), fmt.Errorf("invalid duration format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

func osGetBool(s string) (bool, error) {
	val := os.Getenv(s)
	if val == "" {
		return false, nil
	}

	res, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid bool format for %s=%q: %w", s, val, err)
	}
	return res, nil
}

// osLookupInt возвращает nil, если переменная не задана: тогда берётся значение по умолчанию.
func osLookupInt(s string) (*int, error) {
	if os.Getenv(s) == "" {
		return nil, nil
	}
	res, err := osGetInt(s)
	if err != nil {
		return nil, err
	}
	return pointer.To(res), nil
}

func osLookupDuration(s string) (*time.Duration, error) {
	if os.Getenv(s) == "" {
		return nil, nil
	}
	res, err := osGetEnvDuration(s)
	if err != nil {
		return nil, err
	}
	return pointer.To(res), nil
}
