package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/fpl-insights/internal/domain/analytics"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv             string
	ServiceName        string
	ServiceVersion     string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	ShutdownTimeout    time.Duration
	LogLevel           logging.Level
	CORSAllowedOrigins []string
	PprofEnabled       bool
	PprofAddr          string

	StorageDriver           string
	DBURL                   string
	DBDisablePreparedBinary bool

	CacheEnabled    bool
	CacheTTL        time.Duration
	RedisEnabled    bool
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisPrefix     string
	PayloadCacheTTL time.Duration

	FPLAPIBaseURL               string
	FPLAPIUserAgent             string
	FPLAPITimeout               time.Duration
	FPLAPIMaxRetries            int
	FPLAPIRetryBackoff          time.Duration
	FPLAPICircuitEnabled        bool
	FPLAPICircuitFailureCount   int
	FPLAPICircuitOpenTimeout    time.Duration
	FPLAPICircuitHalfOpenMaxReq int

	SyncCron         string
	SyncOnStartup    bool
	SyncWorkers      int
	InternalJobToken string

	Analytics analytics.Config

	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
}

func Load() (Config, error) {
	var (
		cfg Config
		err error
	)

	if cfg.AppEnv, err = parseAppEnv(getEnv("APP_ENV", EnvDev)); err != nil {
		return Config{}, err
	}
	cfg.ServiceName = getEnv("APP_SERVICE_NAME", "fpl-insights-api")
	cfg.ServiceVersion = getEnv("APP_SERVICE_VERSION", "dev")
	cfg.HTTPAddr = getEnv("APP_HTTP_ADDR", ":8080")
	if cfg.ReadTimeout, err = getEnvAsPositiveDuration("APP_READ_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.WriteTimeout, err = getEnvAsPositiveDuration("APP_WRITE_TIMEOUT", "30s"); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = getEnvAsPositiveDuration("APP_SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return Config{}, err
	}
	if cfg.LogLevel, err = logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")); err != nil {
		return Config{}, fmt.Errorf("parse APP_LOG_LEVEL: %w", err)
	}
	cfg.CORSAllowedOrigins = splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*"))
	if cfg.PprofEnabled, err = getEnvAsBool("PPROF_ENABLED", false); err != nil {
		return Config{}, err
	}
	cfg.PprofAddr = getEnv("PPROF_ADDR", "127.0.0.1:6060")

	if err := loadStorage(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadCache(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadUpstream(&cfg); err != nil {
		return Config{}, err
	}
	if err := loadSync(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Analytics, err = loadAnalytics(); err != nil {
		return Config{}, err
	}
	if err := loadObservability(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadStorage(cfg *Config) error {
	var err error

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", StorageMemory)))
	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q: valid values are %s, %s", cfg.StorageDriver, StorageMemory, StoragePostgres)
	}

	cfg.DBURL = strings.TrimSpace(getEnv("DB_URL", ""))
	if cfg.StorageDriver == StoragePostgres && cfg.DBURL == "" {
		return fmt.Errorf("DB_URL is required when STORAGE_DRIVER=postgres")
	}
	if cfg.DBDisablePreparedBinary, err = getEnvAsBool("DB_DISABLE_PREPARED_BINARY_RESULT", false); err != nil {
		return err
	}
	return nil
}

func loadCache(cfg *Config) error {
	var err error

	if cfg.CacheEnabled, err = getEnvAsBool("CACHE_ENABLED", true); err != nil {
		return err
	}
	if cfg.CacheTTL, err = getEnvAsPositiveDuration("CACHE_TTL", "60s"); err != nil {
		return err
	}

	if cfg.RedisEnabled, err = getEnvAsBool("REDIS_ENABLED", false); err != nil {
		return err
	}
	cfg.RedisAddr = strings.TrimSpace(getEnv("REDIS_ADDR", ""))
	if cfg.RedisEnabled && cfg.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required when REDIS_ENABLED=true")
	}
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0); err != nil {
		return err
	}
	if cfg.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB must be >= 0")
	}
	cfg.RedisPrefix = getEnv("REDIS_PREFIX", "fpl")
	if cfg.PayloadCacheTTL, err = getEnvAsPositiveDuration("REDIS_PAYLOAD_TTL", "5m"); err != nil {
		return err
	}
	return nil
}

func loadUpstream(cfg *Config) error {
	var err error

	cfg.FPLAPIBaseURL = strings.TrimRight(getEnv("FPL_API_BASE_URL", "https://fantasy.premierleague.com/api"), "/")
	cfg.FPLAPIUserAgent = getEnv("FPL_API_USER_AGENT", "fpl-insights/1.0")
	if cfg.FPLAPITimeout, err = getEnvAsPositiveDuration("FPL_API_TIMEOUT", "10s"); err != nil {
		return err
	}
	if cfg.FPLAPIMaxRetries, err = getEnvAsInt("FPL_API_MAX_RETRIES", 2); err != nil {
		return err
	}
	if cfg.FPLAPIMaxRetries < 0 {
		return fmt.Errorf("FPL_API_MAX_RETRIES must be >= 0")
	}
	if cfg.FPLAPIRetryBackoff, err = getEnvAsPositiveDuration("FPL_API_RETRY_BACKOFF", "1s"); err != nil {
		return err
	}

	if cfg.FPLAPICircuitEnabled, err = getEnvAsBool("FPL_API_CIRCUIT_ENABLED", true); err != nil {
		return err
	}
	if cfg.FPLAPICircuitFailureCount, err = getEnvAsInt("FPL_API_CIRCUIT_FAILURE_COUNT", 5); err != nil {
		return err
	}
	if cfg.FPLAPICircuitFailureCount < 1 {
		return fmt.Errorf("FPL_API_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	if cfg.FPLAPICircuitOpenTimeout, err = getEnvAsPositiveDuration("FPL_API_CIRCUIT_OPEN_TIMEOUT", "30s"); err != nil {
		return err
	}
	if cfg.FPLAPICircuitHalfOpenMaxReq, err = getEnvAsInt("FPL_API_CIRCUIT_HALF_OPEN_MAX_REQ", 1); err != nil {
		return err
	}
	if cfg.FPLAPICircuitHalfOpenMaxReq < 1 {
		return fmt.Errorf("FPL_API_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	return nil
}

func loadSync(cfg *Config) error {
	var err error

	cfg.SyncCron = strings.TrimSpace(getEnv("SYNC_CRON", ""))
	if cfg.SyncCron != "" {
		if _, err := cron.ParseStandard(cfg.SyncCron); err != nil {
			return fmt.Errorf("parse SYNC_CRON: %w", err)
		}
	}
	if cfg.SyncOnStartup, err = getEnvAsBool("SYNC_ON_STARTUP", false); err != nil {
		return err
	}
	if cfg.SyncWorkers, err = getEnvAsInt("SYNC_WORKERS", 4); err != nil {
		return err
	}
	if cfg.SyncWorkers < 1 {
		return fmt.Errorf("SYNC_WORKERS must be >= 1")
	}
	cfg.InternalJobToken = strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", ""))
	return nil
}

// loadAnalytics overlays ANALYTICS_* variables on the default scoring config.
func loadAnalytics() (analytics.Config, error) {
	out := analytics.DefaultConfig()
	var err error

	if out.FixtureHorizon, err = getEnvAsInt("ANALYTICS_FIXTURE_HORIZON", out.FixtureHorizon); err != nil {
		return analytics.Config{}, err
	}
	if out.ShortlistSize, err = getEnvAsInt("ANALYTICS_SHORTLIST_SIZE", out.ShortlistSize); err != nil {
		return analytics.Config{}, err
	}
	if out.DifferentialOwnership, err = getEnvAsFloat("ANALYTICS_DIFFERENTIAL_OWNERSHIP", out.DifferentialOwnership); err != nil {
		return analytics.Config{}, err
	}
	if out.MinutesDivisor, err = getEnvAsFloat("ANALYTICS_MINUTES_DIVISOR", out.MinutesDivisor); err != nil {
		return analytics.Config{}, err
	}
	if out.MomentumDivisor, err = getEnvAsFloat("ANALYTICS_MOMENTUM_DIVISOR", out.MomentumDivisor); err != nil {
		return analytics.Config{}, err
	}
	if out.Risk.RotationMediumPct, err = getEnvAsFloat("ANALYTICS_ROTATION_MEDIUM_PCT", out.Risk.RotationMediumPct); err != nil {
		return analytics.Config{}, err
	}
	if out.Risk.RotationHighPct, err = getEnvAsFloat("ANALYTICS_ROTATION_HIGH_PCT", out.Risk.RotationHighPct); err != nil {
		return analytics.Config{}, err
	}
	if out.Risk.FormMedium, err = getEnvAsFloat("ANALYTICS_FORM_MEDIUM", out.Risk.FormMedium); err != nil {
		return analytics.Config{}, err
	}
	if out.Risk.FormHigh, err = getEnvAsFloat("ANALYTICS_FORM_HIGH", out.Risk.FormHigh); err != nil {
		return analytics.Config{}, err
	}

	if err := out.Validate(); err != nil {
		return analytics.Config{}, err
	}
	return out, nil
}

func loadObservability(cfg *Config) error {
	var err error

	if cfg.UptraceEnabled, err = getEnvAsBool("UPTRACE_ENABLED", false); err != nil {
		return err
	}
	cfg.UptraceDSN = strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if cfg.UptraceEnabled && cfg.UptraceDSN == "" {
		return fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	if cfg.UptraceLogsEnabled, err = getEnvAsBool("UPTRACE_LOGS_ENABLED", false); err != nil {
		return err
	}

	if cfg.PyroscopeEnabled, err = getEnvAsBool("PYROSCOPE_ENABLED", false); err != nil {
		return err
	}
	cfg.PyroscopeServerAddress = strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "" {
		return fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = getEnv("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = getEnv("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	if cfg.PyroscopeUploadRate, err = getEnvAsPositiveDuration("PYROSCOPE_UPLOAD_RATE", "15s"); err != nil {
		return err
	}
	return nil
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func getEnvAsFloat(key string, fallback float64) (float64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}

	return out, nil
}

func getEnvAsPositiveDuration(key, fallback string) (time.Duration, error) {
	out, err := time.ParseDuration(strings.TrimSpace(getEnv(key, fallback)))
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	if out <= 0 {
		return 0, fmt.Errorf("%s must be > 0", key)
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
