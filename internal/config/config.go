package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/riskibarqy/pick-grader/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	SeedEnabled                bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	RedisAddr                  string
	RedisPassword              string
	RedisDB                    int
	KafkaBrokers               []string
	KafkaTopic                 string
	KafkaWriteTimeout          time.Duration
	KafkaCircuitEnabled        bool
	KafkaCircuitFailureCount   int
	KafkaCircuitOpenTimeout    time.Duration
	KafkaCircuitHalfOpenMaxReq int
	MetricsAddr                string
	LockTTL                    time.Duration
	PointWorkers               int
	BatchWorkers               int
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
	LogLevel                   logging.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (Config, error) {
	_ = godotenv.Load()

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("APP_SERVICE_NAME", "pick-grader"),
		ServiceVersion:     getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:           getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:              strings.TrimSpace(getEnv("DB_URL", "")),
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RedisAddr:          strings.TrimSpace(getEnv("REDIS_ADDR", "")),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:       splitCSV(getEnv("KAFKA_BROKERS", "")),
		KafkaTopic:         strings.TrimSpace(getEnv("KAFKA_TOPIC", "picks.graded")),
		MetricsAddr:        strings.TrimSpace(getEnv("METRICS_ADDR", "")),
	}
	if cfg.DBURL == "" && appEnv != EnvDev {
		return Config{}, fmt.Errorf("DB_URL is required when APP_ENV=%s", appEnv)
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	seedEnabled, err := strconv.ParseBool(getEnv("SEED_ENABLED", strconv.FormatBool(appEnv == EnvDev)))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_ENABLED: %w", err)
	}
	cfg.SeedEnabled = seedEnabled

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}
	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout

	redisDB, err := getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse REDIS_DB: %w", err)
	}
	if redisDB < 0 {
		return Config{}, fmt.Errorf("REDIS_DB must be >= 0")
	}
	cfg.RedisDB = redisDB

	if len(cfg.KafkaBrokers) > 0 && cfg.KafkaTopic == "" {
		return Config{}, fmt.Errorf("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}
	kafkaWriteTimeout, err := time.ParseDuration(getEnv("KAFKA_WRITE_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KAFKA_WRITE_TIMEOUT: %w", err)
	}
	if kafkaWriteTimeout <= 0 {
		return Config{}, fmt.Errorf("KAFKA_WRITE_TIMEOUT must be > 0")
	}
	kafkaCircuitEnabled, err := strconv.ParseBool(getEnv("KAFKA_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KAFKA_CIRCUIT_ENABLED: %w", err)
	}
	kafkaCircuitFailureCount, err := getEnvAsInt("KAFKA_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse KAFKA_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if kafkaCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("KAFKA_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	kafkaCircuitOpenTimeout, err := time.ParseDuration(getEnv("KAFKA_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse KAFKA_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if kafkaCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("KAFKA_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	kafkaCircuitHalfOpenMaxReq, err := getEnvAsInt("KAFKA_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse KAFKA_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if kafkaCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("KAFKA_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}
	cfg.KafkaWriteTimeout = kafkaWriteTimeout
	cfg.KafkaCircuitEnabled = kafkaCircuitEnabled
	cfg.KafkaCircuitFailureCount = kafkaCircuitFailureCount
	cfg.KafkaCircuitOpenTimeout = kafkaCircuitOpenTimeout
	cfg.KafkaCircuitHalfOpenMaxReq = kafkaCircuitHalfOpenMaxReq

	lockTTL, err := time.ParseDuration(getEnv("SCORE_ENTRY_LOCK_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_ENTRY_LOCK_TTL: %w", err)
	}
	if lockTTL <= 0 {
		return Config{}, fmt.Errorf("SCORE_ENTRY_LOCK_TTL must be > 0")
	}
	pointWorkers, err := getEnvAsInt("SCORE_ENTRY_POINT_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_ENTRY_POINT_WORKERS: %w", err)
	}
	if pointWorkers < 1 {
		return Config{}, fmt.Errorf("SCORE_ENTRY_POINT_WORKERS must be >= 1")
	}
	batchWorkers, err := getEnvAsInt("SCORE_ENTRY_BATCH_WORKERS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORE_ENTRY_BATCH_WORKERS: %w", err)
	}
	if batchWorkers < 1 {
		return Config{}, fmt.Errorf("SCORE_ENTRY_BATCH_WORKERS must be >= 1")
	}
	cfg.LockTTL = lockTTL
	cfg.PointWorkers = pointWorkers
	cfg.BatchWorkers = batchWorkers

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}
	cfg.UptraceEnabled = uptraceEnabled
	cfg.UptraceDSN = uptraceDSN
	cfg.UptraceLogsEnabled = uptraceLogsEnabled

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}
	cfg.PyroscopeEnabled = pyroscopeEnabled
	cfg.PyroscopeServerAddress = pyroscopeServerAddress
	cfg.PyroscopeAppName = getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName)
	cfg.PyroscopeAuthToken = getEnv("PYROSCOPE_AUTH_TOKEN", "")
	cfg.PyroscopeBasicAuthUser = getEnv("PYROSCOPE_BASIC_AUTH_USER", "")
	cfg.PyroscopeBasicAuthPassword = getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")
	cfg.PyroscopeUploadRate = pyroscopeUploadRate

	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

// RedisEnabled reports whether a shared lock backend is configured.
func (c Config) RedisEnabled() bool {
	return c.RedisAddr != ""
}

// KafkaEnabled reports whether graded events go to a broker.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
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
		return 0, err
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

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
