package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"credverify/internal/pkg/logger"
)

// ServerConfig holds server-level config
type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	LogLevel string `yaml:"level"`
}

// MongoDB connection config
type MongoConfig struct {
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	URI             string        `yaml:"uri"`
	DBName          string        `yaml:"db_name"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_minutes"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout_seconds"`
}

// Redis connection config
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// Kafka connection config
type KafkaConfig struct {
	Server           string `yaml:"server"`
	SettlementTopic  string `yaml:"settlement_topic"`
	SecurityProtocol string `yaml:"security_protocol"`
	SASLMechanism    string `yaml:"sasl_mechanism"`
	SASLUsername     string `yaml:"sasl_username"`
	SASLPassword     string `yaml:"sasl_password"`
	SessionTimeoutMs int    `yaml:"session_timeout_ms"`
	ClientID         string `yaml:"client_id"`
}

// TracingConfig drives the OTLP exporter. Disabled tracing skips setup and
// the service runs on a noop tracer.
type TracingConfig struct {
	Enabled        bool          `yaml:"enabled"`
	CollectorURL   string        `yaml:"collector_url"`
	UseTLS         bool          `yaml:"use_tls"`
	SampleRatio    float64       `yaml:"sample_ratio"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
}

type PubSubConfig struct {
	ProjectID        string `yaml:"project_id"`
	LifecycleTopic   string `yaml:"lifecycle_topic"`
	AchievementTopic string `yaml:"achievement_topic"`
}

// LoanConfig carries the lending terms every new loan is created with,
// plus the identities the components authorize against.
type LoanConfig struct {
	AnnualRateBps          int64    `yaml:"annual_rate_bps"`
	TermPeriods            int64    `yaml:"term_periods"`
	PeriodDays             int      `yaml:"period_days"`
	GracePeriodDays        int      `yaml:"grace_period_days"`
	EarlyTerminationFeeBps int64    `yaml:"early_termination_fee_bps"`
	PaymentAsset           string   `yaml:"payment_asset"`
	SupportedAssets        []string `yaml:"supported_assets"`
	AdminIdentity          string   `yaml:"admin_identity"`
	TreasuryIdentity       string   `yaml:"treasury_identity"`
	PlatformTreasury       string   `yaml:"platform_treasury"`
	GuardTTLSeconds        int      `yaml:"guard_ttl_seconds"`
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Mongo   MongoConfig   `yaml:"mongo"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	PubSub  PubSubConfig  `yaml:"pubsub"`
	Tracing TracingConfig `yaml:"tracing"`
	Loan    LoanConfig    `yaml:"loan"`
	Logging LogConfig     `yaml:"logging"`
}

func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {

	// server config defaults
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", cfg.Server.Port)

	// log config defaults
	cfg.Logging.LogLevel = GetEnvOrDefaultAsString("LOGGING_LEVEL", "info")

	// MongoDB config defaults
	cfg.Mongo.URI = GetEnvOrDefaultAsString("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DBName = GetEnvOrDefaultAsString("MONGO_DB_NAME", cfg.Mongo.DBName)
	cfg.Mongo.Username = GetEnvOrDefaultAsString("MONGO_USERNAME", cfg.Mongo.Username)
	cfg.Mongo.Password = GetEnvOrDefaultAsString("MONGO_PASSWORD", cfg.Mongo.Password)
	cfg.Mongo.MaxPoolSize = GetEnvOrDefaultAsUint64("MONGO_MAX_POOL_SIZE", cfg.Mongo.MaxPoolSize)
	cfg.Mongo.MinPoolSize = GetEnvOrDefaultAsUint64("MONGO_MIN_POOL_SIZE", cfg.Mongo.MinPoolSize)
	cfg.Mongo.MaxConnIdleTime = time.Duration(GetEnvOrDefaultAsInt("MONGO_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute
	cfg.Mongo.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	// Redis config defaults
	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.EnableTLS = GetEnvOrDefaultAsInt("REDIS_ENABLE_TLS", 0) == 1
	cfg.Redis.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("REDIS_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.Redis.CertContent = GetEnvOrDefaultAsString("REDIS_TLS_CERT", cfg.Redis.CertContent)

	// Kafka config defaults
	cfg.Kafka.Server = GetEnvOrDefaultAsString("KAFKA_SERVER", cfg.Kafka.Server)
	cfg.Kafka.SettlementTopic = GetEnvOrDefaultAsString("KAFKA_SETTLEMENT_TOPIC", cfg.Kafka.SettlementTopic)
	cfg.Kafka.SecurityProtocol = GetEnvOrDefaultAsString("KAFKA_SECURITY_PROTOCOL", cfg.Kafka.SecurityProtocol)
	cfg.Kafka.SASLMechanism = GetEnvOrDefaultAsString("KAFKA_SASL_MECHANISM", cfg.Kafka.SASLMechanism)
	cfg.Kafka.SASLUsername = GetEnvOrDefaultAsString("KAFKA_SASL_USERNAME", cfg.Kafka.SASLUsername)
	cfg.Kafka.SASLPassword = GetEnvOrDefaultAsString("KAFKA_SASL_PASSWORD", cfg.Kafka.SASLPassword)
	cfg.Kafka.SessionTimeoutMs = GetEnvOrDefaultAsInt("KAFKA_SESSION_TIMEOUT_MS", 15000)
	cfg.Kafka.ClientID = GetEnvOrDefaultAsString("KAFKA_CLIENT_ID", cfg.Kafka.ClientID)

	// Tracing config defaults
	cfg.Tracing.Enabled = GetEnvOrDefaultAsInt("OTEL_ENABLED", boolToInt(cfg.Tracing.Enabled)) == 1
	cfg.Tracing.CollectorURL = GetEnvOrDefaultAsString("OTEL_COLLECTOR_URL", cfg.Tracing.CollectorURL)
	cfg.Tracing.UseTLS = GetEnvOrDefaultAsInt("OTEL_USE_TLS", boolToInt(cfg.Tracing.UseTLS)) == 1
	cfg.Tracing.SampleRatio = GetEnvOrDefaultAsFloat("OTEL_SAMPLE_RATIO", cfg.Tracing.SampleRatio)
	cfg.Tracing.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("OTEL_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second

	// PubSub config defaults
	cfg.PubSub.ProjectID = GetEnvOrDefaultAsString("PROJECT_ID", cfg.PubSub.ProjectID)
	cfg.PubSub.LifecycleTopic = GetEnvOrDefaultAsString("PUBSUB_LIFECYCLE_TOPIC", cfg.PubSub.LifecycleTopic)
	cfg.PubSub.AchievementTopic = GetEnvOrDefaultAsString("PUBSUB_ACHIEVEMENT_TOPIC", cfg.PubSub.AchievementTopic)

	// Loan config defaults
	cfg.Loan.AnnualRateBps = int64(GetEnvOrDefaultAsInt("LOAN_ANNUAL_RATE_BPS", int(cfg.Loan.AnnualRateBps)))
	cfg.Loan.TermPeriods = int64(GetEnvOrDefaultAsInt("LOAN_TERM_PERIODS", int(cfg.Loan.TermPeriods)))
	cfg.Loan.PeriodDays = GetEnvOrDefaultAsInt("LOAN_PERIOD_DAYS", cfg.Loan.PeriodDays)
	cfg.Loan.GracePeriodDays = GetEnvOrDefaultAsInt("LOAN_GRACE_PERIOD_DAYS", cfg.Loan.GracePeriodDays)
	cfg.Loan.EarlyTerminationFeeBps = int64(GetEnvOrDefaultAsInt("LOAN_EARLY_TERMINATION_FEE_BPS", int(cfg.Loan.EarlyTerminationFeeBps)))
	cfg.Loan.PaymentAsset = GetEnvOrDefaultAsString("LOAN_PAYMENT_ASSET", cfg.Loan.PaymentAsset)
	cfg.Loan.AdminIdentity = GetEnvOrDefaultAsString("LOAN_ADMIN_IDENTITY", cfg.Loan.AdminIdentity)
	cfg.Loan.TreasuryIdentity = GetEnvOrDefaultAsString("LOAN_TREASURY_IDENTITY", cfg.Loan.TreasuryIdentity)
	cfg.Loan.PlatformTreasury = GetEnvOrDefaultAsString("LOAN_PLATFORM_TREASURY", cfg.Loan.PlatformTreasury)
	cfg.Loan.GuardTTLSeconds = GetEnvOrDefaultAsInt("LOAN_GUARD_TTL_SECONDS", 30)

	return cfg

}

// LoadFromConfigFilePath loads and parses a config file into AppConfig
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {

	// #nosec G304: configPath comes from the deployment environment
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, slog.String("path", configPath))
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := validateConfig(defaultCfg); err != nil {
		logger.Error("Config validation failed", err)
		return nil, err
	}

	logger.Info("Configuration loaded successfully", slog.String("path", configPath))

	return defaultCfg, nil
}

func validateConfig(cfg *AppConfig) error {
	// Validate MongoConfig
	mongo := cfg.Mongo
	if mongo.MinPoolSize < 5 || mongo.MinPoolSize > 10 {
		return fmt.Errorf("mongo.min_pool_size must be between 5 and 10, got %d", mongo.MinPoolSize)
	}
	if mongo.MaxPoolSize < 10 || mongo.MaxPoolSize > 50 {
		return fmt.Errorf("mongo.max_pool_size must be between 10 and 50, got %d", mongo.MaxPoolSize)
	}

	// Validate KafkaConfig
	kafka := cfg.Kafka
	if kafka.SessionTimeoutMs < 10000 || kafka.SessionTimeoutMs > 15000 {
		return fmt.Errorf("kafka.session_timeout_ms must be between 10000 and 15000 ms, got %d", kafka.SessionTimeoutMs)
	}

	// Validate TracingConfig
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing.sample_ratio must be between 0 and 1, got %g", cfg.Tracing.SampleRatio)
	}

	// Validate LoanConfig
	loan := cfg.Loan
	if loan.AnnualRateBps <= 0 || loan.AnnualRateBps > 10000 {
		return fmt.Errorf("loan.annual_rate_bps must be between 1 and 10000, got %d", loan.AnnualRateBps)
	}
	if loan.TermPeriods < 1 {
		return fmt.Errorf("loan.term_periods must be at least 1, got %d", loan.TermPeriods)
	}
	if loan.PeriodDays < 1 {
		return fmt.Errorf("loan.period_days must be at least 1, got %d", loan.PeriodDays)
	}
	if loan.EarlyTerminationFeeBps < 0 || loan.EarlyTerminationFeeBps > 10000 {
		return fmt.Errorf("loan.early_termination_fee_bps must be between 0 and 10000, got %d", loan.EarlyTerminationFeeBps)
	}
	if strings.TrimSpace(loan.PaymentAsset) == "" {
		return fmt.Errorf("loan.payment_asset must be set")
	}
	if strings.TrimSpace(loan.AdminIdentity) == "" {
		return fmt.Errorf("loan.admin_identity must be set")
	}

	return nil
}

// GetEnvOrDefaultAsInt returns the value of the given env variable
// as an int or the default value if not set or invalid.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return int(value)
}

// GetEnvOrDefaultAsUint64 returns the value of the env variable
// as uint64 or the default value if not set or invalid.
func GetEnvOrDefaultAsUint64(key string, defaultValue uint64) uint64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvOrDefaultAsFloat returns the value of the env variable as a
// float64 or the default value if not set or invalid.
func GetEnvOrDefaultAsFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return defaultVal
}

// LoadFromConfig resolves the config file path from the environment and
// loads it.
func LoadFromConfig() (*AppConfig, error) {
	configPath := GetEnvOrDefaultAsString("CONFIG_PATH", "configs/config.yaml")

	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return cfg, nil
}
