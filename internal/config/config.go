package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string `validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns       int    `validate:"gte=0"`
	MaxIdleConns       int    `validate:"gte=0"`
	ConnMaxLifetimeSec int    `validate:"gte=0"`
}

// MinIOConfig holds object storage settings for caller exports.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// LogConfig selects the zerolog output.
type LogConfig struct {
	Level   string `validate:"oneof=trace debug info warn error"`
	Format  string `validate:"oneof=json console"`
	Env     string `validate:"oneof=dev staging prod"`
	Service string `validate:"required"`
	Version string
}

// PaginationConfig bounds list endpoints. Page sizes are clamped to [10,1000] regardless.
type PaginationConfig struct {
	DefaultPageSize int `validate:"gte=10,lte=1000"`
}

// ExportConfig controls CSV exports of the caller table.
type ExportConfig struct {
	PageSize   int           `validate:"gte=10,lte=1000"`
	MaxRecords int           `validate:"gt=0"`
	URLExpiry  time.Duration `validate:"gt=0"`
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	// AppHost is the host advertised in the API docs; empty means the host serving them.
	AppHost    string
	Port       string `validate:"required,numeric"`
	Database   DatabaseConfig
	MinIO      MinIOConfig
	Log        LogConfig
	Pagination PaginationConfig
	Export     ExportConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the file.
func Load() *AppConfig {
	return &AppConfig{
		AppHost: getEnv("APP_HOST", ""),
		Port:    getEnv("PORT", "8080"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "caller-exports"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Log: LogConfig{
			Level:   getEnv("LOG_LEVEL", "info"),
			Format:  getEnv("LOG_FORMAT", "json"),
			Env:     getEnv("APP_ENV", "prod"),
			Service: getEnv("SERVICE_NAME", "calldash"),
			Version: getEnv("SERVICE_VERSION", "0.1.0"),
		},
		Pagination: PaginationConfig{
			DefaultPageSize: getEnvInt("PAGINATION_DEFAULT_PAGE_SIZE", 100),
		},
		Export: ExportConfig{
			PageSize:   getEnvInt("EXPORT_PAGE_SIZE", 500),
			MaxRecords: getEnvInt("EXPORT_MAX_RECORDS", 100000),
			URLExpiry:  getEnvDuration("EXPORT_URL_EXPIRY", 15*time.Minute),
		},
	}
}

// Validate checks value ranges. Connection settings are verified when the clients are built.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
