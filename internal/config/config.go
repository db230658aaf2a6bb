package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppURL  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	SessionSecret string
	SessionExpiry time.Duration

	// Uploads
	UploadDir     string
	StorageDriver string // "local" or "s3"

	// Storage (S3-compatible: MinIO, AWS S3, Leapcell Object Storage, etc.)
	S3Region     string
	S3Bucket     string
	S3AccessKey  string
	S3SecretKey  string
	S3Endpoint   string // Optional: for S3-compatible services
	S3CDNBaseURL string // Optional: public CDN base, already includes the bucket

	// Observability (optional)
	SentryDSN string

	// Debug endpoints (/debug/*) - enabled by default in development only
	EnableDebug bool
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	appEnv := envString("APP_ENV", "development")

	// Remote storage is the production default; development writes to
	// the local upload directory unless STORAGE_DRIVER says otherwise.
	defaultStorage := "local"
	if appEnv == "production" {
		defaultStorage = "s3"
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "FastOpp"),
		AppEnv:  appEnv,
		AppURL:  envString("APP_URL", "http://localhost:8000"),
		Port:    envString("PORT", "8000"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/fastopp.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		SessionSecret: envRequired("SESSION_SECRET"),
		SessionExpiry: envDuration("SESSION_EXPIRY", 168*time.Hour), // 7 days

		// Uploads
		UploadDir:     envString("UPLOAD_DIR", "static/uploads"),
		StorageDriver: envString("STORAGE_DRIVER", defaultStorage),

		// Storage (credentials only needed when StorageDriver is "s3";
		// the storage layer fails fast if they are missing there)
		S3Region:     envString("S3_REGION", "us-east-1"),
		S3Bucket:     envString("S3_BUCKET", ""),
		S3AccessKey:  envString("S3_ACCESS_KEY", ""),
		S3SecretKey:  envString("S3_SECRET_KEY", ""),
		S3Endpoint:   envString("S3_ENDPOINT", ""),
		S3CDNBaseURL: envString("S3_CDN_URL", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Debug
		EnableDebug: envBool("ENABLE_DEBUG_ROUTES", appEnv == "development"),
	}

	return cfg
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
