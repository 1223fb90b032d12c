package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Storage   StorageConfig
	Cache     CacheConfig
	Auth      AuthConfig
	Logging   LoggingConfig
	Catalog   CatalogConfig
	RateLimit RateLimitConfig
	Media     MediaConfig
}

type ServerConfig struct {
	Port            string
	AllowOrigins    []string
	ShutdownTimeout time.Duration
	SwaggerEnabled  bool
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
	PublicURL string
}

// CacheConfig is optional; an empty RedisURL disables caching.
type CacheConfig struct {
	RedisURL string
	TTL      time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type LoggingConfig struct {
	Level           string
	Format          string
	Output          string
	FilePath        string
	MaxSizeMB       int
	MaxBackups      int
	MaxAgeDays      int
	Compress        bool
	LogstashTCPAddr string
}

// CatalogConfig carries the listing knobs used by the public catalog.
type CatalogConfig struct {
	PageSize      int
	FeaturedCount int
	PopularCount  int
	TopViewed     int
	RecentCount   int
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	Burst             int
	ExpiresIn         time.Duration
}

type MediaConfig struct {
	FFMPEGPath    string
	MaxDimension  int
	ImageMaxBytes int64
}

func DefaultCatalogConfig() CatalogConfig {
	return CatalogConfig{
		PageSize:      6,
		FeaturedCount: 3,
		PopularCount:  3,
		TopViewed:     5,
		RecentCount:   5,
	}
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	catalog := DefaultCatalogConfig()
	catalog.PageSize = getenvInt("CATALOG_PAGE_SIZE", catalog.PageSize)
	catalog.FeaturedCount = getenvInt("CATALOG_FEATURED_COUNT", catalog.FeaturedCount)
	catalog.PopularCount = getenvInt("CATALOG_POPULAR_COUNT", catalog.PopularCount)

	return Config{
		Server: ServerConfig{
			Port:            getenv("PORT", "8080"),
			AllowOrigins:    splitAndTrim(getenv("ALLOW_ORIGINS", "*")),
			ShutdownTimeout: getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			SwaggerEnabled:  getenvBool("SWAGGER_ENABLED", true),
		},
		Database: DatabaseConfig{
			URL:             must("DATABASE_URL"),
			MaxOpenConns:    getenvInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns:    getenvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getenvDuration("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getenvBool("DATABASE_AUTO_MIGRATE", true),
		},
		Storage: StorageConfig{
			Endpoint:  must("MINIO_ENDPOINT"),
			AccessKey: must("MINIO_ACCESS_KEY"),
			SecretKey: must("MINIO_SECRET_KEY"),
			UseSSL:    getenvBool("MINIO_USE_SSL", false),
			Bucket:    getenv("MINIO_BUCKET_MEDIA", "lombok-media"),
			PublicURL: getenv("MINIO_PUBLIC_URL", ""),
		},
		Cache: CacheConfig{
			RedisURL: getenv("REDIS_URL", ""),
			TTL:      getenvDuration("CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: must("JWT_SECRET"),
			TokenTTL:  getenvDuration("TOKEN_TTL", 24*time.Hour),
		},
		Logging: LoggingConfig{
			Level:           getenv("LOG_LEVEL", "info"),
			Format:          getenv("LOG_FORMAT", "json"),
			Output:          getenv("LOG_OUTPUT", "stdout"),
			FilePath:        getenv("LOG_FILE_PATH", "logs/api.log"),
			MaxSizeMB:       getenvInt("LOG_MAX_SIZE_MB", 100),
			MaxBackups:      getenvInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays:      getenvInt("LOG_MAX_AGE_DAYS", 28),
			Compress:        getenvBool("LOG_COMPRESS", true),
			LogstashTCPAddr: getenv("LOGSTASH_TCP_ADDR", ""),
		},
		Catalog: catalog,
		RateLimit: RateLimitConfig{
			Enabled:           getenvBool("RATE_LIMIT_ENABLED", true),
			RequestsPerSecond: getenvFloat("RATE_LIMIT_RPS", 10),
			Burst:             getenvInt("RATE_LIMIT_BURST", 30),
			ExpiresIn:         getenvDuration("RATE_LIMIT_EXPIRES_IN", 3*time.Minute),
		},
		Media: MediaConfig{
			FFMPEGPath:    getenv("FFMPEG_PATH", "ffmpeg"),
			MaxDimension:  getenvInt("IMAGE_MAX_DIMENSION", 2560),
			ImageMaxBytes: int64(getenvInt("IMAGE_MAX_BYTES", 5*1024*1024)),
		},
	}
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v, err := strconv.Atoi(getenv(k, "")); err == nil && v > 0 {
		return v
	}
	return d
}

func getenvFloat(k string, d float64) float64 {
	if v, err := strconv.ParseFloat(getenv(k, ""), 64); err == nil && v > 0 {
		return v
	}
	return d
}

func getenvBool(k string, d bool) bool {
	if v, err := strconv.ParseBool(getenv(k, "")); err == nil {
		return v
	}
	return d
}

func getenvDuration(k string, d time.Duration) time.Duration {
	if v, err := time.ParseDuration(getenv(k, "")); err == nil && v > 0 {
		return v
	}
	return d
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
