package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	// Storage
	StorageDriver string // memory | postgres | sqlite
	DBUrl         string
	SQLitePath    string
	SeedData      bool // Load the sample catalog into an empty store at startup
	FrontendURL   string
	// Redis Configuration
	RedisURL               string
	RedisPassword          string
	CacheTTLSeconds        int
	FeaturedCompaniesLimit int
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	BcryptCost               int
	// Uploads
	UploadDir         string
	PublicBaseURL     string
	S3Bucket          string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Endpoint        string
	AuditLog          bool
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "5000"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		// Storage
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		DBUrl:         getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "jobflix.db"),
		SeedData:      getEnvBool("SEED_DATA", true),
		FrontendURL:   strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		// Redis Configuration
		RedisURL:               getEnv("REDIS_URL", ""),
		RedisPassword:          getEnv("REDIS_PASSWORD", ""),
		CacheTTLSeconds:        getEnvInt("CACHE_TTL_SECONDS", 300),
		FeaturedCompaniesLimit: getEnvInt("FEATURED_COMPANIES_LIMIT", 6),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		BcryptCost:               getEnvInt("BCRYPT_COST", 10),
		// Uploads
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:     strings.TrimRight(getEnv("PUBLIC_BASE_URL", ""), "/"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", "auto"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		AuditLog:          getEnvBool("AUDIT_LOG", true),
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		if cfg.DBUrl == "" {
			log.Println("WARNING: STORAGE_DRIVER=postgres but DATABASE_URL is missing. Application may fail to connect.")
		}
	default:
		log.Printf("WARNING: unknown STORAGE_DRIVER %q, falling back to memory", cfg.StorageDriver)
		cfg.StorageDriver = StorageMemory
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback and caching is disabled.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
