package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Identity  IdentityConfig
	Storage   StorageConfig
	Upload    UploadConfig
	Vendor    VendorConfig
	Jobs      JobsConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Env             string
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration.
// Driver is "pgx" (default) or "postgres" to go through lib/pq.
type DatabaseConfig struct {
	Driver      string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	AutoMigrate bool
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.DBName,
	}
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// RedisConfig holds Redis configuration. An empty URL disables rate limiting.
type RedisConfig struct {
	URL      string
	Password string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// IdentityConfig selects where vendor login accounts live: "database" or "supabase"
type IdentityConfig struct {
	Provider           string
	SupabaseURL        string
	SupabaseServiceKey string
	Timeout            time.Duration
}

// StorageConfig selects where uploaded images go: "r2" or "local"
type StorageConfig struct {
	Provider          string
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Bucket          string
	R2PublicURL       string
	R2Endpoint        string
	LocalDir          string
	LocalPublicURL    string
}

// UploadConfig bounds accepted images
type UploadConfig struct {
	MaxBytes  int64
	MaxWidth  int
	MaxHeight int
	MaxPixels int64
}

// VendorConfig holds vendor account settings
type VendorConfig struct {
	EmailDomain string
	LoginURL    string
}

// JobsConfig holds background job settings. A zero interval disables the job.
type JobsConfig struct {
	SubscriptionExpiryInterval time.Duration
}

// CORSConfig holds allowed browser origins
type CORSConfig struct {
	AllowedOrigins []string
}

// RateLimitConfig holds per IP limits for public endpoints
type RateLimitConfig struct {
	PromoValidationLimit  int
	PromoValidationWindow time.Duration
	UploadTokenLimit      int
	UploadTokenWindow     time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("SERVER_ENV", "development"),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "pgx"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnvAsInt("DB_PORT", 5432),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			DBName:      getEnv("DB_NAME", "rimmarsa"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWT: JWTConfig{
			Secret:        getEnv("JWT_SECRET", "change-this-in-production"),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Identity: IdentityConfig{
			Provider:           strings.ToLower(getEnv("IDENTITY_PROVIDER", "database")),
			SupabaseURL:        getEnv("SUPABASE_URL", ""),
			SupabaseServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			Timeout:            getEnvAsDuration("IDENTITY_TIMEOUT", 15*time.Second),
		},
		Storage: StorageConfig{
			Provider:          strings.ToLower(getEnv("STORAGE_PROVIDER", "local")),
			R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
			R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
			R2SecretAccessKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
			R2Bucket:          getEnv("R2_BUCKET_NAME", ""),
			R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
			R2Endpoint:        getEnv("R2_ENDPOINT", ""),
			LocalDir:          getEnv("LOCAL_STORAGE_DIR", "./uploads"),
			LocalPublicURL:    getEnv("LOCAL_STORAGE_PUBLIC_URL", "http://localhost:8080/uploads"),
		},
		Upload: UploadConfig{
			MaxBytes:  int64(getEnvAsInt("UPLOAD_MAX_BYTES", 10<<20)),
			MaxWidth:  getEnvAsInt("UPLOAD_MAX_WIDTH", 8000),
			MaxHeight: getEnvAsInt("UPLOAD_MAX_HEIGHT", 8000),
			MaxPixels: int64(getEnvAsInt("UPLOAD_MAX_PIXELS", 40_000_000)),
		},
		Vendor: VendorConfig{
			EmailDomain: getEnv("VENDOR_EMAIL_DOMAIN", "rimmarsa.com"),
			LoginURL:    getEnv("VENDOR_LOGIN_URL", "https://www.rimmarsa.com/vendor/login"),
		},
		Jobs: JobsConfig{
			SubscriptionExpiryInterval: getEnvAsDuration("SUBSCRIPTION_EXPIRY_INTERVAL", time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		RateLimit: RateLimitConfig{
			PromoValidationLimit:  getEnvAsInt("PROMO_RATE_LIMIT", 5),
			PromoValidationWindow: getEnvAsDuration("PROMO_RATE_WINDOW", time.Hour),
			UploadTokenLimit:      getEnvAsInt("UPLOAD_TOKEN_RATE_LIMIT", 10),
			UploadTokenWindow:     getEnvAsDuration("UPLOAD_TOKEN_RATE_WINDOW", time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if value == "0" {
			return 0
		}
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
