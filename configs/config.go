package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Routing   RoutingConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Email     EmailConfig
	Images    ImageConfig
	Redis     RedisConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
	TrustedProxies []string
}

// RoutingConfig controls how incoming hostnames are split between the
// landing page, the dashboard and tenant sites.
type RoutingConfig struct {
	BaseDomain          string
	DashboardPrefix     string
	LandingHosts        []string
	LandingHostContains []string
	CookieDomain        string
	CookieSecure        bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	DSN      string
	// Connection pool settings
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type JWTConfig struct {
	Secret          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	SessionTimeout  time.Duration // Max inactivity before forced logout
	ResetTokenTTL   time.Duration
	// RefreshReuseWindow is how long a rotated refresh token still yields
	// the pair it was rotated into.
	RefreshReuseWindow time.Duration
}

type EmailConfig struct {
	SendGridAPIKey   string
	FromEmail        string
	FromName         string
	InquiryFromEmail string
	CompanyName      string
	DashboardURL     string
}

// ImageConfig selects and configures the image CDN backend.
type ImageConfig struct {
	Backend      string // cloudinary or s3
	MaxFileBytes int64
	RootFolder   string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryBaseURL   string

	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	S3PublicBaseURL string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// ClusterAddrs switches to a cluster client when set.
	ClusterAddrs []string
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	SiteRequestsPerWindow int
	BurstMultiplier       float64
	Window                time.Duration
	KeyPrefix             string
	AuthRPS               float64
	AuthBurst             int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var missing []string
	baseDomain := strings.ToLower(getEnvRequired("BASE_DOMAIN", &missing))
	jwtSecret := getEnvRequired("JWT_SECRET", &missing)
	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", nil),
			Environment:    getEnv("ENVIRONMENT", "development"),
			TrustedProxies: getListEnv("TRUSTED_PROXIES", nil),
		},
		Routing: RoutingConfig{
			BaseDomain:          baseDomain,
			DashboardPrefix:     getEnv("DASHBOARD_PREFIX", "app."),
			LandingHosts:        getListEnv("LANDING_HOSTS", nil),
			LandingHostContains: getListEnv("LANDING_HOST_CONTAINS", []string{"192.168."}),
			CookieDomain:        getEnv("COOKIE_DOMAIN", "."+baseDomain),
			CookieSecure:        getBoolEnv("COOKIE_SECURE", true),
		},
		Database: LoadDatabase(),
		JWT: JWTConfig{
			Secret:          jwtSecret,
			AccessTokenTTL:  getDurationEnv("JWT_ACCESS_TTL", 15*time.Minute),
			RefreshTokenTTL: getDurationEnv("JWT_REFRESH_TTL", 24*7*time.Hour),
			SessionTimeout:  getDurationEnv("SESSION_TIMEOUT", 2*time.Hour),
			ResetTokenTTL:   getDurationEnv("PASSWORD_RESET_TTL", time.Hour),

			RefreshReuseWindow: getDurationEnv("JWT_REFRESH_REUSE_WINDOW", 10*time.Second),
		},
		Email: EmailConfig{
			SendGridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
			FromEmail:        getEnv("FROM_EMAIL", "noreply@"+baseDomain),
			FromName:         getEnv("FROM_NAME", "SimpleOutings"),
			InquiryFromEmail: getEnv("INQUIRY_FROM_EMAIL", "inquiries@"+baseDomain),
			CompanyName:      getEnv("COMPANY_NAME", "SimpleOutings"),
			DashboardURL:     getEnv("DASHBOARD_URL", "https://app."+baseDomain),
		},
		Images: ImageConfig{
			Backend:             getEnv("IMAGE_BACKEND", "cloudinary"),
			MaxFileBytes:        int64(getIntEnv("IMAGE_MAX_BYTES", 5*1024*1024)),
			RootFolder:          getEnv("IMAGE_ROOT_FOLDER", "homestay-saas"),
			CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			CloudinaryBaseURL:   getEnv("CLOUDINARY_API_BASE_URL", "https://api.cloudinary.com/v1_1"),
			S3Endpoint:          getEnv("S3_ENDPOINT", ""),
			S3Region:            getEnv("S3_REGION", "us-east-1"),
			S3Bucket:            getEnv("S3_BUCKET", ""),
			S3AccessKey:         getEnv("S3_ACCESS_KEY", ""),
			S3SecretKey:         getEnv("S3_SECRET_KEY", ""),
			S3PublicBaseURL:     getEnv("S3_PUBLIC_BASE_URL", ""),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			ClusterAddrs: getListEnv("REDIS_CLUSTER_ADDRS", nil),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			SiteRequestsPerWindow: getIntEnv("RATE_LIMIT_SITE_REQUESTS", 30),
			BurstMultiplier:       getFloatEnv("RATE_LIMIT_BURST", 2.0),
			Window:                getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:             getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:site"),
			AuthRPS:               getFloatEnv("RATE_LIMIT_AUTH_RPS", 0.5),
			AuthBurst:             getIntEnv("RATE_LIMIT_AUTH_BURST", 5),
		},
	}

	return cfg, nil
}

// LoadDatabase reads only the database settings. Admin commands use it so
// they do not need the full server environment.
func LoadDatabase() DatabaseConfig {
	_ = godotenv.Load()

	cfg := DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnv("DB_PORT", "5432"),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "homestay"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
		ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
	}
	cfg.DSN = getEnv("DATABASE_URL", fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	))
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired records key in missing when it is unset.
func getEnvRequired(key string, missing *[]string) string {
	value := os.Getenv(key)
	if value == "" {
		*missing = append(*missing, key)
	}
	return value
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getListEnv splits a comma separated variable, dropping blanks.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.ToLower(p))
		}
	}
	return out
}
