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
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	GitHub     GitHubConfig
	OpenAI     OpenAIConfig
	Screenshot ScreenshotConfig
	Cache      CacheConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
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

type RedisConfig struct {
	// Enabled toggles the Redis front tier; the Postgres store works alone.
	Enabled bool
	Host    string
	Port    string
	// ClusterAddrs switches the client to cluster mode when non-empty;
	// Host, Port and DB are ignored in that mode.
	ClusterAddrs []string
	Password     string
	DB           int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type GitHubConfig struct {
	// Token is the shared read-only token used for anonymous viewers.
	Token          string
	APIBaseURL     string
	GraphQLURL     string
	RequestTimeout time.Duration
	PageSize       int
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type ScreenshotConfig struct {
	// APIURL points at a screenshot rendering service exposing /take.
	// Empty means fall back to the public thum.io endpoint.
	APIURL         string
	RequestTimeout time.Duration
	CacheTTL       time.Duration
	FailureTTL     time.Duration
	FailureLimit   int
}

type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
	AboutTTL   time.Duration
	ProjectTTL time.Duration
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:  getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:   getEnv("TLS_KEY_FILE", ""),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "gitfolio"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getIntEnv("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime: getDurationEnv("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Enabled:      getBoolEnv("REDIS_ENABLED", true),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			ClusterAddrs: getSliceEnv("REDIS_CLUSTER_ADDRS"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getIntEnv("REDIS_DB", 0),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolTimeout:  getDurationEnv("REDIS_POOL_TIMEOUT", 4*time.Second),
			IdleTimeout:  getDurationEnv("REDIS_IDLE_TIMEOUT", 5*time.Minute),
		},
		GitHub: GitHubConfig{
			Token:          getEnv("GITHUB_TOKEN", ""),
			APIBaseURL:     getEnv("GITHUB_API_URL", "https://api.github.com"),
			GraphQLURL:     getEnv("GITHUB_GRAPHQL_URL", "https://api.github.com/graphql"),
			RequestTimeout: getDurationEnv("GITHUB_REQUEST_TIMEOUT", 30*time.Second),
			PageSize:       getIntEnv("GITHUB_PAGE_SIZE", 100),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Screenshot: ScreenshotConfig{
			APIURL:         getEnv("SCREENSHOT_API_URL", ""),
			RequestTimeout: getDurationEnv("SCREENSHOT_REQUEST_TIMEOUT", 20*time.Second),
			CacheTTL:       getDurationEnv("SCREENSHOT_CACHE_TTL", 24*time.Hour),
			FailureTTL:     getDurationEnv("SCREENSHOT_FAILURE_TTL", 30*24*time.Hour),
			FailureLimit:   getIntEnv("SCREENSHOT_FAILURE_LIMIT", 3),
		},
		Cache: CacheConfig{
			Enabled:    getBoolEnv("CACHE_ENABLED", true),
			DefaultTTL: getDurationEnv("CACHE_DEFAULT_TTL", time.Hour),
			AboutTTL:   getDurationEnv("CACHE_ABOUT_TTL", 30*24*time.Hour),
			ProjectTTL: getDurationEnv("CACHE_PROJECT_TTL", time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Build database DSN
	cfg.Database.DSN = fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
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

func getSliceEnv(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
