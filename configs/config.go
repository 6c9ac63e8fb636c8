package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/avatarctic/film-catalog-api/internal/core/domain/search"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Elastic   ElasticConfig
	Cache     CacheConfig
	API       APIConfig
	Log       LogConfig
	RateLimit RateLimitConfig
	Tracing   TracingConfig
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
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	// Pool and timeout settings
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
	IdleTimeout  time.Duration
}

type ElasticConfig struct {
	Addresses      []string
	Username       string
	Password       string
	RequestTimeout time.Duration // per backend call
	MaxRetries     int
	FilmIndex      string
	GenreIndex     string
	PersonIndex    string
}

type CacheConfig struct {
	TTL       time.Duration
	KeyPrefix string
	Codec     string // json or msgpack
	OpTimeout time.Duration
	// Optional in-process tier in front of Redis
	LocalEnabled bool
	LocalTTL     time.Duration
	LocalMaxCost int64
}

type APIConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	// MaxResultWindow caps page offset plus size, like index.max_result_window.
	MaxResultWindow int
	// EmptyListNotFound answers 404 instead of 200 for empty list/search pages.
	EmptyListNotFound bool
}

type LogConfig struct {
	Level  string
	Format string // json or text
}

type RateLimitConfig struct {
	Enabled                  bool
	DefaultRequestsPerMinute int
	BurstMultiplier          float64
	Window                   time.Duration
	KeyPrefix                string
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnv("SERVER_PORT", "8080"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
			TLSCertFile:    getEnv("TLS_CERT_FILE", ""),
			TLSKeyFile:     getEnv("TLS_KEY_FILE", ""),
			AllowedOrigins: getListEnv("ALLOWED_ORIGINS", []string{"*"}),
			Environment:    getEnv("ENVIRONMENT", "development"),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
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
		Elastic: ElasticConfig{
			Addresses:      getListEnv("ELASTIC_ADDRESSES", []string{"http://localhost:9200"}),
			Username:       getEnv("ELASTIC_USERNAME", ""),
			Password:       getEnv("ELASTIC_PASSWORD", ""),
			RequestTimeout: getDurationEnv("ELASTIC_REQUEST_TIMEOUT", 5*time.Second),
			MaxRetries:     getIntEnv("ELASTIC_MAX_RETRIES", 3),
			FilmIndex:      getEnv("ELASTIC_FILM_INDEX", "movies"),
			GenreIndex:     getEnv("ELASTIC_GENRE_INDEX", "genres"),
			PersonIndex:    getEnv("ELASTIC_PERSON_INDEX", "persons"),
		},
		Cache: CacheConfig{
			TTL:          getDurationEnv("CACHE_TTL", 5*time.Minute),
			KeyPrefix:    getEnv("CACHE_KEY_PREFIX", "filmcache"),
			Codec:        getEnv("CACHE_CODEC", "json"),
			OpTimeout:    getDurationEnv("CACHE_OP_TIMEOUT", time.Second),
			LocalEnabled: getBoolEnv("CACHE_LOCAL_ENABLED", false),
			LocalTTL:     getDurationEnv("CACHE_LOCAL_TTL", 30*time.Second),
			LocalMaxCost: int64(getIntEnv("CACHE_LOCAL_MAX_ITEMS", 10000)),
		},
		API: APIConfig{
			DefaultPageSize:   getIntEnv("API_DEFAULT_PAGE_SIZE", 50),
			MaxPageSize:       getIntEnv("API_MAX_PAGE_SIZE", search.MaxPageSize),
			MaxResultWindow:   getIntEnv("API_MAX_RESULT_WINDOW", search.MaxResultWindow),
			EmptyListNotFound: getBoolEnv("API_EMPTY_LIST_NOT_FOUND", false),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		RateLimit: RateLimitConfig{
			Enabled:                  getBoolEnv("RATE_LIMIT_ENABLED", true),
			DefaultRequestsPerMinute: getIntEnv("RATE_LIMIT_RPM", 600),
			BurstMultiplier:          getFloatEnv("RATE_LIMIT_BURST", 2.0),
			Window:                   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
			KeyPrefix:                getEnv("RATE_LIMIT_KEY_PREFIX", "ratelimit:client"),
		},
		Tracing: TracingConfig{
			Enabled:     getBoolEnv("TRACING_ENABLED", false),
			ServiceName: getEnv("TRACING_SERVICE_NAME", "film-catalog-api"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.Codec != "json" && c.Cache.Codec != "msgpack" {
		return fmt.Errorf("CACHE_CODEC must be json or msgpack, got %q", c.Cache.Codec)
	}
	if c.Cache.LocalEnabled && (c.Cache.LocalTTL <= 0 || c.Cache.LocalTTL > c.Cache.TTL) {
		return fmt.Errorf("CACHE_LOCAL_TTL must be within (0, %s], got %s", c.Cache.TTL, c.Cache.LocalTTL)
	}
	if c.API.MaxPageSize < 1 || c.API.MaxPageSize > search.MaxPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be within [1, %d], got %d", search.MaxPageSize, c.API.MaxPageSize)
	}
	if c.API.MaxResultWindow < c.API.MaxPageSize {
		return fmt.Errorf("API_MAX_RESULT_WINDOW must be at least API_MAX_PAGE_SIZE (%d), got %d", c.API.MaxPageSize, c.API.MaxResultWindow)
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be within [1, %d], got %d", c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	if len(c.Elastic.Addresses) == 0 {
		return fmt.Errorf("ELASTIC_ADDRESSES must list at least one node")
	}
	if c.Elastic.RequestTimeout <= 0 {
		return fmt.Errorf("ELASTIC_REQUEST_TIMEOUT must be positive, got %s", c.Elastic.RequestTimeout)
	}
	return nil
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

// getListEnv splits a comma separated value, dropping blank items.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
