// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for the server, search pipeline, and scoring

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache backend configuration
	Cache CacheConfig

	// Search contains search pipeline configuration
	Search SearchConfig

	// Scoring contains recommendation scoring configuration
	Scoring ScoringConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the allowed requests per minute per client IP
	RateLimit int

	// LogFormat selects the logger backend ("standard" or "json")
	LogFormat string
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// SearchConfig holds search pipeline configuration
type SearchConfig struct {
	// LookbackDays is the trailing window within which publications
	// are considered relevant
	LookbackDays int

	// AdapterTimeout is the per-adapter-call timeout in seconds
	AdapterTimeout int

	// MaxConcurrentJobs bounds how many search jobs run at once
	MaxConcurrentJobs int

	// JobTimeout is the wall-clock bound in seconds after which a job
	// that has not reached a terminal state is forced to Failed.
	// Zero disables the bound.
	JobTimeout int

	// OutputDir is where report artifacts are written
	OutputDir string
}

// ScoringConfig holds recommendation scoring configuration
type ScoringConfig struct {
	// TopTierSources are outlets that receive the top-tier base score
	TopTierSources []string

	// MidTierSources are outlets that receive the mid-tier base score
	MidTierSources []string

	// FeatureThreshold is the minimum score for "feature immediately"
	FeatureThreshold int

	// IncludeThreshold is the minimum score for "include in monthly report"
	IncludeThreshold int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnvOrDefault("PORT", "8000"),
			RateLimit: getEnvAsIntOrDefault("RATE_LIMIT", 100),
			LogFormat: getEnvOrDefault("LOG_FORMAT", "standard"),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Search: SearchConfig{
			LookbackDays:      getEnvAsIntOrDefault("LOOKBACK_DAYS", 30),
			AdapterTimeout:    getEnvAsIntOrDefault("ADAPTER_TIMEOUT", 10),
			MaxConcurrentJobs: getEnvAsIntOrDefault("MAX_CONCURRENT_JOBS", 3),
			JobTimeout:        getEnvAsIntOrDefault("JOB_TIMEOUT", 600),
			OutputDir:         getEnvOrDefault("OUTPUT_DIR", "reports"),
		},
		Scoring: ScoringConfig{
			TopTierSources: getEnvAsListOrDefault("TOP_TIER_SOURCES", []string{
				"Washington Post", "New York Times", "CNN", "NPR",
				"BBC", "The Atlantic", "Politico", "Reuters",
			}),
			MidTierSources: getEnvAsListOrDefault("MID_TIER_SOURCES", []string{
				"The Hill", "Al Jazeera", "The Guardian", "Foreign Policy",
			}),
			FeatureThreshold: getEnvAsIntOrDefault("SCORE_FEATURE_THRESHOLD", 85),
			IncludeThreshold: getEnvAsIntOrDefault("SCORE_INCLUDE_THRESHOLD", 60),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsListOrDefault returns a comma-separated environment variable
// as a trimmed string slice, or a default
func getEnvAsListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Search.LookbackDays < 1 {
		return errors.New("lookback window must be at least 1 day")
	}

	if c.Search.AdapterTimeout < 1 {
		return errors.New("adapter timeout must be at least 1 second")
	}

	if c.Search.MaxConcurrentJobs < 1 {
		return errors.New("max concurrent jobs must be at least 1")
	}

	if c.Search.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.Scoring.FeatureThreshold <= c.Scoring.IncludeThreshold {
		return errors.New("feature threshold must be above include threshold")
	}

	return nil
}
