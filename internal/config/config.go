// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"
)

// Sampling and query limit defaults.
const (
	DefaultSampleSizeValue = 100
	MaxSampleSizeValue     = 1000
	DefaultQueryLimitValue = 20
	MaxQueryLimitValue     = 500
	MaxMutationDocsValue   = 100
)

// Config holds all configuration for the MCP server.
type Config struct {
	MongoURI       string        // MONGODB_URI, default "mongodb://localhost:27017"
	Database       string        // MONGODB_DATABASE, default "test"
	ConnectTimeout time.Duration // CONNECT_TIMEOUT_MS, default 10000ms (10s)
	QueryTimeout   time.Duration // QUERY_TIMEOUT_MS, default 30000ms (30s)
	ReadOnly       bool          // READ_ONLY, default false

	// Sampling and tool output limits
	DefaultSampleSize int // DEFAULT_SAMPLE_SIZE, default 100
	MaxSampleSize     int // MAX_SAMPLE_SIZE, default 1000
	DefaultQueryLimit int // DEFAULT_QUERY_LIMIT, default 20
	MaxQueryLimit     int // MAX_QUERY_LIMIT, default 500
	MaxMutationDocs   int // MAX_MUTATION_DOCS, default 100

	// Collection stats cache and database-wide inference
	StatsCacheMaxItems int           // STATS_CACHE_MAX_ITEMS, default 128
	StatsCacheTTL      time.Duration // STATS_CACHE_TTL_MS, default 30000ms
	DescribeWorkers    int           // DESCRIBE_WORKERS, default 4

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		MongoURI:       getEnvString("MONGODB_URI", "mongodb://localhost:27017"),
		Database:       getEnvString("MONGODB_DATABASE", "test"),
		ConnectTimeout: getEnvDurationMs("CONNECT_TIMEOUT_MS", 10000),
		QueryTimeout:   getEnvDurationMs("QUERY_TIMEOUT_MS", 30000),
		ReadOnly:       getEnvBool("READ_ONLY", false),

		DefaultSampleSize: getEnvInt("DEFAULT_SAMPLE_SIZE", DefaultSampleSizeValue),
		MaxSampleSize:     getEnvInt("MAX_SAMPLE_SIZE", MaxSampleSizeValue),
		DefaultQueryLimit: getEnvInt("DEFAULT_QUERY_LIMIT", DefaultQueryLimitValue),
		MaxQueryLimit:     getEnvInt("MAX_QUERY_LIMIT", MaxQueryLimitValue),
		MaxMutationDocs:   getEnvInt("MAX_MUTATION_DOCS", MaxMutationDocsValue),

		StatsCacheMaxItems: getEnvInt("STATS_CACHE_MAX_ITEMS", 128),
		StatsCacheTTL:      getEnvDurationMs("STATS_CACHE_TTL_MS", 30000),
		DescribeWorkers:    getEnvInt("DESCRIBE_WORKERS", 4),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
