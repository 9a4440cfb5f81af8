// Package config loads the service configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Port        string

	OntologyPath      string
	OntologyNamespace string
	OntologyWatch     bool

	CacheDir        string
	CacheTTL        time.Duration
	CacheSweepEvery string
	DatasetPath     string
	QueryLogPath    string

	DBpediaEnglishEndpoint string
	DBpediaSpanishEndpoint string
	RemoteRequestTimeout   time.Duration
	RemoteLanguageTimeout  time.Duration
	RemoteMaxResults       int
}

// LoadConfig loads configuration from the environment. A .env file in
// the working directory is applied first when present; real environment
// variables win over it.
func LoadConfig() (*Config, error) {
	// Missing .env is the normal production case
	_ = godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Port:        getEnv("PORT", "8080"),

		OntologyPath:      getEnv("ONTOLOGY_PATH", "./data/casino.ttl"),
		OntologyNamespace: getEnv("ONTOLOGY_NAMESPACE", "http://www.ludokb.org/ontologies/casino#"),
		OntologyWatch:     getEnvAsBool("ONTOLOGY_WATCH", false),

		CacheDir:        getEnv("CACHE_DIR", "./cache/dbpedia"),
		CacheTTL:        getEnvAsDuration("CACHE_TTL", 7*24*time.Hour),
		CacheSweepEvery: getEnv("CACHE_SWEEP_EVERY", "@every 1h"),
		DatasetPath:     getEnv("DATASET_PATH", ""),
		QueryLogPath:    getEnv("QUERY_LOG_PATH", "./data/querylog.db"),

		DBpediaEnglishEndpoint: getEnv("DBPEDIA_EN_ENDPOINT", ""),
		DBpediaSpanishEndpoint: getEnv("DBPEDIA_ES_ENDPOINT", ""),
		RemoteRequestTimeout:   getEnvAsDuration("REMOTE_REQUEST_TIMEOUT", 8*time.Second),
		RemoteLanguageTimeout:  getEnvAsDuration("REMOTE_LANGUAGE_TIMEOUT", 6*time.Second),
		RemoteMaxResults:       getEnvAsInt("REMOTE_MAX_RESULTS", 15),
	}

	return config, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves an environment variable as a duration or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
