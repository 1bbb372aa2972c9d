package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv          string
	LogLevel        slog.Level
	Port            string
	MongoURI        string
	MongoDatabase   string
	JWTSecret       string
	TokenExpiration int64 // Session token lifetime in seconds
	RedisHost       string
	RedisPort       int64
	RedisPassword   string
	RedisDB         int64
	AuthRateLimit   int64 // Max credential attempts per client per minute
}

func LoadConfig() *Config {
	return &Config{
		AppEnv:          getEnv("APP_ENV", "development"),                       // Default development
		LogLevel:        getLogLevel(),                                          // Default INFO
		Port:            getEnv("PORT", "3000"),                                 // Default 3000
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),       // Default local mongod
		MongoDatabase:   getEnv("MONGO_DATABASE", "estately"),                   // Default database name
		JWTSecret:       getEnv("JWT_SECRET_KEY", "secretKey"),                  // Default secret key
		TokenExpiration: getEnvAsInt64("TOKEN_EXPIRATION", 7*24*3600),           // Default 7 days
		RedisHost:       getEnv("REDIS_HOST", "localhost"),                      // Default localhost
		RedisPort:       getEnvAsInt64("REDIS_PORT", 6379),                      // Default 6379
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),                           // Default empty
		RedisDB:         getEnvAsInt64("REDIS_DATABASE", 0),                     // Default 0
		AuthRateLimit:   getEnvAsInt64("AUTH_RATE_LIMIT", 30),                   // Default 30/minute
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
			return value
		}
	}
	return fallback
}

func getLogLevel() slog.Level {
	levelStr := getEnv("LOG_LEVEL", "INFO")

	switch strings.ToUpper(levelStr) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
