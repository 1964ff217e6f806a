package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	Consul   ConsulConfig
}

type ServerConfig struct {
	Port           string
	ServiceName    string
	ServiceAddress string
	ServiceID      string
	AllowOrigins   []string
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// RedisConfig is optional; an empty Address disables the question-set cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
	CacheTTL time.Duration
}

// RabbitMQConfig is optional; an empty URI or Exchange disables event
// publishing.
type RabbitMQConfig struct {
	URI      string
	Exchange string
}

// ConsulConfig is optional; an empty Address disables registration.
type ConsulConfig struct {
	Address string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "7700"),
			ServiceName:    getEnv("TESTBANK_SERVICE_NAME", "testbank-service"),
			ServiceAddress: getEnv("TESTBANK_SERVICE_ADDRESS", "testbank-service"),
			ServiceID:      getEnv("TESTBANK_SERVICE_NAME", "testbank-service") + "-" + getEnv("HOSTNAME", "testbank"),
			AllowOrigins:   []string{getEnv("CORS_ORIGIN", "http://localhost:3000")},
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGO_DATABASE", "testbank_service"),
			Timeout:  getEnvAsDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("REDIS_CACHE_TTL", 5*time.Minute),
		},
		RabbitMQ: RabbitMQConfig{
			URI:      getEnv("RABBITMQ_URI", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", ""),
		},
		Consul: ConsulConfig{
			Address: getEnv("CONSUL_ADDR", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Warn().Str("key", key).Str("value", value).Msg("invalid int env var, using default")
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Warn().Str("key", key).Str("value", value).Msg("invalid duration env var, using default")
			return defaultValue
		}
		return d
	}
	return defaultValue
}
