// config/config.go
package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration stores all the configurations
type Configuration struct {
	Server        ServerConfiguration
	Neo4j         DatabaseConfiguration
	Redis         RedisConfiguration
	Elasticsearch ElasticsearchConfiguration
	Auth          AuthConfiguration
	RateLimit     RateLimitConfiguration
	Log           LogConfiguration
}

// ServerConfiguration stores the port and other web server settings
type ServerConfiguration struct {
	Port   string
	Prefix string
}

// DatabaseConfiguration stores data for database connection
type DatabaseConfiguration struct {
	URI      string
	Username string
	Password string
}

// RedisConfiguration stores data for Redis connection
type RedisConfiguration struct {
	Addr            string
	Password        string
	DB              int
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PoolSize        int
	DefaultCacheTTL time.Duration
	EncryptionKey   string
}

// ElasticsearchConfiguration stores data for Elasticsearch connection
type ElasticsearchConfiguration struct {
	URL        string
	AuditIndex string
}

// AuthConfiguration holds token signing settings
type AuthConfiguration struct {
	JWTSecret    string
	Issuer       string
	TokenTTL     time.Duration
	// "enforce" or "shadow"
	RoleGateMode string
}

// RateLimitConfiguration holds the global and login throttles
type RateLimitConfiguration struct {
	Requests       int
	Window         time.Duration
	LoginPerSecond float64
	LoginBurst     int
}

type LogConfiguration struct {
	Dir string
}

var config *Configuration

func InitConfig() error {
	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	viper.AddConfigPath("config")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			log.Println("No config file found. Using default settings and environment variables.")
		} else {
			return err
		}
	}

	config = &Configuration{}
	if err := viper.Unmarshal(config); err != nil {
		return err
	}

	if config.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret must be set")
	}

	return nil
}

func setDefaults() {
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.prefix", "/api/v1")
	viper.SetDefault("neo4j.uri", "bolt://localhost:7687")
	viper.SetDefault("neo4j.username", "neo4j")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dialTimeout", "5s")
	viper.SetDefault("redis.readTimeout", "3s")
	viper.SetDefault("redis.writeTimeout", "3s")
	viper.SetDefault("redis.poolSize", 10)
	viper.SetDefault("redis.defaultCacheTTL", "10m")
	viper.SetDefault("elasticsearch.url", "http://localhost:9200")
	viper.SetDefault("elasticsearch.auditIndex", "access-audit")
	viper.SetDefault("auth.issuer", "backoffice")
	viper.SetDefault("auth.tokenTTL", "12h")
	viper.SetDefault("auth.roleGateMode", "enforce")
	viper.SetDefault("ratelimit.requests", 100)
	viper.SetDefault("ratelimit.window", "1m")
	viper.SetDefault("ratelimit.loginPerSecond", 1)
	viper.SetDefault("ratelimit.loginBurst", 5)
	viper.SetDefault("log.dir", "logging")

	// Secrets have no default; bind them so Unmarshal sees the environment.
	for _, key := range []string{"auth.jwtSecret", "neo4j.password", "redis.password", "redis.encryptionKey"} {
		_ = viper.BindEnv(key)
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *Configuration {
	return config
}

// GetString retrieves a string value from the configuration
func GetString(key string) string {
	return viper.GetString(key)
}
