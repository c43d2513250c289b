package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers supported by the document store
const (
	StorageDriverFile     = "file"
	StorageDriverRedis    = "redis"
	StorageDriverPostgres = "postgres"
)

// Chat relay modes
const (
	ChatRelayLocal = "local"
	ChatRelayRedis = "redis"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port           string `yaml:"port" env:"SERVER_PORT"`
		Mode           string `yaml:"mode" env:"SERVER_MODE"`
		AllowedOrigins string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	} `yaml:"server"`

	Storage struct {
		Driver    string `yaml:"driver" env:"STORAGE_DRIVER"`
		DataDir   string `yaml:"data_dir" env:"STORAGE_DATA_DIR"`
		RedisURL  string `yaml:"redis_url" env:"REDIS_URL"`
		KeyPrefix string `yaml:"key_prefix" env:"STORAGE_KEY_PREFIX"`
	} `yaml:"storage"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Auth struct {
		HashPasswords  bool    `yaml:"hash_passwords" env:"AUTH_HASH_PASSWORDS"`
		LoginRateLimit float64 `yaml:"login_rate_limit" env:"AUTH_LOGIN_RATE_LIMIT"`
		LoginBurst     int     `yaml:"login_burst" env:"AUTH_LOGIN_BURST"`
	} `yaml:"auth"`

	Chat struct {
		Relay string `yaml:"relay" env:"CHAT_RELAY"`
	} `yaml:"chat"`

	Mentorship struct {
		MeetingBaseURL    string  `yaml:"meeting_base_url" env:"MENTORSHIP_MEETING_BASE_URL"`
		DefaultHourlyRate float64 `yaml:"default_hourly_rate" env:"MENTORSHIP_DEFAULT_HOURLY_RATE"`
	} `yaml:"mentorship"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file, a .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing .env is normal outside local development
	_ = godotenv.Load()

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.AllowedOrigins = "*"

	config.Storage.Driver = StorageDriverFile
	config.Storage.DataDir = "data"
	config.Storage.KeyPrefix = "edupulse:"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "edupulse"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "edupulse"

	config.Auth.HashPasswords = false
	config.Auth.LoginRateLimit = 5
	config.Auth.LoginBurst = 10

	config.Chat.Relay = ChatRelayLocal

	config.Mentorship.MeetingBaseURL = "https://meet.edupulse.com"
	config.Mentorship.DefaultHourlyRate = 50

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case StorageDriverFile:
		if config.Storage.DataDir == "" {
			return fmt.Errorf("storage data_dir is required for the file driver")
		}
	case StorageDriverRedis:
		if config.Storage.RedisURL == "" {
			return fmt.Errorf("storage redis_url is required for the redis driver")
		}
	case StorageDriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	switch config.Chat.Relay {
	case ChatRelayLocal:
	case ChatRelayRedis:
		if config.Storage.RedisURL == "" {
			return fmt.Errorf("storage redis_url is required for the redis chat relay")
		}
	default:
		return fmt.Errorf("unknown chat relay %q", config.Chat.Relay)
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if config.Mentorship.DefaultHourlyRate <= 0 {
		return fmt.Errorf("mentorship default_hourly_rate must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// AllowedOriginList splits the comma separated origin setting
func (c *Config) AllowedOriginList() []string {
	var origins []string
	for _, origin := range strings.Split(c.Server.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// UsesRedis reports whether any component needs a Redis connection
func (c *Config) UsesRedis() bool {
	return c.Storage.Driver == StorageDriverRedis || c.Chat.Relay == ChatRelayRedis
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
