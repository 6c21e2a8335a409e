package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func IsProduction() bool {
	return GetEnv("ENV", "development") == "production"
}

// DatabaseConfig holds postgres connection and pool settings.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN returns the key/value connection string used by gorm.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.SSLMode)
}

// URL returns the connection string in URL form, as expected by the migrator.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

// Enabled reports whether ledger events should be published.
func (a AMQPConfig) Enabled() bool {
	return a.URL != ""
}

// Config is the full application configuration.
type Config struct {
	Env         string
	Port        string
	LogLevel    string
	CORSOrigins string
	JWTSecret   string
	JWTTTL      time.Duration
	// AuthRateLimit is the number of register or login attempts allowed
	// per IP per minute.
	AuthRateLimit int
	Database      DatabaseConfig
	Redis         RedisConfig
	AMQP          AMQPConfig
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Env:           GetEnv("ENV", "development"),
		Port:          GetEnv("PORT", "3000"),
		LogLevel:      GetEnv("LOG_LEVEL", "info"),
		CORSOrigins:   GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		JWTSecret:     GetEnv("JWT_SECRET", ""),
		JWTTTL:        GetDurationEnv("JWT_TTL", 24*time.Hour),
		AuthRateLimit: GetIntEnv("AUTH_RATE_LIMIT", 5),
		Database: DatabaseConfig{
			Host:            GetEnv("DB_HOST", "localhost"),
			Port:            GetEnv("DB_PORT", "5432"),
			User:            GetEnv("DB_USER", "postgres"),
			Password:        GetEnv("DB_PASSWORD", "postgres"),
			Name:            GetEnv("DB_NAME", "catatuang"),
			SSLMode:         GetEnv("DB_SSLMODE", "disable"),
			MaxIdleConns:    GetIntEnv("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    GetIntEnv("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: GetDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			ConnMaxIdleTime: GetDurationEnv("DB_CONN_MAX_IDLE_TIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
			TTL:      GetDurationEnv("CACHE_TTL", 10*time.Minute),
		},
		AMQP: AMQPConfig{
			URL:      GetEnv("AMQP_URL", ""),
			Exchange: GetEnv("AMQP_EXCHANGE", "catatuang.ledger"),
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []string

	if c.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	} else if c.Env == "production" && len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET must be at least 32 characters in production")
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, "JWT_TTL must be positive")
	}
	if c.AuthRateLimit < 0 {
		errs = append(errs, "AUTH_RATE_LIMIT cannot be negative")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("PORT must be numeric, got %q", c.Port))
	}
	if c.Database.Host == "" {
		errs = append(errs, "DB_HOST is required")
	}
	if c.Database.Name == "" {
		errs = append(errs, "DB_NAME is required")
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, "DB_MAX_OPEN_CONNS must be at least 1")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, "DB_MAX_IDLE_CONNS cannot exceed DB_MAX_OPEN_CONNS")
	}
	if c.Redis.TTL <= 0 {
		errs = append(errs, "CACHE_TTL must be positive")
	}
	if c.AMQP.Enabled() && c.AMQP.Exchange == "" {
		errs = append(errs, "AMQP_EXCHANGE is required when AMQP_URL is set")
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

// IsProduction reports whether the loaded environment is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
