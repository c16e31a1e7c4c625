package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	DB             DBConfig
	Redis          RedisConfig
	JWTSecret      string
	LoginRateLimit string
	SeedAdmin      SeedConfig
	Timezone       string
}

type DBConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string

	MaxIdleConns int
	MaxOpenConns int
	LogLevel     string // silent, error, warn, info
}

// DSN returns DATABASE_URL when set, otherwise a DSN built from the parts.
func (c DBConfig) DSN(timezone string) string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, timezone,
	)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled is false when no REDIS_HOST was given; the app then runs without a cache.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

type SeedConfig struct {
	Username string
	Password string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	maxIdle, _ := strconv.Atoi(getEnv("DB_MAX_IDLE_CONNS", "10"))
	maxOpen, _ := strconv.Atoi(getEnv("DB_MAX_OPEN_CONNS", "100"))

	return Config{
		Port: getEnv("PORT", "3000"),
		DB: DBConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "affiliate_ops"),

			MaxIdleConns: maxIdle,
			MaxOpenConns: maxOpen,
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LoginRateLimit: getEnv("LOGIN_RATE_LIMIT", "10-M"),
		SeedAdmin: SeedConfig{
			Username: getEnv("SEED_ADMIN_USERNAME", "superadmin"),
			Password: getEnv("SEED_ADMIN_PASSWORD", "superadmin123"),
		},
		Timezone: getEnv("APP_TIMEZONE", "Asia/Jakarta"),
	}
}

// Location loads the configured timezone, falling back to WIB (UTC+7)
// when the tz database is not available.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Timezone %q not available, using UTC+7: %v", c.Timezone, err)
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
