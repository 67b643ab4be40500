package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"paylane-payment-api/database"
	"paylane-payment-api/services/email"
	"paylane-payment-api/services/payment/paylane"
)

type ServerConfig struct {
	Port string
}

type RedisConfig struct {
	URL               string
	WorkerConcurrency int
}

type SessionConfig struct {
	Secret string
}

type AdminConfig struct {
	APISecret string
	JWTSecret string
}

type Config struct {
	Database database.DatabaseConfig
	PayLane  paylane.Credentials
	SMTP     email.SMTPConfig
	Server   ServerConfig
	Redis    RedisConfig
	Session  SessionConfig
	Admin    AdminConfig
}

// LoadConfig reads the environment, falling back to .env for local
// development. Values are never logged: the struct carries gateway and
// database credentials.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Database: database.DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", ""),
		},
		PayLane: paylane.Credentials{
			Username: getEnv("PAYLANE_API_USERNAME", ""),
			Password: getEnv("PAYLANE_API_PASSWORD", ""),
		},
		SMTP: email.SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		Redis: RedisConfig{
			URL:               getEnv("REDIS_URL", "redis://localhost:6379/0"),
			WorkerConcurrency: getEnvInt("WORKER_CONCURRENCY", 3),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
		},
		Admin: AdminConfig{
			APISecret: getEnv("ADMIN_API_SECRET", ""),
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.Database.User == "" || c.Database.DBName == "" {
		return fmt.Errorf("DB_USER and DB_NAME are required")
	}
	if c.PayLane.Username == "" || c.PayLane.Password == "" {
		return fmt.Errorf("PAYLANE_API_USERNAME and PAYLANE_API_PASSWORD are required")
	}
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}
	if c.Admin.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultValue)
		return defaultValue
	}
	return n
}
