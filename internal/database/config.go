package database

import (
	"fmt"
	"log"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds database configuration, read from DB_HOST, DB_PORT, DB_USER,
// DB_PASSWORD, DB_NAME and DB_SSLMODE.
type Config struct {
	Host     string `default:"localhost"`
	Port     string `default:"5432"`
	User     string `default:"fintracker"`
	Password string `default:"fintracker"`
	Name     string `default:"fintracker"`
	SSLMode  string `default:"disable"`
}

// NewConfig creates a new database configuration
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("db", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process database environment: %w", err)
	}
	return &cfg, nil
}

// DSN returns the PostgreSQL keyword/value connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// URL returns the postgres:// connection URL used by the migrator.
func (c *Config) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.Name,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
