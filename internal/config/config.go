package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// MailConfig holds SMTP settings used to deliver reports by email, read from
// MAIL_HOST, MAIL_PORT, MAIL_USER, MAIL_PASS and MAIL_FROM_NAME. Fields stay
// untagged: envconfig falls back to the bare tag name (USER, PORT) for
// tagged nested fields.
type MailConfig struct {
	Host     string
	Port     int `default:"465"`
	User     string
	Pass     string
	FromName string `split_words:"true" default:"Meu Controle Financeiro"`
}

// Enabled reports whether enough SMTP settings are present to send mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.User != "" && m.Pass != ""
}

// Config holds application configuration
type Config struct {
	// Server
	Env  string `envconfig:"APP_ENV" default:"development"`
	Port string `envconfig:"PORT" default:"8080"`

	// JWT
	JWTSecret        string        `envconfig:"JWT_SECRET" default:"fallback-secret-key-for-dev-only"`
	JWTExpirationDur time.Duration `envconfig:"JWT_EXPIRES_IN" default:"168h"`

	// Reports
	Mail        MailConfig
	ReportTitle string `envconfig:"REPORT_TITLE" default:"Relatório de Transações"`
}

var (
	appConfig *Config
	mu        sync.RWMutex
)

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	Set(&cfg)
	return &cfg, nil
}

// Set installs cfg as the process configuration.
func Set(cfg *Config) {
	mu.Lock()
	defer mu.Unlock()
	appConfig = cfg
}

// Get returns the application configuration
func Get() *Config {
	mu.RLock()
	cfg := appConfig
	mu.RUnlock()
	if cfg != nil {
		return cfg
	}

	cfg, err := Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return cfg
}
