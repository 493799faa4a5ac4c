package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Store       StoreConfig
	Composer    ComposerConfig
	CRM         CRMConfig
	RateLimit   RateLimitConfig
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// StoreConfig carries the table names for the two persisted collections.
type StoreConfig struct {
	DraftTable    string
	FollowupTable string
}

// ComposerConfig configures the mail-writer collaborator. An empty URL is
// tolerated at startup; the processor then fails each task with a
// configuration error.
type ComposerConfig struct {
	URL     string
	Timeout time.Duration
}

// IsConfigured reports whether the composer can be called at all.
func (c ComposerConfig) IsConfigured() bool {
	return c.URL != ""
}

// CRMConfig configures the lead directory collaborator.
type CRMConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
}

// IsConfigured reports whether CRM lookups can be performed.
func (c CRMConfig) IsConfigured() bool {
	return c.URL != "" && c.Secret != ""
}

type RateLimitConfig struct {
	RequestsPerMinute int
	BurstSize         int
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "followup_engine")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DRAFT_COLLECTION", "email_drafts")
	v.SetDefault("FOLLOWUP_COLLECTION", "email_followups")
	v.SetDefault("MAIL_WRITER_URL", "")
	v.SetDefault("MAIL_WRITER_TIMEOUT", "60s")
	v.SetDefault("CRM_URL", "")
	v.SetDefault("CRM_SECRET", "")
	v.SetDefault("CRM_TIMEOUT", "15s")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("ENVIRONMENT", "production")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Store: StoreConfig{
			DraftTable:    v.GetString("DRAFT_COLLECTION"),
			FollowupTable: v.GetString("FOLLOWUP_COLLECTION"),
		},
		Composer: ComposerConfig{
			URL:     strings.TrimRight(v.GetString("MAIL_WRITER_URL"), "/"),
			Timeout: v.GetDuration("MAIL_WRITER_TIMEOUT"),
		},
		CRM: CRMConfig{
			URL:     strings.TrimRight(v.GetString("CRM_URL"), "/"),
			Secret:  v.GetString("CRM_SECRET"),
			Timeout: v.GetDuration("CRM_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
			BurstSize:         v.GetInt("RATE_LIMIT_BURST"),
		},
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true if the environment is set to development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
