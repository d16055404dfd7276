package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Business  BusinessConfig  `mapstructure:"business"`
	Health    HealthConfig    `mapstructure:"health"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"DATABASE_URL"`
	Host     string `mapstructure:"DATABASE_HOST"`
	Port     string `mapstructure:"DATABASE_PORT"`
	Name     string `mapstructure:"DATABASE_NAME"`
	User     string `mapstructure:"DATABASE_USER"`
	Password string `mapstructure:"DATABASE_PASSWORD"`
}

type RedisConfig struct {
	URL      string `mapstructure:"REDIS_URL"`
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
}

type SchedulerConfig struct {
	Interval string `mapstructure:"SCHEDULER_INTERVAL"`
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	// PenaltyRate is the percentage of one installment charged per overdue
	// week.
	PenaltyRate string `mapstructure:"PENALTY_RATE"`
	// DefaultMethod is the interest method used when a loan request omits
	// one: flat or reducing_balance.
	DefaultMethod string `mapstructure:"DEFAULT_METHOD"`
	// DefaultThresholdWeeks is the count of missed weeks after which an
	// active loan is marked defaulted by the scheduler.
	DefaultThresholdWeeks int `mapstructure:"DEFAULT_THRESHOLD_WEEKS"`
	MaxDurationWeeks      int `mapstructure:"MAX_DURATION_WEEKS"`
	// LoanCacheTTL bounds how long a loan snapshot may live in Redis.
	LoanCacheTTL string `mapstructure:"LOAN_CACHE_TTL"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("PENALTY_RATE", "2.0")
	viper.SetDefault("DEFAULT_METHOD", "flat")
	viper.SetDefault("DEFAULT_THRESHOLD_WEEKS", 4)
	viper.SetDefault("MAX_DURATION_WEEKS", 104)
	viper.SetDefault("LOAN_CACHE_TTL", "15m")
	viper.SetDefault("SCHEDULER_INTERVAL", "24h")
	viper.SetDefault("SCHEDULER_TIMEZONE", "Asia/Colombo")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.DefaultThresholdWeeks <= 0 {
		return fmt.Errorf("DEFAULT_THRESHOLD_WEEKS must be greater than 0")
	}

	if c.Business.MaxDurationWeeks <= 0 {
		return fmt.Errorf("MAX_DURATION_WEEKS must be greater than 0")
	}

	if c.Business.DefaultMethod != "flat" && c.Business.DefaultMethod != "reducing_balance" {
		return fmt.Errorf("DEFAULT_METHOD must be flat or reducing_balance")
	}

	rate, err := decimal.NewFromString(c.Business.PenaltyRate)
	if err != nil {
		return fmt.Errorf("PENALTY_RATE must be a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("PENALTY_RATE must not be negative")
	}

	if _, err := time.ParseDuration(c.Business.LoanCacheTTL); err != nil {
		return fmt.Errorf("LOAN_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Scheduler.Interval); err != nil {
		return fmt.Errorf("SCHEDULER_INTERVAL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetPenaltyRate returns the penalty rate as decimal
func (c *Config) GetPenaltyRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.PenaltyRate)
	return rate
}

// GetLoanCacheTTL returns the loan cache TTL as duration
func (c *Config) GetLoanCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Business.LoanCacheTTL)
	return ttl
}

// GetSchedulerInterval returns the scheduler interval as duration
func (c *Config) GetSchedulerInterval() time.Duration {
	duration, _ := time.ParseDuration(c.Scheduler.Interval)
	return duration
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
