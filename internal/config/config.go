package config

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DateLayout is the ISO calendar date layout used for every date input.
const DateLayout = "2006-01-02"

// Config holds all configuration for our application
type Config struct {
	Server   ServerConfig   `mapstructure:",squash"`
	Logging  LoggingConfig  `mapstructure:",squash"`
	Business BusinessConfig `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	PenaltyBlockDuration string `mapstructure:"PENALTY_BLOCK_DURATION"`
	PenaltyPerBlock      string `mapstructure:"PENALTY_PER_BLOCK"`
	DefaultInterestRate  string `mapstructure:"DEFAULT_INTEREST_RATE"`
	MinDate              string `mapstructure:"MIN_DATE"`
	MaxLateSpan          string `mapstructure:"MAX_LATE_SPAN"`
	CurrencySymbol       string `mapstructure:"CURRENCY_SYMBOL"`
	Timezone             string `mapstructure:"TIMEZONE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", "15s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("PENALTY_BLOCK_DURATION", "5h")
	v.SetDefault("PENALTY_PER_BLOCK", "50")
	v.SetDefault("DEFAULT_INTEREST_RATE", "20")
	v.SetDefault("MIN_DATE", "2024-01-01")
	// One year of 5h blocks is 1752 timeline entries
	v.SetDefault("MAX_LATE_SPAN", "8760h")
	v.SetDefault("CURRENCY_SYMBOL", "₱")
	v.SetDefault("TIMEZONE", "Local")
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Try to read from .env file (optional)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, eris.Wrap(err, "config: unable to decode config")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, eris.Wrap(err, "config: invalid configuration")
	}

	return &config, nil
}

// Default returns the configuration Load produces with no environment overrides.
// It panics if the built-in defaults cannot be decoded.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(eris.Wrap(err, "config: decode defaults"))
	}
	return &config
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	block, err := time.ParseDuration(c.Business.PenaltyBlockDuration)
	if err != nil {
		return fmt.Errorf("PENALTY_BLOCK_DURATION must be a valid duration: %w", err)
	}
	if block <= 0 {
		return fmt.Errorf("PENALTY_BLOCK_DURATION must be greater than 0")
	}

	perBlock, err := decimal.NewFromString(c.Business.PenaltyPerBlock)
	if err != nil {
		return fmt.Errorf("PENALTY_PER_BLOCK must be a valid decimal: %w", err)
	}
	if perBlock.IsNegative() {
		return fmt.Errorf("PENALTY_PER_BLOCK must not be negative")
	}

	if _, err := decimal.NewFromString(c.Business.DefaultInterestRate); err != nil {
		return fmt.Errorf("DEFAULT_INTEREST_RATE must be a valid decimal: %w", err)
	}

	if _, err := time.Parse(DateLayout, c.Business.MinDate); err != nil {
		return fmt.Errorf("MIN_DATE must be a YYYY-MM-DD date: %w", err)
	}

	span, err := time.ParseDuration(c.Business.MaxLateSpan)
	if err != nil {
		return fmt.Errorf("MAX_LATE_SPAN must be a valid duration: %w", err)
	}
	if span <= 0 {
		return fmt.Errorf("MAX_LATE_SPAN must be greater than 0")
	}

	if _, err := time.LoadLocation(c.Business.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE must be a valid location: %w", err)
	}

	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL must be a valid level: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// GetPenaltyBlockDuration returns the length of one penalty block
func (c *Config) GetPenaltyBlockDuration() time.Duration {
	duration, _ := time.ParseDuration(c.Business.PenaltyBlockDuration)
	return duration
}

// GetPenaltyPerBlock returns the flat amount charged per complete block
func (c *Config) GetPenaltyPerBlock() decimal.Decimal {
	amount, _ := decimal.NewFromString(c.Business.PenaltyPerBlock)
	return amount
}

// GetMaxLateSpan returns how far past the penalty window start a payment may be
func (c *Config) GetMaxLateSpan() time.Duration {
	span, _ := time.ParseDuration(c.Business.MaxLateSpan)
	return span
}

// GetDefaultInterestRate returns the default interest rate as a percentage
func (c *Config) GetDefaultInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.DefaultInterestRate)
	return rate
}

// GetLocation returns the wall-clock location dates and times are read in
func (c *Config) GetLocation() *time.Location {
	loc, err := time.LoadLocation(c.Business.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetMinDate returns the earliest accepted calendar date, at midnight in GetLocation
func (c *Config) GetMinDate() time.Time {
	date, _ := time.ParseInLocation(DateLayout, c.Business.MinDate, c.GetLocation())
	return date
}

// InitLogger builds the global zap logger from the logging section.
// Development environments also get zap's development mode (DPanic panics, stack traces from warn).
func InitLogger(c *Config) error {
	var zapCfg zap.Config
	if c.Logging.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Development = c.IsDevelopment()

	level, err := zapcore.ParseLevel(c.Logging.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
