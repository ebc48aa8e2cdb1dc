// Package config loads the server configuration from an optional YAML file,
// fills defaults and applies environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/roomshare/pkg/logging"
)

var validate = validator.New()

// Config is the complete server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Household HouseholdConfig `yaml:"household"`
	Property  PropertyConfig  `yaml:"property"`
	Notify    NotifyConfig    `yaml:"notify"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds the listener settings.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	MetricsPort     int           `yaml:"metrics_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// HouseholdConfig holds the allocation settings.
type HouseholdConfig struct {
	// TotalRent is the budget that active rent shares may not exceed.
	TotalRent decimal.Decimal `yaml:"total_rent"`
	DueDay    int             `yaml:"due_day"`
	Currency  CurrencyConfig  `yaml:"currency"`
	Primary   PrimaryConfig   `yaml:"primary"`
}

// CurrencyConfig is the display currency. Amounts are never converted.
type CurrencyConfig struct {
	Code   string `yaml:"code"`
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// PrimaryConfig identifies the primary occupant.
type PrimaryConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// PropertyConfig seeds the property settings.
type PropertyConfig struct {
	UnitNo       string `yaml:"unit_no"`
	Address      string `yaml:"address"`
	PropertyName string `yaml:"property_name"`
	WifiSSID     string `yaml:"wifi_ssid"`
	WifiPassword string `yaml:"wifi_password"`
}

// NotifyConfig selects the event sink. An empty AMQPURL logs events instead.
type NotifyConfig struct {
	AMQPURL    string `yaml:"amqp_url"`
	Exchange   string `yaml:"exchange"`
	RoutingKey string `yaml:"routing_key"`
}

// LoggingConfig holds the log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads .env if present, then the YAML file at path if path is not
// empty, then applies defaults and environment overrides, and validates.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	setDefaults(cfg)
	if err := applyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 9090
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Household.TotalRent.IsZero() {
		cfg.Household.TotalRent = decimal.NewFromInt(2200)
	}
	if cfg.Household.DueDay == 0 {
		cfg.Household.DueDay = 10
	}
	if cfg.Household.Currency.Code == "" {
		cfg.Household.Currency = CurrencyConfig{Code: "USD", Symbol: "$", Name: "US Dollar"}
	}

	if cfg.Notify.Exchange == "" {
		cfg.Notify.Exchange = "roomshare"
	}
	if cfg.Notify.RoutingKey == "" {
		cfg.Notify.RoutingKey = "billing.events"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func applyEnvironmentOverrides(cfg *Config) error {
	var errs []error

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("PORT: %w", err))
		}
		cfg.Server.Port = port
	}
	if v := os.Getenv("METRICS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("METRICS_PORT: %w", err))
		}
		cfg.Server.MetricsPort = port
	}
	if v := os.Getenv("TOTAL_RENT"); v != "" {
		rent, err := decimal.NewFromString(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("TOTAL_RENT: %w", err))
		}
		cfg.Household.TotalRent = rent
	}
	if v := os.Getenv("DUE_DAY"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("DUE_DAY: %w", err))
		}
		cfg.Household.DueDay = day
	}
	if v := os.Getenv("PRIMARY_NAME"); v != "" {
		cfg.Household.Primary.Name = v
	}
	if v := os.Getenv("PRIMARY_EMAIL"); v != "" {
		cfg.Household.Primary.Email = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.Notify.AMQPURL = v
	}
	if v := os.Getenv("AMQP_EXCHANGE"); v != "" {
		cfg.Notify.Exchange = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %w", errors.Join(errs...))
	}
	return nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var problems []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", c.Server.Port))
	}
	if c.Server.MetricsPort < 1 || c.Server.MetricsPort > 65535 {
		problems = append(problems, fmt.Sprintf("invalid metrics port %d: must be between 1 and 65535", c.Server.MetricsPort))
	}
	if c.Server.MetricsPort == c.Server.Port {
		problems = append(problems, "metrics port must differ from server port")
	}

	if !c.Household.TotalRent.IsPositive() {
		problems = append(problems, fmt.Sprintf("invalid total rent %s: must be greater than zero", c.Household.TotalRent))
	}
	if c.Household.DueDay < 1 || c.Household.DueDay > 31 {
		problems = append(problems, fmt.Sprintf("invalid due day %d: must be between 1 and 31", c.Household.DueDay))
	}
	if strings.TrimSpace(c.Household.Primary.Name) == "" {
		problems = append(problems, "primary occupant name is required")
	}
	if err := validate.Var(c.Household.Primary.Email, "required,email"); err != nil {
		problems = append(problems, fmt.Sprintf("invalid primary occupant email %q", c.Household.Primary.Email))
	}

	if c.Notify.AMQPURL != "" {
		if u, err := url.Parse(c.Notify.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if u.Scheme != "amqp" && u.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", u.Scheme))
		}
	}

	if !logging.ValidLevel(c.Logging.Level) {
		problems = append(problems, fmt.Sprintf("invalid log level %q", c.Logging.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
