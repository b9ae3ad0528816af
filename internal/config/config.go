// Package config loads dashboard configuration from a YAML file, a .env file and
// the environment, in that order of precedence from lowest to highest.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rxtech-lab/mt5-dashboard/internal/terminal"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"github.com/rxtech-lab/mt5-dashboard/pkg/schema"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvLogin     = "MT5_LOGIN"
	EnvPassword  = "MT5_PASSWORD"
	EnvServer    = "MT5_SERVER"
	EnvBridgeURL = "MT5_BRIDGE_URL"
	EnvProvider  = "MT5_PROVIDER"
	EnvListen    = "DASHBOARD_LISTEN"
	EnvLogLevel  = "LOG_LEVEL"
	EnvJournal   = "JOURNAL_PATH"
)

// RefreshIntervals are the auto refresh periods offered, in seconds.
var RefreshIntervals = []int{1, 2, 3, 5, 10, 30}

// DefaultRefreshInterval is the preselected auto refresh period.
const DefaultRefreshInterval = 3

// ValidRefreshInterval reports whether seconds is one of RefreshIntervals.
func ValidRefreshInterval(seconds int) bool {
	for _, interval := range RefreshIntervals {
		if interval == seconds {
			return true
		}
	}

	return false
}

// Config is the dashboard configuration.
type Config struct {
	Listen   string         `yaml:"listen" json:"listen" jsonschema:"title=Listen address,default=127.0.0.1:8501" validate:"required"`
	LogLevel string         `yaml:"logLevel" json:"logLevel" jsonschema:"title=Log level,enum=debug,enum=info,enum=warn,enum=error" validate:"oneof=debug info warn error"`
	Terminal TerminalConfig `yaml:"terminal" json:"terminal"`
	Account  AccountConfig  `yaml:"account" json:"account"`
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`
	Journal  JournalConfig  `yaml:"journal" json:"journal"`
}

// TerminalConfig selects the terminal provider and the fixed order fields.
type TerminalConfig struct {
	Provider        string `yaml:"provider" json:"provider" jsonschema:"title=Provider,enum=mt5-bridge,enum=mt5-mock" validate:"oneof=mt5-bridge mt5-mock"`
	BaseURL         string `yaml:"baseURL" json:"baseURL" jsonschema:"title=Bridge URL" validate:"omitempty,url"`
	TimeoutSeconds  int    `yaml:"timeoutSeconds" json:"timeoutSeconds" jsonschema:"title=Request timeout in seconds" validate:"gte=0"`
	DriftIntervalMs int    `yaml:"driftIntervalMs" json:"driftIntervalMs" jsonschema:"title=Simulated quote drift interval in milliseconds" validate:"gte=0"`
	Deviation       int    `yaml:"deviation" json:"deviation" jsonschema:"title=Maximum slippage in points" validate:"gte=0"`
	Magic           int64  `yaml:"magic" json:"magic" jsonschema:"title=Magic number attached to orders"`
	Filling         string `yaml:"filling" json:"filling" jsonschema:"title=Filling policy,enum=FOK,enum=IOC,enum=RETURN" validate:"oneof=FOK IOC RETURN"`
}

// AccountConfig prefills the connect form.
type AccountConfig struct {
	Login    int64  `yaml:"login" json:"login" jsonschema:"title=Account number" validate:"gte=0"`
	Password string `yaml:"password" json:"-"`
	Server   string `yaml:"server" json:"server" jsonschema:"title=Broker server"`
}

// DefaultsConfig prefills the order form and the refresh controls.
type DefaultsConfig struct {
	Symbol          string  `yaml:"symbol" json:"symbol" jsonschema:"title=Symbol,default=EURUSD" validate:"required"`
	Volume          float64 `yaml:"volume" json:"volume" jsonschema:"title=Lots,default=0.1" validate:"gte=0.01"`
	Comment         string  `yaml:"comment" json:"comment" jsonschema:"title=Order comment,default=Dashboard Trade"`
	AutoRefresh     bool    `yaml:"autoRefresh" json:"autoRefresh" jsonschema:"title=Auto refresh"`
	RefreshInterval int     `yaml:"refreshInterval" json:"refreshInterval" jsonschema:"title=Refresh interval in seconds,enum=1,enum=2,enum=3,enum=5,enum=10,enum=30" validate:"oneof=1 2 3 5 10 30"`
}

// JournalConfig enables the order journal.
type JournalConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"title=Record order requests"`
	Path    string `yaml:"path" json:"path" jsonschema:"title=Parquet file path" validate:"required_if=Enabled true"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Listen:   "127.0.0.1:8501",
		LogLevel: "info",
		Terminal: TerminalConfig{
			Provider:        string(terminal.ProviderBridge),
			BaseURL:         terminal.DefaultBaseURL,
			TimeoutSeconds:  terminal.DefaultTimeoutSeconds,
			DriftIntervalMs: 0,
			Deviation:       types.DefaultDeviation,
			Magic:           types.DefaultMagic,
			Filling:         "IOC",
		},
		Account: AccountConfig{
			Login:    0,
			Password: "",
			Server:   "",
		},
		Defaults: DefaultsConfig{
			Symbol:          "EURUSD",
			Volume:          0.1,
			Comment:         types.DefaultComment,
			AutoRefresh:     false,
			RefreshInterval: DefaultRefreshInterval,
		},
		Journal: JournalConfig{
			Enabled: false,
			Path:    "data/journal.parquet",
		},
	}
}

// Load builds the configuration. path may be empty; a missing .env is ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to parse config file %s", path)
		}
	}

	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if value := os.Getenv(EnvLogin); value != "" {
		login, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "%s must be an account number", EnvLogin)
		}

		c.Account.Login = login
	}

	c.Account.Password = getEnv(EnvPassword, c.Account.Password)
	c.Account.Server = getEnv(EnvServer, c.Account.Server)
	c.Terminal.BaseURL = getEnv(EnvBridgeURL, c.Terminal.BaseURL)
	c.Terminal.Provider = getEnv(EnvProvider, c.Terminal.Provider)
	c.Listen = getEnv(EnvListen, c.Listen)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)

	if value := os.Getenv(EnvJournal); value != "" {
		c.Journal.Enabled = true
		c.Journal.Path = value
	}

	return nil
}

// Validate validates the Config struct.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid configuration", err)
	}

	return nil
}

// Credentials returns the configured account.
func (c *Config) Credentials() types.Credentials {
	return types.Credentials{
		Login:    c.Account.Login,
		Password: c.Account.Password,
		Server:   c.Account.Server,
	}
}

// OrderDefaults returns the fixed order fields for the desk.
func (c *Config) OrderDefaults() (trading.OrderDefaults, error) {
	filling, err := types.ParseOrderFilling(c.Terminal.Filling)
	if err != nil {
		return trading.OrderDefaults{}, err
	}

	return trading.OrderDefaults{
		Deviation: c.Terminal.Deviation,
		Magic:     c.Terminal.Magic,
		Filling:   filling,
	}, nil
}

// ProviderConfig returns the typed config for terminal.NewTerminal.
func (c *Config) ProviderConfig() (terminal.ProviderType, any, error) {
	switch terminal.ProviderType(c.Terminal.Provider) {
	case terminal.ProviderBridge:
		return terminal.ProviderBridge, &terminal.BridgeConfig{
			BaseURL:        c.Terminal.BaseURL,
			TimeoutSeconds: c.Terminal.TimeoutSeconds,
		}, nil
	case terminal.ProviderMock:
		return terminal.ProviderMock, &terminal.MockConfig{
			DriftIntervalMs: c.Terminal.DriftIntervalMs,
			Seed:            0,
		}, nil
	default:
		return "", nil, errors.Newf(errors.ErrCodeInvalidProvider, "unsupported terminal provider: %s", c.Terminal.Provider)
	}
}

// Schema returns the JSON schema of the configuration file.
func Schema() (string, error) {
	return schema.ToIndentedJSONSchema(Default())
}

// Marshal renders the configuration as YAML, without the password.
func (c *Config) Marshal() (string, error) {
	redacted := *c
	if redacted.Account.Password != "" {
		redacted.Account.Password = "********"
	}

	data, err := yaml.Marshal(redacted)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}

	return string(data), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
