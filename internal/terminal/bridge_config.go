package terminal

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
)

const (
	// DefaultBaseURL is where the bridge listens unless configured otherwise.
	DefaultBaseURL = "http://127.0.0.1:18812"
	// DefaultTimeoutSeconds bounds every bridge request.
	DefaultTimeoutSeconds = 10
)

// BridgeConfig contains configuration for the terminal bridge client.
type BridgeConfig struct {
	BaseURL        string `json:"baseURL" yaml:"baseURL" jsonschema:"title=Bridge URL,description=Base URL of the terminal bridge,default=http://127.0.0.1:18812" validate:"required,url"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds" jsonschema:"title=Timeout,description=Request timeout in seconds,default=10" validate:"gte=0"`
}

// Validate validates the BridgeConfig struct.
func (c *BridgeConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid mt5 bridge config", err)
	}

	return nil
}

// Timeout returns the request timeout, falling back to the default.
func (c BridgeConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}

	return time.Duration(c.TimeoutSeconds) * time.Second
}

// parseBridgeConfig parses a JSON configuration string into a BridgeConfig.
func parseBridgeConfig(jsonConfig string) (*BridgeConfig, error) {
	var config BridgeConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse mt5 bridge config", err)
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// MockConfig contains configuration for the simulated terminal.
type MockConfig struct {
	DriftIntervalMs int   `json:"driftIntervalMs" yaml:"driftIntervalMs" jsonschema:"title=Drift Interval,description=Milliseconds between random quote moves (0 disables)" validate:"gte=0"`
	Seed            int64 `json:"seed" yaml:"seed" jsonschema:"title=Seed,description=Random seed for quote moves"`
}

// Validate validates the MockConfig struct.
func (c *MockConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid mt5 mock config", err)
	}

	return nil
}

// DriftInterval returns the quote drift interval.
func (c MockConfig) DriftInterval() time.Duration {
	return time.Duration(c.DriftIntervalMs) * time.Millisecond
}

func parseMockConfig(jsonConfig string) (*MockConfig, error) {
	var config MockConfig
	if err := json.Unmarshal([]byte(jsonConfig), &config); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse mt5 mock config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}
