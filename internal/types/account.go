package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
)

// AccountInfo is the account snapshot taken after a successful login.
type AccountInfo struct {
	// Login is the trading account number
	Login int64 `json:"login" yaml:"login"`
	// Balance is the current cash balance (excluding floating P&L)
	Balance float64 `json:"balance" yaml:"balance"`
	// Equity is balance plus floating P&L of open positions
	Equity float64 `json:"equity" yaml:"equity"`
	// Profit is the floating P&L of open positions
	Profit float64 `json:"profit" yaml:"profit"`
	// Margin is the margin currently in use
	Margin float64 `json:"margin" yaml:"margin"`
	// MarginFree is the margin available for new positions
	MarginFree float64 `json:"margin_free" yaml:"margin_free"`
	// Currency is the deposit currency
	Currency string `json:"currency" yaml:"currency"`
	Server   string `json:"server" yaml:"server"`
	Name     string `json:"name" yaml:"name"`
}

// Credentials identify a trading account on a broker server.
type Credentials struct {
	Login    int64  `json:"login" yaml:"login" validate:"gte=0"`
	Password string `json:"password" yaml:"password"`
	Server   string `json:"server" yaml:"server"`
}

// Validate validates the Credentials struct.
func (c *Credentials) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidCredentials, "invalid credentials", err)
	}

	return nil
}

// TerminalError is the terminal's last_error pair.
type TerminalError struct {
	Code    int    `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
}

// String renders the pair the way the terminal prints it.
func (e TerminalError) String() string {
	return fmt.Sprintf("(%d, '%s')", e.Code, e.Message)
}
