// Package terminal talks to an MT5 trading terminal through a local bridge process.
package terminal

import (
	"context"

	"github.com/rxtech-lab/mt5-dashboard/internal/types"
)

// Terminal is the subset of the terminal API the dashboard uses.
// Calls the terminal answers with False/None come back as false or nil with a nil
// error; the reason is then available from LastError. A non-nil error means the
// bridge could not be reached.
type Terminal interface {
	// Version returns the bridge protocol version
	Version(ctx context.Context) (string, error)
	// Initialize attaches to the terminal process
	Initialize(ctx context.Context) (bool, error)
	// Login authorizes a trading account
	Login(ctx context.Context, credentials types.Credentials) (bool, error)
	// Shutdown detaches from the terminal
	Shutdown(ctx context.Context) error
	// LastError returns the code and message of the last failed call
	LastError(ctx context.Context) (types.TerminalError, error)
	// AccountInfo returns the logged-in account, nil if unavailable
	AccountInfo(ctx context.Context) (*types.AccountInfo, error)
	// SymbolInfo returns the symbol specification, nil if unknown
	SymbolInfo(ctx context.Context, symbol string) (*types.SymbolInfo, error)
	// SymbolSelect shows or hides a symbol in Market Watch
	SymbolSelect(ctx context.Context, symbol string, enable bool) (bool, error)
	// SymbolInfoTick returns the latest quote, nil if unavailable
	SymbolInfoTick(ctx context.Context, symbol string) (*types.Tick, error)
	// OrderSend submits a trade request, nil result if the terminal produced none
	OrderSend(ctx context.Context, request types.TradeRequest) (*types.TradeResult, error)
	// PositionsGet returns all open positions, nil if unavailable
	PositionsGet(ctx context.Context) ([]types.Position, error)
}
