package main

import (
	"time"

	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
)

// ConnectedMsg carries the outcome of a login attempt.
type ConnectedMsg struct {
	Result *trading.ConnectResult
	Err    error
}

// PositionsMsg carries a fresh position view.
type PositionsMsg struct {
	View *trading.PositionView
	Err  error
}

// NoticesMsg carries feedback from an order or closure.
// Refresh asks the model to reload positions afterwards.
type NoticesMsg struct {
	Notices []trading.Notice
	Refresh bool
	// Comment is the comment of a placed order, adopted as the filter comment
	Comment string
}

// DisconnectedMsg signals that the terminal was shut down.
type DisconnectedMsg struct {
	Notice trading.Notice
}

// TickMsg drives auto refresh.
type TickMsg time.Time
