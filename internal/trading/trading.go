// Package trading is the dashboard's trading desk: connection state, market
// orders, position listing with comment filtering, and closing.
package trading

import (
	"context"

	"github.com/rxtech-lab/mt5-dashboard/internal/types"
)

// Journal records every order request the desk sends.
type Journal interface {
	// Record stores one request and its outcome
	Record(ctx context.Context, entry types.JournalEntry) error
}

// Level is the severity of a notice shown to the user.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is one line of user feedback.
type Notice struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Filter selects positions by exact comment equality.
type Filter struct {
	Enabled bool   `json:"enabled"`
	Comment string `json:"comment"`
}

// Active reports whether the filter restricts the list.
func (f Filter) Active() bool {
	return f.Enabled && f.Comment != ""
}

// Match reports whether a position passes the filter.
func (f Filter) Match(position types.Position) bool {
	if !f.Active() {
		return true
	}

	return position.Comment == f.Comment
}

// Apply returns the positions that pass the filter, in input order.
func (f Filter) Apply(positions []types.Position) []types.Position {
	if !f.Active() {
		result := make([]types.Position, len(positions))
		copy(result, positions)

		return result
	}

	result := make([]types.Position, 0, len(positions))
	for _, position := range positions {
		if position.Comment == f.Comment {
			result = append(result, position)
		}
	}

	return result
}

// Notice describes the filter the way the sidebar shows it. An enabled filter
// is announced even while its comment is empty.
func (f Filter) Notice() Notice {
	if f.Enabled {
		return Notice{Level: LevelInfo, Text: "Active filter: '" + f.Comment + "'"}
	}

	return Notice{Level: LevelInfo, Text: "Showing all positions"}
}
