package trading

import (
	"fmt"
	"strconv"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/internal/utils"
)

// Footer is shown under every surface.
var Footer = []string{
	"WARNING: This is a real trading application. Use with caution!",
	"TIP: Use unique comments to identify trades from this application and filter them easily!",
}

// PositionView is one render of the positions panel.
type PositionView struct {
	Filter        Filter           `json:"filter"`
	Total         int              `json:"total"`
	Positions     []types.Position `json:"positions"`
	FilteredCount int              `json:"filteredCount"`
	TotalProfit   float64          `json:"totalProfit"`
}

// NewPositionView filters positions and sums the profit of what remains.
// A nil slice from the terminal is treated as no positions.
func NewPositionView(positions []types.Position, filter Filter) *PositionView {
	filtered := filter.Apply(positions)

	profits := make([]float64, 0, len(filtered))
	for _, position := range filtered {
		profits = append(profits, position.Profit)
	}

	return &PositionView{
		Filter:        filter,
		Total:         len(positions),
		Positions:     filtered,
		FilteredCount: len(filtered),
		TotalProfit:   utils.SumFloats(profits...),
	}
}

// Caption is the count line above the list.
func (v *PositionView) Caption() string {
	if v.Filter.Active() {
		return fmt.Sprintf("Filtered positions: %d / %d total", v.FilteredCount, v.Total)
	}

	return fmt.Sprintf("Total positions: %d", v.Total)
}

// HasCaption reports whether anything was returned by the terminal.
func (v *PositionView) HasCaption() bool {
	return v.Total > 0
}

// Empty returns the notice shown instead of the list, if any.
func (v *PositionView) Empty() (Notice, bool) {
	if v.Total == 0 {
		return Notice{Level: LevelInfo, Text: "No open positions"}, true
	}

	if v.FilteredCount == 0 {
		if v.Filter.Enabled {
			return Notice{Level: LevelWarning, Text: "No positions found with comment '" + v.Filter.Comment + "'"}, true
		}

		return Notice{Level: LevelInfo, Text: "No open positions"}, true
	}

	return Notice{}, false
}

// InProfit reports whether the filtered total is non-negative.
func (v *PositionView) InProfit() bool {
	return v.TotalProfit >= 0
}

// ProfitLabel is the formatted filtered total.
func (v *PositionView) ProfitLabel() string {
	return formatAmount(v.TotalProfit)
}

// CanCloseAll reports whether the close-all action is offered.
func (v *PositionView) CanCloseAll() bool {
	return v.FilteredCount > 1
}

// Find returns the filtered position with ticket.
func (v *PositionView) Find(ticket uint64) (types.Position, bool) {
	for _, position := range v.Positions {
		if position.Ticket == ticket {
			return position, true
		}
	}

	return types.Position{}, false
}

// FormatLevel renders an SL or TP level, "N/A" when unset.
func FormatLevel(level optional.Option[float64]) string {
	if level.IsNone() {
		return "N/A"
	}

	return formatNumber(level.Unwrap())
}

// FormatAmount renders money with two decimals.
func FormatAmount(v float64) string {
	return formatAmount(v)
}

// FormatNumber renders a price or volume without trailing zeros.
func FormatNumber(v float64) string {
	return formatNumber(v)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatTicket(ticket uint64) string {
	return strconv.FormatUint(ticket, 10)
}

func formatCount(n int) string {
	return strconv.Itoa(n)
}
