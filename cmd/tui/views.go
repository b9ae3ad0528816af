package main

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
)

// Login form fields.
const (
	loginFieldLogin = iota
	loginFieldPassword
	loginFieldServer
)

// Order form fields.
const (
	orderFieldSymbol = iota
	orderFieldVolume
	orderFieldSL
	orderFieldTP
	orderFieldComment
)

var loginLabels = []string{"Login", "Password", "Server"}

var orderLabels = []string{"Symbol", "Lots", "Stop loss (pips)", "Take profit (pips)", "Comment"}

func newInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 40
	ti.Prompt = "> "
	ti.SetValue(value)

	return ti
}

// NewLoginInputs creates the login, password and server inputs.
func NewLoginInputs(login int64, password, server string) []textinput.Model {
	loginValue := ""
	if login != 0 {
		loginValue = strconv.FormatInt(login, 10)
	}

	inputs := []textinput.Model{
		newInput("account number", loginValue, 20),
		newInput("password", password, 128),
		newInput("Broker-Server", server, 64),
	}

	inputs[loginFieldPassword].EchoMode = textinput.EchoPassword
	inputs[loginFieldLogin].Focus()

	return inputs
}

// NewOrderInputs creates the order form inputs with their defaults.
func NewOrderInputs(symbol string, volume float64, comment string) []textinput.Model {
	inputs := []textinput.Model{
		newInput("EURUSD", symbol, 20),
		newInput("0.1", trading.FormatNumber(volume), 10),
		newInput("0", "0", 6),
		newInput("0", "0", 6),
		newInput("comment", comment, 64),
	}

	inputs[orderFieldSymbol].Focus()

	return inputs
}

// NewFilterInput creates the filter comment input.
func NewFilterInput(comment string) textinput.Model {
	return newInput("comment", comment, 64)
}

// focusInput focuses inputs[index] and blurs the rest.
func focusInput(inputs []textinput.Model, index int) []textinput.Model {
	for i := range inputs {
		if i == index {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}

	return inputs
}

// NewPositionsTable creates the positions table.
func NewPositionsTable() table.Model {
	columns := []table.Column{
		{Title: "Ticket", Width: 10},
		{Title: "Symbol", Width: 8},
		{Title: "Type", Width: 5},
		{Title: "Volume", Width: 7},
		{Title: "Open", Width: 10},
		{Title: "Current", Width: 10},
		{Title: "Profit", Width: 10},
		{Title: "SL", Width: 9},
		{Title: "TP", Width: 9},
		{Title: "Comment", Width: 18},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateTableRows fills the table with the filtered positions of view.
func UpdateTableRows(t table.Model, view *trading.PositionView) table.Model {
	rows := make([]table.Row, 0, len(view.Positions))

	for _, position := range view.Positions {
		rows = append(rows, table.Row{
			strconv.FormatUint(position.Ticket, 10),
			position.Symbol,
			position.Type.String(),
			trading.FormatNumber(position.Volume),
			trading.FormatNumber(position.PriceOpen),
			trading.FormatNumber(position.PriceCurrent),
			trading.FormatAmount(position.Profit),
			trading.FormatLevel(position.StopLoss()),
			trading.FormatLevel(position.TakeProfit()),
			position.Comment,
		})
	}

	t.SetRows(rows)

	if t.Cursor() >= len(rows) {
		t.SetCursor(max(len(rows)-1, 0))
	}

	return t
}
