package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
)

// Application states.
const (
	StateLogin = iota
	StateDashboard
	StateOrderForm
	StateFilterInput
)

// callTimeout bounds every desk call made from a command.
const callTimeout = 15 * time.Second

// Options prefill the forms.
type Options struct {
	Login           int64
	Password        string
	Server          string
	Symbol          string
	Volume          float64
	Comment         string
	AutoRefresh     bool
	RefreshInterval time.Duration
}

// Model is the main Bubble Tea model for the trading terminal UI.
type Model struct {
	state       int
	desk        *trading.Desk
	loginInputs []textinput.Model
	loginFocus  int
	orderInputs []textinput.Model
	orderFocus  int
	orderSide   types.OrderType
	filterInput textinput.Model
	filter      trading.Filter
	dataTable   table.Model
	view        *trading.PositionView
	notices     []trading.Notice
	busy        bool
	autoRefresh bool
	interval    time.Duration
	width       int
	height      int
}

// NewModel creates a new Model in the login state.
func NewModel(desk *trading.Desk, options Options) Model {
	if options.Symbol == "" {
		options.Symbol = "EURUSD"
	}

	if options.Volume <= 0 {
		options.Volume = 0.1
	}

	if options.Comment == "" {
		options.Comment = types.DefaultComment
	}

	if options.RefreshInterval <= 0 {
		options.RefreshInterval = 3 * time.Second
	}

	return Model{
		state:       StateLogin,
		desk:        desk,
		loginInputs: NewLoginInputs(options.Login, options.Password, options.Server),
		loginFocus:  loginFieldLogin,
		orderInputs: NewOrderInputs(options.Symbol, options.Volume, options.Comment),
		orderFocus:  orderFieldSymbol,
		orderSide:   types.OrderTypeBuy,
		filterInput: NewFilterInput(options.Comment),
		filter:      trading.Filter{Enabled: false, Comment: options.Comment},
		dataTable:   NewPositionsTable(),
		view:        nil,
		notices:     nil,
		busy:        false,
		autoRefresh: options.AutoRefresh,
		interval:    options.RefreshInterval,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// Only quit on 'q' outside of text input
			if m.state == StateDashboard {
				return m, tea.Quit
			}
		case "esc":
			return m.handleEsc()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dataTable.SetWidth(msg.Width)
		m.dataTable.SetHeight(max(msg.Height-16, 3))

		return m, nil

	case ConnectedMsg:
		m.busy = false

		if msg.Err != nil {
			m.notices = []trading.Notice{errorNotice(msg.Err)}

			return m, nil
		}

		m.notices = msg.Result.Notices()
		m.state = StateDashboard
		m.loginInputs[loginFieldPassword].SetValue("")

		return m, tea.Batch(m.fetchPositions(), m.scheduleTick())

	case DisconnectedMsg:
		m.busy = false
		m.notices = []trading.Notice{msg.Notice}
		m.view = nil
		m.state = StateLogin
		m.loginInputs = focusInput(m.loginInputs, m.loginFocus)

		return m, textinput.Blink

	case PositionsMsg:
		if msg.Err != nil {
			m.view = nil
			m.notices = append(m.notices, errorNotice(msg.Err))

			return m, nil
		}

		m.view = msg.View
		m.dataTable = UpdateTableRows(m.dataTable, msg.View)

		return m, nil

	case NoticesMsg:
		m.busy = false
		m.notices = msg.Notices

		if msg.Comment != "" {
			m.filter.Comment = msg.Comment
			m.filterInput.SetValue(msg.Comment)
		}

		if msg.Refresh {
			return m, m.fetchPositions()
		}

		return m, nil

	case TickMsg:
		if m.state == StateLogin || !m.autoRefresh {
			return m, nil
		}

		return m, tea.Batch(m.fetchPositions(), m.scheduleTick())
	}

	// Delegate to state-specific update
	switch m.state {
	case StateLogin:
		return m.updateLogin(msg)
	case StateDashboard:
		return m.updateDashboard(msg)
	case StateOrderForm:
		return m.updateOrderForm(msg)
	case StateFilterInput:
		return m.updateFilterInput(msg)
	}

	return m, nil
}

func (m Model) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case StateOrderForm, StateFilterInput:
		m.orderInputs = focusInput(m.orderInputs, -1)
		m.filterInput.Blur()
		m.state = StateDashboard
	}

	return m, nil
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			m.loginFocus = (m.loginFocus + 1) % len(m.loginInputs)
			m.loginInputs = focusInput(m.loginInputs, m.loginFocus)

			return m, nil
		case "shift+tab", "up":
			m.loginFocus = (m.loginFocus + len(m.loginInputs) - 1) % len(m.loginInputs)
			m.loginInputs = focusInput(m.loginInputs, m.loginFocus)

			return m, nil
		case "enter":
			if m.busy {
				return m, nil
			}

			credentials, err := m.credentials()
			if err != nil {
				m.notices = []trading.Notice{errorNotice(err)}

				return m, nil
			}

			m.busy = true
			m.notices = nil

			return m, m.connect(credentials)
		}
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)

	return m, cmd
}

func (m Model) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "b":
			return m.openOrderForm(types.OrderTypeBuy)
		case "s":
			return m.openOrderForm(types.OrderTypeSell)
		case "c":
			return m.closeSelected()
		case "A":
			if m.busy || m.view == nil || !m.view.CanCloseAll() {
				return m, nil
			}

			m.busy = true

			return m, m.closeAll()
		case "f":
			m.filter.Enabled = !m.filter.Enabled

			return m, m.fetchPositions()
		case "/":
			m.state = StateFilterInput
			m.filterInput.SetValue(m.filter.Comment)
			m.filterInput.CursorEnd()

			return m, m.filterInput.Focus()
		case "r":
			return m, m.fetchPositions()
		case "t":
			m.autoRefresh = !m.autoRefresh
			if m.autoRefresh {
				return m, m.scheduleTick()
			}

			return m, nil
		case "d":
			m.busy = true

			return m, m.disconnect()
		}
	}

	var cmd tea.Cmd
	m.dataTable, cmd = m.dataTable.Update(msg)

	return m, cmd
}

func (m Model) openOrderForm(side types.OrderType) (tea.Model, tea.Cmd) {
	m.orderSide = side
	m.orderFocus = orderFieldSymbol
	m.orderInputs = focusInput(m.orderInputs, m.orderFocus)
	m.state = StateOrderForm

	return m, textinput.Blink
}

func (m Model) updateOrderForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "tab", "down":
			m.orderFocus = (m.orderFocus + 1) % len(m.orderInputs)
			m.orderInputs = focusInput(m.orderInputs, m.orderFocus)

			return m, nil
		case "shift+tab", "up":
			m.orderFocus = (m.orderFocus + len(m.orderInputs) - 1) % len(m.orderInputs)
			m.orderInputs = focusInput(m.orderInputs, m.orderFocus)

			return m, nil
		case "enter":
			ticket, err := m.orderTicket()
			if err != nil {
				m.notices = []trading.Notice{errorNotice(err)}

				return m, nil
			}

			m.busy = true
			m.state = StateDashboard
			m.orderInputs = focusInput(m.orderInputs, -1)

			return m, m.placeOrder(ticket)
		}
	}

	var cmd tea.Cmd
	m.orderInputs[m.orderFocus], cmd = m.orderInputs[m.orderFocus].Update(msg)

	return m, cmd
}

func (m Model) updateFilterInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		m.filter.Comment = strings.TrimSpace(m.filterInput.Value())
		m.filter.Enabled = true
		m.filterInput.Blur()
		m.state = StateDashboard

		return m, m.fetchPositions()
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)

	return m, cmd
}

func (m Model) closeSelected() (tea.Model, tea.Cmd) {
	if m.busy || m.view == nil || len(m.view.Positions) == 0 {
		return m, nil
	}

	row := m.dataTable.SelectedRow()
	if row == nil {
		return m, nil
	}

	ticket, err := strconv.ParseUint(row[0], 10, 64)
	if err != nil {
		return m, nil
	}

	m.busy = true

	return m, m.closePosition(ticket)
}

func (m Model) credentials() (types.Credentials, error) {
	login := int64(0)

	if value := strings.TrimSpace(m.loginInputs[loginFieldLogin].Value()); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return types.Credentials{}, errors.New(errors.ErrCodeInvalidCredentials, "Login must be an account number")
		}

		login = parsed
	}

	return types.Credentials{
		Login:    login,
		Password: m.loginInputs[loginFieldPassword].Value(),
		Server:   strings.TrimSpace(m.loginInputs[loginFieldServer].Value()),
	}, nil
}

func (m Model) orderTicket() (types.OrderTicket, error) {
	volume, err := strconv.ParseFloat(strings.TrimSpace(m.orderInputs[orderFieldVolume].Value()), 64)
	if err != nil {
		return types.OrderTicket{}, errors.New(errors.ErrCodeInvalidOrderTicket, "Lots must be a number")
	}

	sl, err := parsePips(m.orderInputs[orderFieldSL].Value())
	if err != nil {
		return types.OrderTicket{}, err
	}

	tp, err := parsePips(m.orderInputs[orderFieldTP].Value())
	if err != nil {
		return types.OrderTicket{}, err
	}

	return types.OrderTicket{
		Side:           m.orderSide,
		Symbol:         strings.ToUpper(strings.TrimSpace(m.orderInputs[orderFieldSymbol].Value())),
		Volume:         volume,
		StopLossPips:   sl,
		TakeProfitPips: tp,
		Comment:        strings.TrimSpace(m.orderInputs[orderFieldComment].Value()),
	}, nil
}

func parsePips(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}

	pips, err := strconv.Atoi(value)
	if err != nil || pips < 0 {
		return 0, errors.New(errors.ErrCodeInvalidOrderTicket, "Pips must be a whole number of at least 0")
	}

	return pips, nil
}

func errorNotice(err error) trading.Notice {
	return trading.Notice{Level: trading.LevelError, Text: errors.Message(err)}
}

func (m Model) scheduleTick() tea.Cmd {
	if !m.autoRefresh {
		return nil
	}

	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) connect(credentials types.Credentials) tea.Cmd {
	desk := m.desk

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		result, err := desk.Connect(ctx, credentials)

		return ConnectedMsg{Result: result, Err: err}
	}
}

func (m Model) disconnect() tea.Cmd {
	desk := m.desk

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		return DisconnectedMsg{Notice: desk.Disconnect(ctx)}
	}
}

func (m Model) fetchPositions() tea.Cmd {
	desk := m.desk
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		view, err := desk.Positions(ctx, filter)

		return PositionsMsg{View: view, Err: err}
	}
}

func (m Model) placeOrder(ticket types.OrderTicket) tea.Cmd {
	desk := m.desk

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		receipt, err := desk.PlaceOrder(ctx, ticket)
		if err != nil {
			return NoticesMsg{Notices: []trading.Notice{errorNotice(err)}, Refresh: false, Comment: ticket.Comment}
		}

		return NoticesMsg{Notices: receipt.Notices(), Refresh: true, Comment: ticket.Comment}
	}
}

func (m Model) closePosition(ticket uint64) tea.Cmd {
	desk := m.desk

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		receipt, err := desk.ClosePosition(ctx, ticket)
		if err != nil {
			return NoticesMsg{Notices: []trading.Notice{errorNotice(err)}, Refresh: true, Comment: ""}
		}

		return NoticesMsg{Notices: receipt.Notices(), Refresh: true, Comment: ""}
	}
}

func (m Model) closeAll() tea.Cmd {
	desk := m.desk
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		summary, err := desk.CloseAll(ctx, filter, nil)
		if err != nil {
			return NoticesMsg{Notices: []trading.Notice{errorNotice(err)}, Refresh: true, Comment: ""}
		}

		return NoticesMsg{Notices: summary.Notices(), Refresh: true, Comment: ""}
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateLogin:
		s.WriteString(TitleStyle.Render("MT5 Login"))
		s.WriteString("\n\n")

		for i, input := range m.loginInputs {
			s.WriteString(loginLabels[i] + "\n")
			s.WriteString(input.View())
			s.WriteString("\n")
		}

		s.WriteString("\n")
		m.writeNotices(&s)

		if m.busy {
			s.WriteString("Connecting...\n")
		}

		s.WriteString(HelpStyle.Render("Tab: next field | Enter: connect | Ctrl+C: quit"))

	case StateDashboard:
		m.writeHeader(&s)
		m.writeNotices(&s)
		m.writePositions(&s)
		s.WriteString("\n")

		for _, line := range trading.Footer {
			s.WriteString(HelpStyle.Render(line))
			s.WriteString("\n")
		}

		s.WriteString(HelpStyle.Render("b: buy | s: sell | c: close | A: close all | f: filter on/off | /: filter comment | r: refresh | t: auto refresh | d: disconnect | q: quit"))

	case StateOrderForm:
		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s order", m.orderSide)))
		s.WriteString("\n\n")

		for i, input := range m.orderInputs {
			s.WriteString(orderLabels[i] + "\n")
			s.WriteString(input.View())
			s.WriteString("\n")
		}

		s.WriteString("\n")
		m.writeNotices(&s)
		s.WriteString(HelpStyle.Render("Tab: next field | Enter: send | Esc: back"))

	case StateFilterInput:
		m.writeHeader(&s)
		s.WriteString("Filter comment\n")
		s.WriteString(m.filterInput.View())
		s.WriteString("\n\n")
		s.WriteString(HelpStyle.Render("Enter: apply | Esc: back"))
	}

	return s.String()
}

func (m Model) writeHeader(s *strings.Builder) {
	status := m.desk.Status()

	s.WriteString(TitleStyle.Render("MT5 Trading Dashboard"))
	s.WriteString("  " + status.Label())

	if status.Account != nil {
		fmt.Fprintf(s, "  %d  Balance: %s %s  Equity: %s %s",
			status.Account.Login,
			trading.FormatAmount(status.Account.Balance), status.Account.Currency,
			trading.FormatAmount(status.Account.Equity), status.Account.Currency,
		)
	}

	s.WriteString("\n")

	if m.autoRefresh {
		fmt.Fprintf(s, "Auto refresh every %s\n", m.interval)
	}

	s.WriteString(RenderNotice(m.filter.Notice()))
	s.WriteString("\n\n")
}

func (m Model) writeNotices(s *strings.Builder) {
	for _, notice := range m.notices {
		s.WriteString(RenderNotice(notice))
		s.WriteString("\n")
	}

	if len(m.notices) > 0 {
		s.WriteString("\n")
	}
}

func (m Model) writePositions(s *strings.Builder) {
	if m.view == nil {
		s.WriteString("Loading positions...\n")

		return
	}

	if m.view.HasCaption() {
		s.WriteString(m.view.Caption())
		s.WriteString("\n")
	}

	if notice, empty := m.view.Empty(); empty {
		s.WriteString(RenderNotice(notice))
		s.WriteString("\n")

		return
	}

	fmt.Fprintf(s, "Total profit: %s\n\n", RenderProfit(m.view))
	s.WriteString(m.dataTable.View())
	s.WriteString("\n")
}
