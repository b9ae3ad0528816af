package trading

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/terminal"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/internal/utils"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"go.uber.org/zap"
)

// MsgNotConnected is shown when an order is attempted without a login.
const MsgNotConnected = "You are not connected to MT5! Connect from the sidebar."

// MsgConnectToView is shown in place of the position list without a login.
const MsgConnectToView = "Connect to MT5 to view positions"

// OrderDefaults are the fixed fields of every request the desk sends.
type OrderDefaults struct {
	Deviation int
	Magic     int64
	Filling   types.OrderFilling
}

// DefaultOrderDefaults returns deviation 20, magic 234000 and IOC filling.
func DefaultOrderDefaults() OrderDefaults {
	return OrderDefaults{
		Deviation: types.DefaultDeviation,
		Magic:     types.DefaultMagic,
		Filling:   types.OrderFillingIOC,
	}
}

// Option configures a Desk.
type Option func(*Desk)

// WithLogger sets the desk logger.
func WithLogger(log *logger.Logger) Option {
	return func(d *Desk) {
		if log != nil {
			d.log = log
		}
	}
}

// WithJournal records every order request in journal.
func WithJournal(journal Journal) Option {
	return func(d *Desk) {
		d.journal = journal
	}
}

// WithOrderDefaults overrides deviation, magic and filling.
func WithOrderDefaults(defaults OrderDefaults) Option {
	return func(d *Desk) {
		d.defaults = defaults
	}
}

// Status is the connection state shown in the sidebar.
type Status struct {
	Connected bool               `json:"connected"`
	Account   *types.AccountInfo `json:"account,omitempty"`
}

// Label returns "Connected" or "Not connected".
func (s Status) Label() string {
	if s.Connected {
		return "Connected"
	}

	return "Not connected"
}

// Desk owns the connection to one terminal. The terminal API is process-global,
// so every terminal call is serialized.
type Desk struct {
	terminal terminal.Terminal
	log      *logger.Logger
	journal  Journal
	defaults OrderDefaults

	// callMu serializes terminal calls
	callMu sync.Mutex
	// stateMu guards connected and account
	stateMu   sync.RWMutex
	connected bool
	account   *types.AccountInfo
}

// NewDesk creates a desk over term.
func NewDesk(term terminal.Terminal, opts ...Option) *Desk {
	desk := &Desk{
		terminal:  term,
		log:       logger.NewNop(),
		journal:   nil,
		defaults:  DefaultOrderDefaults(),
		connected: false,
		account:   nil,
	}

	for _, opt := range opts {
		opt(desk)
	}

	return desk
}

// Status returns the connection flag and a copy of the account snapshot.
func (d *Desk) Status() Status {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()

	status := Status{Connected: d.connected, Account: nil}
	if d.account != nil {
		account := *d.account
		status.Account = &account
	}

	return status
}

// IsConnected reports whether a login succeeded and no disconnect followed.
func (d *Desk) IsConnected() bool {
	d.stateMu.RLock()
	defer d.stateMu.RUnlock()

	return d.connected
}

func (d *Desk) setState(connected bool, account *types.AccountInfo) {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()

	d.connected = connected
	d.account = account
}

// ConnectResult is a successful login.
type ConnectResult struct {
	Account *types.AccountInfo
}

// Notices renders the result the way the sidebar shows it.
func (r *ConnectResult) Notices() []Notice {
	notices := []Notice{{Level: LevelSuccess, Text: "Connection successful!"}}

	if r.Account != nil {
		notices = append(notices,
			Notice{Level: LevelInfo, Text: "Balance: " + formatAmount(r.Account.Balance) + " " + r.Account.Currency},
			Notice{Level: LevelInfo, Text: "Equity: " + formatAmount(r.Account.Equity) + " " + r.Account.Currency},
		)
	}

	return notices
}

// Connect initializes the terminal and logs in.
func (d *Desk) Connect(ctx context.Context, credentials types.Credentials) (*ConnectResult, error) {
	if err := credentials.Validate(); err != nil {
		return nil, err
	}

	d.callMu.Lock()
	defer d.callMu.Unlock()

	ok, err := d.terminal.Initialize(ctx)
	if err != nil {
		d.setState(false, nil)

		return nil, errors.Wrapf(errors.ErrCodeTerminalInitFailed, err, "MT5 initialization failed: %s", errors.Message(err))
	}

	if !ok {
		d.setState(false, nil)

		return nil, errors.Newf(errors.ErrCodeTerminalInitFailed, "MT5 initialization failed: %s", d.lastError(ctx))
	}

	ok, err = d.terminal.Login(ctx, credentials)
	if err != nil {
		d.setState(false, nil)

		return nil, errors.Wrapf(errors.ErrCodeLoginFailed, err, "Login failed: %s", errors.Message(err))
	}

	if !ok {
		d.setState(false, nil)
		d.log.Warn("login failed", zap.Int64("login", credentials.Login), zap.String("server", credentials.Server))

		return nil, errors.Newf(errors.ErrCodeLoginFailed, "Login failed: %s", d.lastError(ctx))
	}

	account, err := d.terminal.AccountInfo(ctx)
	if err != nil {
		d.log.Warn("account info unavailable after login", zap.Error(err))

		account = nil
	}

	d.setState(true, account)
	d.log.Info("connected",
		zap.Int64("login", credentials.Login),
		zap.String("server", credentials.Server),
	)

	return &ConnectResult{Account: account}, nil
}

// Disconnect shuts the terminal down. The desk is disconnected even if shutdown fails.
func (d *Desk) Disconnect(ctx context.Context) Notice {
	d.callMu.Lock()
	defer d.callMu.Unlock()

	if err := d.terminal.Shutdown(ctx); err != nil {
		d.log.Warn("terminal shutdown failed", zap.Error(err))
	}

	d.setState(false, nil)
	d.log.Info("disconnected")

	return Notice{Level: LevelInfo, Text: "Disconnected from MT5"}
}

// OrderReceipt describes an executed market order.
type OrderReceipt struct {
	Side    types.OrderType    `json:"side"`
	Symbol  string             `json:"symbol"`
	Ticket  uint64             `json:"ticket"`
	Volume  float64            `json:"volume"`
	Price   float64            `json:"price"`
	SL      float64            `json:"sl"`
	TP      float64            `json:"tp"`
	Comment string             `json:"comment"`
	Result  *types.TradeResult `json:"result"`
}

// Notices renders the receipt the way the trading panel shows it.
func (r *OrderReceipt) Notices() []Notice {
	return []Notice{
		{Level: LevelSuccess, Text: r.Side.String() + " order executed successfully!"},
		{Level: LevelInfo, Text: "Ticket: " + formatTicket(r.Ticket)},
		{Level: LevelInfo, Text: "Volume: " + formatNumber(r.Volume) + " lots"},
		{Level: LevelInfo, Text: "Price: " + formatNumber(r.Price)},
	}
}

// PlaceOrder sends a market order built from ticket.
func (d *Desk) PlaceOrder(ctx context.Context, ticket types.OrderTicket) (*OrderReceipt, error) {
	d.callMu.Lock()
	defer d.callMu.Unlock()

	if !d.IsConnected() {
		return nil, errors.New(errors.ErrCodeNotConnected, MsgNotConnected)
	}

	if err := ticket.Validate(); err != nil {
		return nil, err
	}

	side := ticket.Side.String()

	info, err := d.terminal.SymbolInfo(ctx, ticket.Symbol)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeTerminalUnavailable, err, "Error: %s", errors.Message(err))
	}

	if info == nil {
		return nil, errors.Newf(errors.ErrCodeSymbolNotFound, "Symbol %s not found", ticket.Symbol)
	}

	if !info.Visible {
		selected, err := d.terminal.SymbolSelect(ctx, ticket.Symbol, true)
		if err != nil || !selected {
			return nil, errors.Wrapf(errors.ErrCodeSymbolSelectFailed, err, "Cannot select symbol %s", ticket.Symbol)
		}
	}

	tick, err := d.terminal.SymbolInfoTick(ctx, ticket.Symbol)
	if err != nil || tick == nil {
		return nil, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "Cannot get price for %s", ticket.Symbol)
	}

	price := tick.Ask
	slDirection, tpDirection := -1, 1

	if ticket.Side == types.OrderTypeSell {
		price = tick.Bid
		slDirection, tpDirection = 1, -1
	}

	request := types.TradeRequest{
		Action:      types.TradeActionDeal,
		Symbol:      ticket.Symbol,
		Volume:      ticket.Volume,
		Type:        ticket.Side,
		Position:    0,
		Price:       price,
		SL:          utils.OffsetPrice(price, info.Point, ticket.StopLossPips, slDirection, info.Digits),
		TP:          utils.OffsetPrice(price, info.Point, ticket.TakeProfitPips, tpDirection, info.Digits),
		Deviation:   d.defaults.Deviation,
		Magic:       d.defaults.Magic,
		Comment:     ticket.Comment,
		TypeTime:    types.OrderTimeGTC,
		TypeFilling: d.defaults.Filling,
	}

	result, err := d.send(ctx, types.JournalKindOpen, request)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeOrderFailed, err, "Error: %s", errors.Message(err))
	}

	if result == nil {
		return nil, errors.Newf(errors.ErrCodeOrderFailed, "%s order failed: %s", side, d.lastError(ctx))
	}

	if !result.Done() {
		d.log.Warn("order rejected",
			zap.String("symbol", request.Symbol),
			zap.String("side", side),
			zap.Int("retcode", result.Retcode),
			zap.String("comment", result.Comment),
		)

		rejection := errors.NewRejectionErrorf(result.Retcode, result.Comment,
			"%s order failed: %d - %s", side, result.Retcode, result.Comment)

		return nil, errors.Wrap(errors.ErrCodeOrderRejected, rejection.Message, rejection)
	}

	d.log.Info("order executed",
		zap.String("symbol", request.Symbol),
		zap.String("side", side),
		zap.Float64("volume", result.Volume),
		zap.Float64("price", result.Price),
		zap.Uint64("ticket", result.Order),
	)

	return &OrderReceipt{
		Side:    ticket.Side,
		Symbol:  ticket.Symbol,
		Ticket:  result.Order,
		Volume:  result.Volume,
		Price:   result.Price,
		SL:      request.SL,
		TP:      request.TP,
		Comment: ticket.Comment,
		Result:  result,
	}, nil
}

// Positions lists open positions and applies filter.
func (d *Desk) Positions(ctx context.Context, filter Filter) (*PositionView, error) {
	d.callMu.Lock()
	defer d.callMu.Unlock()

	if !d.IsConnected() {
		return nil, errors.New(errors.ErrCodeNotConnected, MsgConnectToView)
	}

	positions, err := d.terminal.PositionsGet(ctx)
	if err != nil {
		d.log.Error("positions_get failed", zap.Error(err))

		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "Error retrieving positions: %s", errors.Message(err))
	}

	return NewPositionView(positions, filter), nil
}

// CloseReceipt describes a closed position.
type CloseReceipt struct {
	Ticket uint64             `json:"ticket"`
	Symbol string             `json:"symbol"`
	Profit float64            `json:"profit"`
	Result *types.TradeResult `json:"result"`
}

// Notices renders the receipt the way the position card shows it.
func (r *CloseReceipt) Notices() []Notice {
	return []Notice{
		{Level: LevelSuccess, Text: "Position #" + formatTicket(r.Ticket) + " closed successfully!"},
		{Level: LevelInfo, Text: "Final profit: " + formatAmount(r.Profit)},
	}
}

// ClosePosition closes one open position by ticket.
func (d *Desk) ClosePosition(ctx context.Context, ticket uint64) (*CloseReceipt, error) {
	d.callMu.Lock()
	defer d.callMu.Unlock()

	if !d.IsConnected() {
		return nil, errors.New(errors.ErrCodeNotConnected, MsgNotConnected)
	}

	positions, err := d.terminal.PositionsGet(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "Error retrieving positions: %s", errors.Message(err))
	}

	for _, position := range positions {
		if position.Ticket == ticket {
			return d.closeLocked(ctx, position, types.JournalKindClose, "Close "+formatTicket(ticket))
		}
	}

	return nil, errors.Newf(errors.ErrCodePositionNotFound, "Position #%d not found", ticket)
}

// CloseProgress is called after each position of a CloseAll run.
type CloseProgress func(done, total int, position types.Position, err error)

// CloseAllSummary counts the outcome of a CloseAll run.
type CloseAllSummary struct {
	Closed int `json:"closed"`
	Failed int `json:"failed"`
}

// Notices renders the summary the way the positions panel shows it.
func (s *CloseAllSummary) Notices() []Notice {
	notices := make([]Notice, 0, 2)

	if s.Closed > 0 {
		notices = append(notices, Notice{Level: LevelSuccess, Text: formatCount(s.Closed) + " positions closed successfully!"})
	}

	if s.Failed > 0 {
		notices = append(notices, Notice{Level: LevelWarning, Text: formatCount(s.Failed) + " positions not closed"})
	}

	return notices
}

// CloseAll closes every position passing filter. Failures are counted and the
// run continues with the next position.
func (d *Desk) CloseAll(ctx context.Context, filter Filter, progress CloseProgress) (*CloseAllSummary, error) {
	d.callMu.Lock()
	defer d.callMu.Unlock()

	if !d.IsConnected() {
		return nil, errors.New(errors.ErrCodeNotConnected, MsgNotConnected)
	}

	positions, err := d.terminal.PositionsGet(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "Error retrieving positions: %s", errors.Message(err))
	}

	targets := filter.Apply(positions)
	summary := &CloseAllSummary{Closed: 0, Failed: 0}

	for i, position := range targets {
		_, err := d.closeLocked(ctx, position, types.JournalKindCloseAll, "Close All "+formatTicket(position.Ticket))
		if err != nil {
			summary.Failed++
		} else {
			summary.Closed++
		}

		if progress != nil {
			progress(i+1, len(targets), position, err)
		}
	}

	d.log.Info("close all finished",
		zap.String("filter", filter.Comment),
		zap.Int("closed", summary.Closed),
		zap.Int("failed", summary.Failed),
	)

	return summary, nil
}

// closeLocked sends the opposite deal for position. Callers hold callMu.
func (d *Desk) closeLocked(ctx context.Context, position types.Position, kind types.JournalKind, comment string) (*CloseReceipt, error) {
	tick, err := d.terminal.SymbolInfoTick(ctx, position.Symbol)
	if err != nil || tick == nil {
		return nil, errors.Wrapf(errors.ErrCodePriceUnavailable, err, "Cannot get price for %s", position.Symbol)
	}

	price := tick.Ask
	if position.Type == types.OrderTypeBuy {
		price = tick.Bid
	}

	request := types.TradeRequest{
		Action:      types.TradeActionDeal,
		Symbol:      position.Symbol,
		Volume:      position.Volume,
		Type:        position.Type.Opposite(),
		Position:    position.Ticket,
		Price:       price,
		SL:          0,
		TP:          0,
		Deviation:   d.defaults.Deviation,
		Magic:       d.defaults.Magic,
		Comment:     comment,
		TypeTime:    types.OrderTimeGTC,
		TypeFilling: d.defaults.Filling,
	}

	result, err := d.send(ctx, kind, request)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeOrderFailed, err, "Closure error: %s", errors.Message(err))
	}

	if result == nil {
		return nil, errors.Newf(errors.ErrCodeOrderFailed, "Closure failed: %s", d.lastError(ctx))
	}

	if !result.Done() {
		d.log.Warn("closure rejected",
			zap.Uint64("ticket", position.Ticket),
			zap.Int("retcode", result.Retcode),
			zap.String("comment", result.Comment),
		)

		rejection := errors.NewRejectionErrorf(result.Retcode, result.Comment,
			"Closure failed: %d - %s", result.Retcode, result.Comment)

		return nil, errors.Wrap(errors.ErrCodeOrderRejected, rejection.Message, rejection)
	}

	d.log.Info("position closed",
		zap.Uint64("ticket", position.Ticket),
		zap.String("symbol", position.Symbol),
		zap.Float64("profit", position.Profit),
	)

	return &CloseReceipt{
		Ticket: position.Ticket,
		Symbol: position.Symbol,
		Profit: position.Profit,
		Result: result,
	}, nil
}

// send submits request and journals it. Callers hold callMu.
func (d *Desk) send(ctx context.Context, kind types.JournalKind, request types.TradeRequest) (*types.TradeResult, error) {
	result, err := d.terminal.OrderSend(ctx, request)

	if d.journal != nil {
		entry := types.JournalEntry{
			ID:       uuid.NewString(),
			Time:     time.Now().UTC(),
			Kind:     kind,
			Symbol:   request.Symbol,
			Side:     request.Type,
			Volume:   request.Volume,
			Price:    request.Price,
			SL:       request.SL,
			TP:       request.TP,
			Comment:  request.Comment,
			Position: request.Position,
		}

		if result != nil {
			entry.Retcode = result.Retcode
			entry.Order = result.Order
			entry.ResultComment = result.Comment
		}

		if err != nil {
			entry.Error = err.Error()
		}

		if jerr := d.journal.Record(ctx, entry); jerr != nil {
			d.log.Warn("journal write failed", zap.String("id", entry.ID), zap.Error(jerr))
		}
	}

	return result, err
}

// lastError renders the terminal's last error, or the transport error if even that fails.
func (d *Desk) lastError(ctx context.Context) string {
	lastError, err := d.terminal.LastError(ctx)
	if err != nil {
		return errors.Message(err)
	}

	return lastError.String()
}
