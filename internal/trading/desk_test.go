package trading

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/mocks"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type DeskTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	terminal *mocks.MockTerminal
	desk     *Desk
	ctx      context.Context
}

func TestDeskSuite(t *testing.T) {
	suite.Run(t, new(DeskTestSuite))
}

func (s *DeskTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.terminal = mocks.NewMockTerminal(s.ctrl)
	s.desk = NewDesk(s.terminal)
	s.ctx = context.Background()
}

func (s *DeskTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

var demoCredentials = types.Credentials{Login: 5001234, Password: "demo", Server: "MetaQuotes-Demo"}

var eurusd = types.SymbolInfo{Name: "EURUSD", Visible: true, Point: 0.00001, Digits: 5}

func (s *DeskTestSuite) connect() {
	s.terminal.EXPECT().Initialize(gomock.Any()).Return(true, nil)
	s.terminal.EXPECT().Login(gomock.Any(), demoCredentials).Return(true, nil)
	s.terminal.EXPECT().AccountInfo(gomock.Any()).Return(&types.AccountInfo{
		Login: 5001234, Balance: 10000, Equity: 10012.5, Currency: "USD",
	}, nil)

	_, err := s.desk.Connect(s.ctx, demoCredentials)
	s.Require().NoError(err)
}

func (s *DeskTestSuite) TestConnect_Success() {
	s.terminal.EXPECT().Initialize(gomock.Any()).Return(true, nil)
	s.terminal.EXPECT().Login(gomock.Any(), demoCredentials).Return(true, nil)
	s.terminal.EXPECT().AccountInfo(gomock.Any()).Return(&types.AccountInfo{
		Login: 5001234, Balance: 10000, Equity: 10012.5, Currency: "USD",
	}, nil)

	result, err := s.desk.Connect(s.ctx, demoCredentials)
	s.Require().NoError(err)

	notices := result.Notices()
	s.Equal(Notice{Level: LevelSuccess, Text: "Connection successful!"}, notices[0])
	s.Equal("Balance: 10000.00 USD", notices[1].Text)
	s.Equal("Equity: 10012.50 USD", notices[2].Text)

	status := s.desk.Status()
	s.True(status.Connected)
	s.Equal("Connected", status.Label())
	s.Require().NotNil(status.Account)
	s.Equal(10000.0, status.Account.Balance)
}

func (s *DeskTestSuite) TestConnect_NoAccountInfo() {
	s.terminal.EXPECT().Initialize(gomock.Any()).Return(true, nil)
	s.terminal.EXPECT().Login(gomock.Any(), demoCredentials).Return(true, nil)
	s.terminal.EXPECT().AccountInfo(gomock.Any()).Return(nil, nil)

	result, err := s.desk.Connect(s.ctx, demoCredentials)
	s.Require().NoError(err)
	s.Len(result.Notices(), 1)

	status := s.desk.Status()
	s.True(status.Connected)
	s.Nil(status.Account)
}

func (s *DeskTestSuite) TestConnect_InitializeFails() {
	s.terminal.EXPECT().Initialize(gomock.Any()).Return(false, nil)
	s.terminal.EXPECT().LastError(gomock.Any()).Return(types.TerminalError{Code: -10005, Message: "IPC timeout"}, nil)

	_, err := s.desk.Connect(s.ctx, demoCredentials)
	s.Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeTerminalInitFailed))
	s.Equal("MT5 initialization failed: (-10005, 'IPC timeout')", errors.Message(err))
	s.False(s.desk.IsConnected())
}

func (s *DeskTestSuite) TestConnect_LoginFailsClearsSnapshot() {
	s.connect()

	s.terminal.EXPECT().Initialize(gomock.Any()).Return(true, nil)
	s.terminal.EXPECT().Login(gomock.Any(), demoCredentials).Return(false, nil)
	s.terminal.EXPECT().LastError(gomock.Any()).Return(types.TerminalError{Code: -6, Message: "Terminal: Authorization failed"}, nil)

	_, err := s.desk.Connect(s.ctx, demoCredentials)
	s.True(errors.HasCode(err, errors.ErrCodeLoginFailed))
	s.Equal("Login failed: (-6, 'Terminal: Authorization failed')", errors.Message(err))

	status := s.desk.Status()
	s.False(status.Connected)
	s.Nil(status.Account)
	s.Equal("Not connected", status.Label())
}

func (s *DeskTestSuite) TestConnect_BridgeDown() {
	s.terminal.EXPECT().Initialize(gomock.Any()).Return(false, errors.New(errors.ErrCodeTerminalUnavailable, "terminal bridge unreachable"))

	_, err := s.desk.Connect(s.ctx, demoCredentials)
	s.Equal("MT5 initialization failed: terminal bridge unreachable", errors.Message(err))
}

func (s *DeskTestSuite) TestDisconnect() {
	s.connect()
	s.terminal.EXPECT().Shutdown(gomock.Any()).Return(stderrors.New("already down"))

	notice := s.desk.Disconnect(s.ctx)
	s.Equal("Disconnected from MT5", notice.Text)
	s.False(s.desk.IsConnected())
	s.Nil(s.desk.Status().Account)
}

func (s *DeskTestSuite) TestPlaceOrder_NotConnected() {
	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "EURUSD", Volume: 0.1})
	s.True(errors.HasCode(err, errors.ErrCodeNotConnected))
	s.Equal(MsgNotConnected, errors.Message(err))
}

func (s *DeskTestSuite) TestPlaceOrder_WaitsForDisconnect() {
	s.connect()

	entered := make(chan struct{})
	release := make(chan struct{})
	s.terminal.EXPECT().Shutdown(gomock.Any()).DoAndReturn(func(context.Context) error {
		close(entered)
		<-release

		return nil
	})

	disconnected := make(chan struct{})
	go func() {
		s.desk.Disconnect(s.ctx)
		close(disconnected)
	}()
	<-entered

	// the order queues behind the shutdown and must not reach the terminal
	placed := make(chan error, 1)
	go func() {
		_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "EURUSD", Volume: 0.1})
		placed <- err
	}()
	time.Sleep(50 * time.Millisecond)
	close(release)

	<-disconnected
	err := <-placed
	s.True(errors.HasCode(err, errors.ErrCodeNotConnected))
	s.False(s.desk.IsConnected())
}

func (s *DeskTestSuite) TestPlaceOrder_InvalidTicket() {
	s.connect()

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "EURUSD", Volume: 0.001})
	s.True(errors.HasCode(err, errors.ErrCodeInvalidOrderTicket))
}

func (s *DeskTestSuite) TestPlaceOrder_Buy() {
	s.connect()

	var sent types.TradeRequest

	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "EURUSD").Return(&eurusd, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.10000, Ask: 1.10010}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request types.TradeRequest) (*types.TradeResult, error) {
			sent = request

			return &types.TradeResult{Retcode: types.RetcodeDone, Order: 100001, Volume: 0.1, Price: 1.10010}, nil
		})

	receipt, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{
		Side: types.OrderTypeBuy, Symbol: "EURUSD", Volume: 0.1, StopLossPips: 20, TakeProfitPips: 40, Comment: "Scalp",
	})
	s.Require().NoError(err)

	s.Equal(types.TradeActionDeal, sent.Action)
	s.Equal(types.OrderTypeBuy, sent.Type)
	s.Equal(1.10010, sent.Price)
	s.Equal(1.09810, sent.SL)
	s.Equal(1.10410, sent.TP)
	s.Equal(20, sent.Deviation)
	s.Equal(int64(234000), sent.Magic)
	s.Equal("Scalp", sent.Comment)
	s.Equal(types.OrderTimeGTC, sent.TypeTime)
	s.Equal(types.OrderFillingIOC, sent.TypeFilling)
	s.Zero(sent.Position)

	notices := receipt.Notices()
	s.Equal("BUY order executed successfully!", notices[0].Text)
	s.Equal("Ticket: 100001", notices[1].Text)
	s.Equal("Volume: 0.1 lots", notices[2].Text)
	s.Equal("Price: 1.1001", notices[3].Text)
}

func (s *DeskTestSuite) TestPlaceOrder_SellMirrorsLevels() {
	s.connect()

	var sent types.TradeRequest

	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "EURUSD").Return(&eurusd, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.10000, Ask: 1.10010}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request types.TradeRequest) (*types.TradeResult, error) {
			sent = request

			return &types.TradeResult{Retcode: types.RetcodeDone, Order: 100002, Volume: 0.5, Price: 1.1}, nil
		})

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{
		Side: types.OrderTypeSell, Symbol: "EURUSD", Volume: 0.5, StopLossPips: 15, TakeProfitPips: 0,
	})
	s.Require().NoError(err)

	s.Equal(1.10000, sent.Price)
	s.Equal(1.10150, sent.SL)
	s.Equal(0.0, sent.TP)
}

func (s *DeskTestSuite) TestPlaceOrder_SymbolNotFound() {
	s.connect()
	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "FOO").Return(nil, nil)

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "FOO", Volume: 0.1})
	s.True(errors.HasCode(err, errors.ErrCodeSymbolNotFound))
	s.Equal("Symbol FOO not found", errors.Message(err))
}

func (s *DeskTestSuite) TestPlaceOrder_SelectsHiddenSymbol() {
	s.connect()

	hidden := types.SymbolInfo{Name: "XAUUSD", Visible: false, Point: 0.01, Digits: 2}
	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "XAUUSD").Return(&hidden, nil)
	s.terminal.EXPECT().SymbolSelect(gomock.Any(), "XAUUSD", true).Return(true, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "XAUUSD").Return(&types.Tick{Bid: 2350.1, Ask: 2350.4}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).Return(&types.TradeResult{Retcode: types.RetcodeDone, Order: 7}, nil)

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "XAUUSD", Volume: 0.01})
	s.NoError(err)
}

func (s *DeskTestSuite) TestPlaceOrder_SelectFails() {
	s.connect()

	hidden := types.SymbolInfo{Name: "XAUUSD", Visible: false, Point: 0.01, Digits: 2}
	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "XAUUSD").Return(&hidden, nil)
	s.terminal.EXPECT().SymbolSelect(gomock.Any(), "XAUUSD", true).Return(false, nil)

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "XAUUSD", Volume: 0.01})
	s.True(errors.HasCode(err, errors.ErrCodeSymbolSelectFailed))
	s.Equal("Cannot select symbol XAUUSD", errors.Message(err))
}

func (s *DeskTestSuite) TestPlaceOrder_NoTick() {
	s.connect()
	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "EURUSD").Return(&eurusd, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(nil, nil)

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeSell, Symbol: "EURUSD", Volume: 0.1})
	s.True(errors.HasCode(err, errors.ErrCodePriceUnavailable))
	s.Equal("Cannot get price for EURUSD", errors.Message(err))
}

func (s *DeskTestSuite) TestPlaceOrder_NilResult() {
	s.connect()
	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "EURUSD").Return(&eurusd, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.1, Ask: 1.1001}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).Return(nil, nil)
	s.terminal.EXPECT().LastError(gomock.Any()).Return(types.TerminalError{Code: -2, Message: "Invalid params"}, nil)

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeSell, Symbol: "EURUSD", Volume: 0.1})
	s.True(errors.HasCode(err, errors.ErrCodeOrderFailed))
	s.Equal("SELL order failed: (-2, 'Invalid params')", errors.Message(err))
}

func (s *DeskTestSuite) TestPlaceOrder_Rejected() {
	s.connect()
	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "EURUSD").Return(&eurusd, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.1, Ask: 1.1001}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).Return(&types.TradeResult{Retcode: 10019, Comment: "No money"}, nil)

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "EURUSD", Volume: 50})
	s.True(errors.HasCode(err, errors.ErrCodeOrderRejected))
	s.True(errors.IsRejectionError(err))
	s.Equal("BUY order failed: 10019 - No money", errors.Message(err))
}

func (s *DeskTestSuite) TestPlaceOrder_Journaled() {
	journal := mocks.NewMockJournal(s.ctrl)
	s.desk = NewDesk(s.terminal, WithJournal(journal))
	s.connect()

	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "EURUSD").Return(&eurusd, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.1, Ask: 1.1001}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).Return(&types.TradeResult{Retcode: 10006, Comment: "Request rejected"}, nil)
	journal.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, entry types.JournalEntry) error {
			s.Equal(types.JournalKindOpen, entry.Kind)
			s.Equal("EURUSD", entry.Symbol)
			s.Equal(10006, entry.Retcode)
			s.Equal("Request rejected", entry.ResultComment)
			s.NotEmpty(entry.ID)

			return stderrors.New("disk full")
		})

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "EURUSD", Volume: 0.1})
	s.True(errors.HasCode(err, errors.ErrCodeOrderRejected))
}

func (s *DeskTestSuite) TestPositions_NotConnected() {
	_, err := s.desk.Positions(s.ctx, Filter{})
	s.True(errors.HasCode(err, errors.ErrCodeNotConnected))
	s.Equal(MsgConnectToView, errors.Message(err))
}

func (s *DeskTestSuite) TestPositions_Filtered() {
	s.connect()
	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return([]types.Position{
		{Ticket: 1, Comment: "A", Profit: 10.10},
		{Ticket: 2, Comment: "B", Profit: -5},
		{Ticket: 3, Comment: "A", Profit: -2.05},
	}, nil)

	view, err := s.desk.Positions(s.ctx, Filter{Enabled: true, Comment: "A"})
	s.Require().NoError(err)
	s.Equal(3, view.Total)
	s.Equal(2, view.FilteredCount)
	s.InDelta(8.05, view.TotalProfit, 1e-9)
	s.Equal("Filtered positions: 2 / 3 total", view.Caption())
	s.True(view.CanCloseAll())
	s.True(view.InProfit())
}

func (s *DeskTestSuite) TestPositions_Error() {
	s.connect()
	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return(nil, errors.New(errors.ErrCodeTerminalUnavailable, "bridge down"))

	_, err := s.desk.Positions(s.ctx, Filter{})
	s.Equal("Error retrieving positions: bridge down", errors.Message(err))
}

func (s *DeskTestSuite) TestClosePosition() {
	s.connect()

	var sent types.TradeRequest

	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return([]types.Position{
		{Ticket: 100005, Symbol: "EURUSD", Type: types.OrderTypeBuy, Volume: 0.3, Profit: 12.34},
	}, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.2, Ask: 1.2002}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request types.TradeRequest) (*types.TradeResult, error) {
			sent = request

			return &types.TradeResult{Retcode: types.RetcodeDone}, nil
		})

	receipt, err := s.desk.ClosePosition(s.ctx, 100005)
	s.Require().NoError(err)

	s.Equal(types.OrderTypeSell, sent.Type)
	s.Equal(1.2, sent.Price)
	s.Equal(uint64(100005), sent.Position)
	s.Equal(0.3, sent.Volume)
	s.Equal("Close 100005", sent.Comment)

	notices := receipt.Notices()
	s.Equal("Position #100005 closed successfully!", notices[0].Text)
	s.Equal("Final profit: 12.34", notices[1].Text)
}

func (s *DeskTestSuite) TestClosePosition_SellUsesAsk() {
	s.connect()

	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return([]types.Position{
		{Ticket: 9, Symbol: "EURUSD", Type: types.OrderTypeSell, Volume: 1},
	}, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.2, Ask: 1.2002}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request types.TradeRequest) (*types.TradeResult, error) {
			s.Equal(types.OrderTypeBuy, request.Type)
			s.Equal(1.2002, request.Price)

			return &types.TradeResult{Retcode: 10004, Comment: "Requote"}, nil
		})

	_, err := s.desk.ClosePosition(s.ctx, 9)
	s.Equal("Closure failed: 10004 - Requote", errors.Message(err))
}

func (s *DeskTestSuite) TestClosePosition_NotFound() {
	s.connect()
	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return([]types.Position{}, nil)

	_, err := s.desk.ClosePosition(s.ctx, 42)
	s.True(errors.HasCode(err, errors.ErrCodePositionNotFound))
}

func (s *DeskTestSuite) TestClosePosition_NilResult() {
	s.connect()
	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return([]types.Position{
		{Ticket: 9, Symbol: "EURUSD", Type: types.OrderTypeSell, Volume: 1},
	}, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.2, Ask: 1.2002}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).Return(nil, nil)
	s.terminal.EXPECT().LastError(gomock.Any()).Return(types.TerminalError{Code: -1, Message: "Unknown"}, nil)

	_, err := s.desk.ClosePosition(s.ctx, 9)
	s.Equal("Closure failed: (-1, 'Unknown')", errors.Message(err))
}

func (s *DeskTestSuite) TestCloseAll_CountsFailures() {
	s.connect()

	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return([]types.Position{
		{Ticket: 1, Symbol: "EURUSD", Type: types.OrderTypeBuy, Volume: 0.1, Comment: "grid"},
		{Ticket: 2, Symbol: "GBPUSD", Type: types.OrderTypeSell, Volume: 0.1, Comment: "grid"},
		{Ticket: 3, Symbol: "EURUSD", Type: types.OrderTypeBuy, Volume: 0.1, Comment: "other"},
		{Ticket: 4, Symbol: "EURUSD", Type: types.OrderTypeSell, Volume: 0.1, Comment: "grid"},
	}, nil)

	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.1, Ask: 1.1001}, nil).Times(2)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "GBPUSD").Return(nil, nil)

	comments := make([]string, 0)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request types.TradeRequest) (*types.TradeResult, error) {
			comments = append(comments, request.Comment)
			if request.Position == 4 {
				return &types.TradeResult{Retcode: 10006, Comment: "Rejected"}, nil
			}

			return &types.TradeResult{Retcode: types.RetcodeDone}, nil
		}).Times(2)

	calls := 0
	summary, err := s.desk.CloseAll(s.ctx, Filter{Enabled: true, Comment: "grid"}, func(done, total int, _ types.Position, _ error) {
		calls++
		s.Equal(calls, done)
		s.Equal(3, total)
	})
	s.Require().NoError(err)

	s.Equal(1, summary.Closed)
	s.Equal(2, summary.Failed)
	s.Equal(3, calls)
	s.Equal([]string{"Close All 1", "Close All 4"}, comments)

	notices := summary.Notices()
	s.Require().Len(notices, 2)
	s.Equal(Notice{Level: LevelSuccess, Text: "1 positions closed successfully!"}, notices[0])
	s.Equal(Notice{Level: LevelWarning, Text: "2 positions not closed"}, notices[1])
}

func (s *DeskTestSuite) TestCloseAll_TransportErrorCountsAsFailed() {
	s.connect()

	s.terminal.EXPECT().PositionsGet(gomock.Any()).Return([]types.Position{
		{Ticket: 1, Symbol: "EURUSD", Type: types.OrderTypeBuy, Volume: 0.1},
		{Ticket: 2, Symbol: "EURUSD", Type: types.OrderTypeBuy, Volume: 0.1},
	}, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.1, Ask: 1.1001}, nil).Times(2)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).Return(nil, stderrors.New("connection reset"))
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).Return(&types.TradeResult{Retcode: types.RetcodeDone}, nil)

	summary, err := s.desk.CloseAll(s.ctx, Filter{}, nil)
	s.Require().NoError(err)
	s.Equal(1, summary.Closed)
	s.Equal(1, summary.Failed)
}

func (s *DeskTestSuite) TestWithOrderDefaults() {
	s.desk = NewDesk(s.terminal, WithOrderDefaults(OrderDefaults{Deviation: 5, Magic: 1, Filling: types.OrderFillingFOK}))
	s.connect()

	s.terminal.EXPECT().SymbolInfo(gomock.Any(), "EURUSD").Return(&eurusd, nil)
	s.terminal.EXPECT().SymbolInfoTick(gomock.Any(), "EURUSD").Return(&types.Tick{Bid: 1.1, Ask: 1.1001}, nil)
	s.terminal.EXPECT().OrderSend(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, request types.TradeRequest) (*types.TradeResult, error) {
			s.Equal(5, request.Deviation)
			s.Equal(int64(1), request.Magic)
			s.Equal(types.OrderFillingFOK, request.TypeFilling)

			return &types.TradeResult{Retcode: types.RetcodeDone}, nil
		})

	_, err := s.desk.PlaceOrder(s.ctx, types.OrderTicket{Side: types.OrderTypeBuy, Symbol: "EURUSD", Volume: 0.1})
	s.NoError(err)
}
