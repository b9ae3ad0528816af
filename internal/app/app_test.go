package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/terminal"
	"github.com/rxtech-lab/mt5-dashboard/internal/terminal/mockbridge"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type AppTestSuite struct {
	suite.Suite
	ctx context.Context
	cfg *config.Config
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (suite *AppTestSuite) SetupTest() {
	suite.ctx = context.Background()

	cfg := config.Default()
	cfg.Terminal.Provider = string(terminal.ProviderMock)
	cfg.Account = config.AccountConfig{
		Login:    mockbridge.DemoLogin,
		Password: mockbridge.DemoPassword,
		Server:   mockbridge.DemoServer,
	}
	suite.cfg = &cfg
}

func (suite *AppTestSuite) TestMockProviderRoundTrip() {
	suite.cfg.Journal = config.JournalConfig{
		Enabled: true,
		Path:    filepath.Join(suite.T().TempDir(), "journal.parquet"),
	}

	app, err := New(suite.cfg, logger.NewNop())
	suite.Require().NoError(err)

	suite.NoError(app.CheckBridge(suite.ctx))

	result, err := app.Connect(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(mockbridge.DemoLogin, result.Account.Login)

	receipt, err := app.Desk.PlaceOrder(suite.ctx, types.OrderTicket{
		Side:    types.OrderTypeBuy,
		Symbol:  "EURUSD",
		Volume:  0.1,
		Comment: "app test",
	})
	suite.Require().NoError(err)

	view, err := app.Desk.Positions(suite.ctx, trading.Filter{Enabled: true, Comment: "app test"})
	suite.Require().NoError(err)
	suite.Equal(1, view.FilteredCount)

	_, err = app.Desk.ClosePosition(suite.ctx, receipt.Ticket)
	suite.Require().NoError(err)

	count, err := app.Journal.Count(suite.ctx)
	suite.NoError(err)
	suite.Equal(2, count)

	suite.NoError(app.Close(suite.ctx))
	suite.False(app.Desk.IsConnected())
}

func (suite *AppTestSuite) TestWithoutJournal() {
	app, err := New(suite.cfg, logger.NewNop())
	suite.Require().NoError(err)
	suite.Nil(app.Journal)
	suite.NoError(app.Close(suite.ctx))
}

func (suite *AppTestSuite) TestUnsupportedProvider() {
	suite.cfg.Terminal.Provider = "binance"

	_, err := New(suite.cfg, logger.NewNop())
	suite.Error(err)
}

func (suite *AppTestSuite) TestUnknownSlashSymbol() {
	app, err := New(suite.cfg, logger.NewNop())
	suite.Require().NoError(err)
	defer app.Close(suite.ctx)

	_, err = app.Connect(suite.ctx)
	suite.Require().NoError(err)

	_, err = app.Desk.PlaceOrder(suite.ctx, types.OrderTicket{
		Side:   types.OrderTypeBuy,
		Symbol: "XAU/EUR",
		Volume: 0.1,
	})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeSymbolNotFound))
	suite.Equal("Symbol XAU/EUR not found", errors.Message(err))
}
