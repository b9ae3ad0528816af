// Package app wires a trading desk from configuration for the binaries.
package app

import (
	"context"
	stderrors "errors"

	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/terminal"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading/journal"
	"go.uber.org/zap"
)

// App holds the desk and the resources behind it.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	Terminal *terminal.BridgeClient
	Journal  *journal.Journal
	Desk     *trading.Desk
}

// New builds the terminal client, the optional journal and the desk.
// A nil log is replaced with one at the configured level.
func New(cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		var err error

		log, err = logger.NewLoggerWithLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
	}

	providerType, providerConfig, err := cfg.ProviderConfig()
	if err != nil {
		return nil, err
	}

	term, err := terminal.NewTerminal(providerType, providerConfig)
	if err != nil {
		return nil, err
	}

	term.SetLogger(log)

	defaults, err := cfg.OrderDefaults()
	if err != nil {
		_ = term.Close()

		return nil, err
	}

	options := []trading.Option{
		trading.WithLogger(log),
		trading.WithOrderDefaults(defaults),
	}

	var orderJournal *journal.Journal

	if cfg.Journal.Enabled {
		orderJournal = journal.NewJournal(cfg.Journal.Path, log)
		if err := orderJournal.Initialize(); err != nil {
			_ = term.Close()

			return nil, err
		}

		options = append(options, trading.WithJournal(orderJournal))
	}

	log.Info("terminal ready",
		zap.String("provider", string(providerType)),
		zap.String("bridge", term.BaseURL()),
		zap.Bool("journal", orderJournal != nil),
	)

	return &App{
		Config:   cfg,
		Log:      log,
		Terminal: term,
		Journal:  orderJournal,
		Desk:     trading.NewDesk(term, options...),
	}, nil
}

// Load reads configuration from path and builds the app.
func Load(path string, log *logger.Logger) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	return New(cfg, log)
}

// CheckBridge warns when the bridge speaks an incompatible protocol version.
func (a *App) CheckBridge(ctx context.Context) error {
	if err := a.Terminal.CheckVersion(ctx); err != nil {
		a.Log.Warn("bridge version check failed", zap.Error(err))

		return err
	}

	return nil
}

// Connect logs in with the configured account.
func (a *App) Connect(ctx context.Context) (*trading.ConnectResult, error) {
	return a.Desk.Connect(ctx, a.Config.Credentials())
}

// Close disconnects and releases the journal and terminal client.
func (a *App) Close(ctx context.Context) error {
	var errs []error

	if a.Desk.IsConnected() {
		a.Desk.Disconnect(ctx)
	}

	if a.Journal != nil {
		errs = append(errs, a.Journal.Close())
	}

	errs = append(errs, a.Terminal.Close())
	_ = a.Log.Sync()

	return stderrors.Join(errs...)
}
