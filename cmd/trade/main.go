package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/rxtech-lab/mt5-dashboard/internal/app"
	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading"
	"github.com/rxtech-lab/mt5-dashboard/internal/trading/journal"
	"github.com/rxtech-lab/mt5-dashboard/internal/types"
	"github.com/rxtech-lab/mt5-dashboard/internal/version"
	"github.com/rxtech-lab/mt5-dashboard/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
)

type deskAction func(ctx context.Context, cmd *cli.Command, application *app.App) error

// withDesk loads the configuration, logs in with the configured account and runs
// action. The terminal is shut down afterwards.
func withDesk(action deskAction) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg, err := config.Load(cmd.String("config"))
		if err != nil {
			return err
		}

		if provider := cmd.String("provider"); provider != "" {
			cfg.Terminal.Provider = provider
		}

		deskLog, err := logger.NewLoggerWithLevel(cmd.String("log-level"))
		if err != nil {
			return err
		}

		application, err := app.New(cfg, deskLog)
		if err != nil {
			return err
		}
		defer application.Close(context.Background())

		_ = application.CheckBridge(ctx)

		result, err := application.Connect(ctx)
		if err != nil {
			return cli.Exit(errors.Message(err), 1)
		}

		if cmd.Bool("verbose") {
			printNotices(os.Stdout, result.Notices())
		}

		return action(ctx, cmd, application)
	}
}

func accountAction(_ context.Context, _ *cli.Command, application *app.App) error {
	printAccount(os.Stdout, application.Desk.Status())

	return nil
}

func orderAction(side types.OrderType) deskAction {
	return func(ctx context.Context, cmd *cli.Command, application *app.App) error {
		receipt, err := application.Desk.PlaceOrder(ctx, types.OrderTicket{
			Side:           side,
			Symbol:         cmd.String("symbol"),
			Volume:         cmd.Float("volume"),
			StopLossPips:   int(cmd.Int("sl")),
			TakeProfitPips: int(cmd.Int("tp")),
			Comment:        cmd.String("comment"),
		})
		if err != nil {
			return cli.Exit(errors.Message(err), 1)
		}

		printNotices(os.Stdout, receipt.Notices())

		return nil
	}
}

func commentFilter(cmd *cli.Command) trading.Filter {
	comment := cmd.String("comment")

	return trading.Filter{Enabled: comment != "", Comment: comment}
}

func listAction(ctx context.Context, cmd *cli.Command, application *app.App) error {
	view, err := application.Desk.Positions(ctx, commentFilter(cmd))
	if err != nil {
		return cli.Exit(errors.Message(err), 1)
	}

	printPositions(os.Stdout, view)

	return nil
}

func closeAction(ctx context.Context, cmd *cli.Command, application *app.App) error {
	receipt, err := application.Desk.ClosePosition(ctx, uint64(cmd.Int("ticket")))
	if err != nil {
		return cli.Exit(errors.Message(err), 1)
	}

	printNotices(os.Stdout, receipt.Notices())

	return nil
}

func closeAllAction(ctx context.Context, cmd *cli.Command, application *app.App) error {
	var bar *progressbar.ProgressBar

	progress := func(done, total int, _ types.Position, _ error) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("Closing positions"),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWriter(os.Stderr),
			)
		}

		_ = bar.Set(done)
	}

	summary, err := application.Desk.CloseAll(ctx, commentFilter(cmd), progress)
	if err != nil {
		return cli.Exit(errors.Message(err), 1)
	}

	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	notices := summary.Notices()
	if len(notices) == 0 {
		notices = []trading.Notice{{Level: trading.LevelInfo, Text: "No open positions"}}
	}

	printNotices(os.Stdout, notices)

	return nil
}

func journalAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if !cfg.Journal.Enabled {
		return cli.Exit("the order journal is disabled, set journal.enabled or JOURNAL_PATH", 1)
	}

	orderJournal := journal.NewJournal(cfg.Journal.Path, logger.NewNop())
	if err := orderJournal.Initialize(); err != nil {
		return err
	}
	defer orderJournal.Close()

	entries, err := orderJournal.Entries(ctx, journal.Query{
		Comment: cmd.String("comment"),
		Symbol:  cmd.String("symbol"),
		Kind:    types.JournalKind(cmd.String("kind")),
		Limit:   uint64(cmd.Int("limit")),
	})
	if err != nil {
		return err
	}

	printJournal(os.Stdout, entries)

	return nil
}

func orderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "symbol",
			Aliases: []string{"s"},
			Usage:   "Symbol to trade",
			Value:   "EURUSD",
		},
		&cli.FloatFlag{
			Name:  "volume",
			Usage: "Volume in lots",
			Value: 0.1,
		},
		&cli.IntFlag{
			Name:  "sl",
			Usage: "Stop loss distance in pips, 0 for none",
		},
		&cli.IntFlag{
			Name:  "tp",
			Usage: "Take profit distance in pips, 0 for none",
		},
		&cli.StringFlag{
			Name:    "comment",
			Aliases: []string{"m"},
			Usage:   "Comment tag attached to the order",
			Value:   types.DefaultComment,
		},
	}
}

func commentFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "comment",
		Aliases: []string{"m"},
		Usage:   "Only positions with exactly this comment",
	}
}

// positive rejects values that would wrap when used as a ticket or a count.
func positive(name string) func(int64) error {
	return func(value int64) error {
		if value <= 0 {
			return fmt.Errorf("--%s must be a positive number, got %d", name, value)
		}

		return nil
	}
}

func ticketFlag() cli.Flag {
	return &cli.IntFlag{
		Name:      "ticket",
		Aliases:   []string{"t"},
		Usage:     "Position ticket",
		Required:  true,
		Validator: positive("ticket"),
	}
}

func limitFlag() cli.Flag {
	return &cli.IntFlag{
		Name:      "limit",
		Usage:     "Maximum number of entries",
		Value:     50,
		Validator: positive("limit"),
	}
}

func main() {
	cmd := &cli.Command{
		Name:    "trade",
		Usage:   "One-shot MT5 trading commands",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "provider",
				Aliases: []string{"p"},
				Usage:   "Terminal provider, overrides the configuration",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level",
				Value: "warn",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print the login result",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "account",
				Usage:  "Show the account after login",
				Action: withDesk(accountAction),
			},
			{
				Name:  "order",
				Usage: "Place a market order",
				Commands: []*cli.Command{
					{
						Name:   "buy",
						Usage:  "Buy at the ask",
						Flags:  orderFlags(),
						Action: withDesk(orderAction(types.OrderTypeBuy)),
					},
					{
						Name:   "sell",
						Usage:  "Sell at the bid",
						Flags:  orderFlags(),
						Action: withDesk(orderAction(types.OrderTypeSell)),
					},
				},
			},
			{
				Name:  "positions",
				Usage: "List and close open positions",
				Commands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List open positions",
						Flags:  []cli.Flag{commentFlag()},
						Action: withDesk(listAction),
					},
					{
						Name:   "close",
						Usage:  "Close one position",
						Flags:  []cli.Flag{ticketFlag()},
						Action: withDesk(closeAction),
					},
					{
						Name:   "close-all",
						Usage:  "Close every position, or every position with --comment",
						Flags:  []cli.Flag{commentFlag()},
						Action: withDesk(closeAllAction),
					},
				},
			},
			{
				Name:  "journal",
				Usage: "List recorded order requests",
				Flags: []cli.Flag{
					commentFlag(),
					&cli.StringFlag{
						Name:  "symbol",
						Usage: "Only requests for this symbol",
					},
					&cli.StringFlag{
						Name:  "kind",
						Usage: fmt.Sprintf("Only requests of this kind (%s, %s, %s)", types.JournalKindOpen, types.JournalKindClose, types.JournalKindCloseAll),
					},
					limitFlag(),
				},
				Action: journalAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
