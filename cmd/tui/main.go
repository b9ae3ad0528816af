package main

import (
	"context"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/mt5-dashboard/internal/app"
	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/logger"
	"github.com/rxtech-lab/mt5-dashboard/internal/version"
	"github.com/urfave/cli/v3"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if provider := cmd.String("provider"); provider != "" {
		cfg.Terminal.Provider = provider
	}

	// the UI owns the terminal, so nothing is logged
	application, err := app.New(cfg, logger.NewNop())
	if err != nil {
		return err
	}
	defer application.Close(context.Background())

	m := NewModel(application.Desk, Options{
		Login:           cfg.Account.Login,
		Password:        cfg.Account.Password,
		Server:          cfg.Account.Server,
		Symbol:          cfg.Defaults.Symbol,
		Volume:          cfg.Defaults.Volume,
		Comment:         cfg.Defaults.Comment,
		AutoRefresh:     cfg.Defaults.AutoRefresh,
		RefreshInterval: time.Duration(cfg.Defaults.RefreshInterval) * time.Second,
	})

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()

	return err
}

func main() {
	cmd := &cli.Command{
		Name:    "tui",
		Usage:   "MT5 trading dashboard in the terminal",
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
		},
		Action: runAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
