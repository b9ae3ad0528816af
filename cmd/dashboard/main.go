package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/mt5-dashboard/internal/app"
	"github.com/rxtech-lab/mt5-dashboard/internal/config"
	"github.com/rxtech-lab/mt5-dashboard/internal/dashboard"
	"github.com/rxtech-lab/mt5-dashboard/internal/terminal"
	"github.com/rxtech-lab/mt5-dashboard/internal/version"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// serveAction loads the configuration, builds the desk and serves the dashboard until interrupted.
func serveAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}

	if listen := cmd.String("listen"); listen != "" {
		cfg.Listen = listen
	}

	if provider := cmd.String("provider"); provider != "" {
		cfg.Terminal.Provider = provider
	}

	application, err := app.New(cfg, nil)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer application.Close(context.Background())

	_ = application.CheckBridge(ctx)

	if cmd.Bool("connect") {
		if _, err := application.Connect(ctx); err != nil {
			application.Log.Warn("startup login failed", zap.Error(err))
		}
	}

	server, err := dashboard.NewServer(application.Desk, dashboard.Options{
		Defaults: dashboard.SessionDefaults{
			Symbol:          cfg.Defaults.Symbol,
			Volume:          cfg.Defaults.Volume,
			Comment:         cfg.Defaults.Comment,
			AutoRefresh:     cfg.Defaults.AutoRefresh,
			RefreshInterval: cfg.Defaults.RefreshInterval,
			Login:           cfg.Account.Login,
			Server:          cfg.Account.Server,
		},
		SessionTTL:     0,
		StreamInterval: 0,
		Version:        version.GetVersion(),
	}, application.Log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Dashboard running at http://%s\n", cfg.Listen)

	return server.Run(ctx, cfg.Listen)
}

func schemaAction(_ context.Context, _ *cli.Command) error {
	out, err := config.Schema()
	if err != nil {
		return err
	}

	fmt.Println(out)

	return nil
}

func providersAction(_ context.Context, _ *cli.Command) error {
	for _, name := range terminal.GetSupportedProviders() {
		info, err := terminal.GetProviderInfo(name)
		if err != nil {
			return err
		}

		fmt.Printf("%-12s %s\n", info.Name, info.Description)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:    "dashboard",
		Usage:   "MT5 comment-filtered trading dashboard",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Serve the web dashboard",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the YAML configuration file",
					},
					&cli.StringFlag{
						Name:    "listen",
						Aliases: []string{"l"},
						Usage:   "Listen address, overrides the configuration",
					},
					&cli.StringFlag{
						Name:    "provider",
						Aliases: []string{"p"},
						Usage:   fmt.Sprintf("Terminal provider (%s, %s)", terminal.ProviderBridge, terminal.ProviderMock),
					},
					&cli.BoolFlag{
						Name:  "connect",
						Usage: "Log in with the configured account at startup",
					},
				},
				Action: serveAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the configuration file",
				Action: schemaAction,
			},
			{
				Name:   "providers",
				Usage:  "List terminal providers",
				Action: providersAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
