package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rxtech-lab/mt5-dashboard/internal/terminal/mockbridge"
	"github.com/urfave/cli/v3"
)

func serveAction(ctx context.Context, cmd *cli.Command) error {
	config := mockbridge.DefaultConfig()
	config.DriftInterval = cmd.Duration("drift")
	config.Seed = int64(cmd.Int("seed"))

	if balance := cmd.Float("balance"); balance > 0 {
		config.Accounts[0].Balance = balance
	}

	server := mockbridge.NewServer(config)
	if err := server.Start(cmd.String("listen")); err != nil {
		return fmt.Errorf("failed to start mock bridge: %w", err)
	}

	fmt.Printf("Mock bridge listening on %s\n", server.BaseURL())
	fmt.Printf("Demo account: login=%d password=%s server=%s\n",
		mockbridge.DemoLogin, mockbridge.DemoPassword, mockbridge.DemoServer)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	fmt.Println("\nStopping mock bridge...")

	return server.Stop()
}

func main() {
	cmd := &cli.Command{
		Name:  "mockbridge",
		Usage: "Serve a simulated MT5 terminal bridge with a demo account",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "Listen address",
				Value:   "127.0.0.1:18812",
			},
			&cli.DurationFlag{
				Name:  "drift",
				Usage: "Quote drift interval, 0 keeps prices fixed",
				Value: time.Second,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed for quote drift",
				Value: 1,
			},
			&cli.FloatFlag{
				Name:  "balance",
				Usage: "Starting balance of the demo account",
			},
		},
		Action: serveAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
