// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/allisson/analytics-relay/cmd/app/commands"
)

const version = "1.0.0"

func main() {
	cmd := &cli.Command{
		Name:    "analytics-relay",
		Usage:   "Server-side purchase analytics relay",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "server",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunServer(ctx, version)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migrations",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunMigrations()
				},
			},
			{
				Name:  "send-test-event",
				Usage: "Dispatch a synthetic purchase event to the configured accounts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "order-id",
						Aliases: []string{"o"},
						Value:   "",
						Usage:   "Transaction identifier (defaults to a timestamped id)",
					},
					&cli.StringFlag{
						Name:  "sku",
						Value: "test-sku",
						Usage: "Line item SKU",
					},
					&cli.StringFlag{
						Name:  "name",
						Value: "Test Product",
						Usage: "Line item name",
					},
					&cli.StringFlag{
						Name:  "price",
						Value: "10.00",
						Usage: "Line item unit price",
					},
					&cli.IntFlag{
						Name:  "quantity",
						Value: 1,
						Usage: "Line item quantity",
					},
					&cli.StringFlag{
						Name:    "client-id",
						Aliases: []string{"c"},
						Value:   "",
						Usage:   "Visitor identity to report (defaults to a synthetic one)",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return commands.RunSendTestEvent(ctx, commands.TestEventInput{
						OrderID:  cmd.String("order-id"),
						SKU:      cmd.String("sku"),
						Name:     cmd.String("name"),
						Price:    cmd.String("price"),
						Quantity: int(cmd.Int("quantity")),
						ClientID: cmd.String("client-id"),
					})
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}
