package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pumpline/pumpline/internal/config"
	"github.com/pumpline/pumpline/internal/pumpportal"
)

var monitorTrades []string

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream live pump.fun token creations and trades",
	RunE:  runMonitor,
}

func init() {
	monitorCmd.Flags().StringSliceVarP(&monitorTrades, "trades", "t", nil, "Also stream trades for these mint addresses")
}

func runMonitor(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stream := pumpportal.NewStream(cfg.PumpPortal.DataURL)
	if err := stream.Connect(ctx); err != nil {
		return err
	}
	if err := stream.SubscribeNewTokens(); err != nil {
		return err
	}
	if len(monitorTrades) > 0 {
		if err := stream.SubscribeTokenTrades(monitorTrades); err != nil {
			return err
		}
	}

	fmt.Printf("%s watching pump.fun (ctrl-c to stop)\n", logo)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return stream.Run(ctx, func(ev pumpportal.Event) {
			switch ev.TxType {
			case "create":
				fmt.Printf("new    %-12s %-46s %s\n", ev.Symbol, ev.Mint, ev.Name)
			case "buy", "sell":
				fmt.Printf("%-6s %-12s %-46s %.4f SOL\n", ev.TxType, ev.Pool, ev.Mint, ev.SolAmount)
			default:
				fmt.Printf("event  %s\n", ev.Raw)
			}
		})
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
