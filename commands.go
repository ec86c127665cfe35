package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"bpilive/internal/bpi"
	"bpilive/internal/currencies"
	"bpilive/internal/refresh"
	"bpilive/internal/report"
)

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(priceCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(currenciesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bpilive %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", built)
	},
}

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Print the current price and a summary of the selected range",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := initialSelection()
		if err != nil {
			return err
		}
		fetcher := newFetcher()

		var price *bpi.CurrentPrice
		var series *bpi.HistoricalSeries
		eg, ctx := errgroup.WithContext(cmd.Context())
		eg.Go(func() error {
			var err error
			price, err = fetcher.FetchCurrentPrice(ctx, sel.Currency)
			return err
		})
		eg.Go(func() error {
			var err error
			series, err = fetcher.FetchHistoricalSeries(ctx, sel.Currency, sel.Start, sel.End)
			return err
		})
		if err := eg.Wait(); err != nil {
			return err
		}
		return report.Price(cmd.OutOrStdout(), sel, price, series)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print daily closing prices for the selected range",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := initialSelection()
		if err != nil {
			return err
		}
		series, err := newFetcher().FetchHistoricalSeries(cmd.Context(), sel.Currency, sel.Start, sel.End)
		if err != nil {
			return err
		}
		return report.History(cmd.OutOrStdout(), sel, series)
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the current price every refresh interval until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		sel, err := initialSelection()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := report.NewWatcher(cmd.OutOrStdout(), newFetcher(), sel, cfg.API.Timeout)
		w.Poll(ctx)

		sched := refresh.NewSchedule()
		if err := sched.Every(cfg.Refresh.Interval, func() { w.Poll(ctx) }); err != nil {
			return err
		}
		sched.Start()
		<-ctx.Done()
		sched.Stop()
		return nil
	},
}

var currenciesCmd = &cobra.Command{
	Use:   "currencies",
	Short: "List supported currencies",
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := currencies.Load()
		if err != nil {
			return err
		}
		report.Currencies(cmd.OutOrStdout(), list)
		return nil
	},
}
