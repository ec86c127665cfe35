package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bpilive/internal/app"
	"bpilive/internal/bpi"
	"bpilive/internal/config"
	"bpilive/internal/currencies"
	"bpilive/internal/date"
	"bpilive/internal/store"
	"bpilive/internal/view"
)

var (
	version = "dev"
	commit  = "none"
	built   = "unknown"
)

var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bpilive",
	Short: "Live Bitcoin Price Index window",
	Long: `bpilive shows the current Bitcoin Price Index and a chart of daily
closing prices, refreshing the current price on an interval.

Without a subcommand it opens the window. Keys: C / Shift+C currency,
L locale, Left/Right start date, Down/Up end date, R refresh, Esc quit.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		var err error
		cfg, err = config.Load(configFile, cmd.Flags())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		if cfg.Verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		}
		return nil
	},
	RunE: runWindow,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", "config file path (default: ./config.yaml or ~/.bpilive/config.yaml)")
	f.String("currency", "", "currency code, e.g. USD")
	f.String("locale", "", "display locale (en-US, es)")
	f.String("start", "", "history start date YYYY-MM-DD (default: one month before end)")
	f.String("end", "", "history end date YYYY-MM-DD (default: today)")
	f.Duration("interval", 0, "current price refresh interval")
	f.String("api-url", "", "price API base URL")
	f.Bool("mock", false, "use generated prices instead of the price API")
	f.Bool("verbose", false, "verbose logging")
}

func newFetcher() bpi.Fetcher {
	if cfg.Mock {
		return &bpi.MockFetcher{Price: decimal.NewFromInt(58000)}
	}
	return bpi.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
}

func initialSelection() (store.Selection, error) {
	start, end, err := cfg.Range(date.Today())
	if err != nil {
		return store.Selection{}, err
	}
	return store.Selection{
		Currency: cfg.Display.Currency,
		Locale:   cfg.Display.Locale,
		Start:    start,
		End:      end,
	}, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	list, err := currencies.Load()
	if err != nil {
		return err
	}
	sel, err := initialSelection()
	if err != nil {
		return err
	}

	ctrl := app.NewController(newFetcher(), store.New(sel), cfg.Refresh.Interval)
	ctrl.Verbose = cfg.Verbose

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(view.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	deviceScale := ebiten.Monitor().DeviceScaleFactor()
	face, err := view.LoadFace(int(view.BaseFontSize * deviceScale))
	if err != nil {
		return err
	}

	g := view.NewGame(ctrl, list, face, deviceScale, view.DefaultChartStyle())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		if _, ok := <-sigChan; ok {
			log.Println("[INFO] interrupt received, closing window")
			g.Quit()
		}
	}()

	ctrl.Mount(time.Now())
	defer ctrl.Unmount()

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}
