package main

import (
	"fmt"
	"os"

	"github.com/raykavin/fvgview"
	"github.com/raykavin/fvgview/internal/config"
	"github.com/raykavin/fvgview/pkg/chart"
	"github.com/raykavin/fvgview/pkg/logger"
	"github.com/raykavin/fvgview/pkg/logger/zerolog"
	"github.com/raykavin/fvgview/pkg/store"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	eventsDir  string
	port       int
	debug      bool
	outputDir  string
	format     string
	tradedOnly bool
	status     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "fvgview",
		Short:   "Fair value gap event viewer",
		Version: "1.0.0",
	}

	rootCmd.PersistentFlags().StringVarP(&eventsDir, "events", "e", "", "Events directory (overrides EVENTS_DIR)")

	rootCmd.AddCommand(buildServeCmd())
	rootCmd.AddCommand(buildListCmd())
	rootCmd.AddCommand(buildShowCmd())
	rootCmd.AddCommand(buildExportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app bundles what every subcommand needs
type app struct {
	config *config.AppConfig
	log    logger.Logger
	store  *store.FileStore
	viewer *fvgview.Viewer
}

func setup() (*app, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	if eventsDir != "" {
		cfg.EventsDir = eventsDir
	}

	zl, err := zerolog.New(zerolog.Options{
		Level:          cfg.Log.Level,
		DateTimeLayout: cfg.Log.TimeFormat,
		Colored:        cfg.Log.Colored,
		JSON:           cfg.Log.JSON,
		File:           cfg.Log.File,
		MaxSizeMB:      cfg.Log.MaxSizeMB,
		MaxBackups:     cfg.Log.MaxBackups,
		MaxAgeDays:     cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	log := zerolog.NewAdapter(zl)

	events, err := store.NewFileStore(cfg.EventsDir, log)
	if err != nil {
		return nil, err
	}

	viewer := fvgview.NewViewer(
		events,
		fvgview.WithLogger(log),
		fvgview.WithBuilder(chart.NewBuilder(log, chart.WithWindowPad(cfg.WindowPad))),
	)

	return &app{
		config: cfg,
		log:    log,
		store:  events,
		viewer: viewer,
	}, nil
}

// close releases the store; failures only matter for the log
func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.WithError(err).Warn("failed to close store")
	}
}

func listFilters() []store.EntryFilter {
	var filters []store.EntryFilter
	if tradedOnly {
		filters = append(filters, store.WithTrades())
	}
	if status != "" {
		filters = append(filters, store.WithStatusIn(status))
	}
	return filters
}
