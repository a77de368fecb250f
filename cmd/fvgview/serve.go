package main

import (
	"github.com/raykavin/fvgview/pkg/plot"
	"github.com/spf13/cobra"
)

func buildServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive event viewer",
		RunE:  runServe,
	}

	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides HTTP_PORT)")
	serveCmd.Flags().BoolVar(&debug, "debug", false, "Serve unminified chart script")

	return serveCmd
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	options := []plot.Option{plot.WithPort(a.config.HTTP.Port)}
	if port > 0 {
		options = append(options, plot.WithPort(port))
	}
	if debug || a.config.HTTP.Debug {
		options = append(options, plot.WithDebug())
	}

	server, err := plot.NewServer(a.viewer, a.log, options...)
	if err != nil {
		return err
	}

	a.log.WithFields(map[string]any{
		"events_dir": a.config.EventsDir,
		"window_pad": a.config.WindowPad.String(),
	}).Info("Event viewer initialized")

	return server.Start()
}
