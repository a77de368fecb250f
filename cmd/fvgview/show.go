package main

import (
	"fmt"
	"io"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/raykavin/fvgview/pkg/chart"
	"github.com/raykavin/fvgview/pkg/core"
	"github.com/spf13/cobra"
)

func buildShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <event>",
		Short: "Print the sidebar and view summaries of one event",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(_ *cobra.Command, args []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	page, err := a.viewer.Page(args[0])
	if err != nil {
		return err
	}

	if err := page.Sidebar.Render(os.Stdout); err != nil {
		return err
	}

	for _, view := range page.Views {
		if err := printView(os.Stdout, view); err != nil {
			return err
		}
	}

	return nil
}

func printView(w io.Writer, view chart.View) error {
	fmt.Fprintf(w, "\n-- %s\n", view.Title)
	if !view.HasChart() {
		fmt.Fprintf(w, "   %s\n", view.Placeholder)
		return nil
	}

	if view.XRange != nil {
		fmt.Fprintf(w, "   x range: %s .. %s\n",
			view.XRange.Start.Format(rangeLayout), view.XRange.End.Format(rangeLayout))
	}
	fmt.Fprintf(w, "   candles: %d  rects: %d  vlines: %d  hlines: %d  marker groups: %d\n",
		len(view.Candles), len(view.Rects), len(view.VLines), len(view.HLines), len(view.Markers))

	closes := core.CandleSeries(view.Candles).Closes()
	if len(closes) < 2 {
		return nil
	}

	fmt.Fprintln(w, "   close distribution:")
	hist := histogram.Hist(15, closes)
	return histogram.Fprint(w, hist, histogram.Linear(10))
}

const rangeLayout = "2006-01-02 15:04"
