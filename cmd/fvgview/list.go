package main

import (
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func buildListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available events",
		RunE:  runList,
	}

	listCmd.Flags().BoolVar(&tradedOnly, "traded", false, "Only events with trade signals")
	listCmd.Flags().StringVar(&status, "status", "", "Only events with this summary status")

	return listCmd
}

func runList(_ *cobra.Command, _ []string) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	entries, err := a.viewer.Events(listFilters()...)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Event ID", "Status", "Signals", "Valid"})
	for _, entry := range entries {
		table.Append([]string{
			entry.Key,
			entry.EventID,
			entry.Status,
			strconv.Itoa(entry.Signals),
			strconv.FormatBool(entry.Valid),
		})
	}
	table.SetFooter([]string{"", "", "", "TOTAL", strconv.Itoa(len(entries))})
	table.Render()

	return nil
}
