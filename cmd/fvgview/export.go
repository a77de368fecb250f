package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raykavin/fvgview"
	"github.com/raykavin/fvgview/pkg/store"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func buildExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the computed page of every event to a directory",
		RunE:  runExport,
	}

	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "export", "Output directory")
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json or yaml)")
	exportCmd.Flags().BoolVar(&tradedOnly, "traded", false, "Only events with trade signals")
	exportCmd.Flags().StringVar(&status, "status", "", "Only events with this summary status")

	return exportCmd
}

func runExport(_ *cobra.Command, _ []string) error {
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unsupported format %q", format)
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.close()

	entries, err := a.viewer.Events(append(listFilters(), store.WithValidOnly())...)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return err
	}

	progressBar := progressbar.Default(int64(len(entries)))
	failed := 0
	for _, entry := range entries {
		if err := exportPage(a.viewer, entry.Key, outputDir, format); err != nil {
			a.log.WithError(err).WithField("event", entry.Key).Warn("export failed")
			failed++
		}
		if err := progressBar.Add(1); err != nil {
			a.log.Warnf("Failed to update progress bar: %s", err.Error())
		}
	}

	if err := progressBar.Close(); err != nil {
		a.log.Warnf("Failed to close progress bar: %s", err.Error())
	}

	a.log.Infof("Exported %d of %d events to %s", len(entries)-failed, len(entries), outputDir)
	return nil
}

func exportPage(viewer *fvgview.Viewer, key, dir, format string) error {
	page, err := viewer.Page(key)
	if err != nil {
		return err
	}

	content, err := encodePage(page, format)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, key+"."+format), content, 0o644)
}

// encodePage serializes a page. YAML output goes through the JSON form so both
// formats share the same field names.
func encodePage(page *fvgview.Page, format string) ([]byte, error) {
	content, err := json.MarshalIndent(page, "", "  ")
	if err != nil || format == "json" {
		return content, err
	}

	var document any
	if err := yaml.Unmarshal(content, &document); err != nil {
		return nil, err
	}
	return yaml.Marshal(document)
}
