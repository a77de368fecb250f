package sidebar

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Render writes the sidebar as text tables, one per section
func (s Sidebar) Render(w io.Writer) error {
	hourly := s.Hourly
	if s.Arrow != "" {
		hourly = append([]Field{}, s.Hourly...)
		for i := range hourly {
			if hourly[i].Label == "Hourly FVG direction" {
				hourly[i].Value += " " + s.Arrow
			}
		}
	}

	sections := []struct {
		title  string
		fields []Field
	}{
		{"Summary", s.Summary},
		{"Hourly FVG", hourly},
		{"Windows", s.Windows},
	}

	for _, section := range sections {
		if err := renderSection(w, section.title, section.fields); err != nil {
			return err
		}
	}

	if len(s.Trades) == 0 {
		_, err := fmt.Fprintln(w, "Trades: None")
		return err
	}

	for i, trade := range s.Trades {
		fields := append(append([]Field{}, trade.Details...), trade.Metrics...)
		if err := renderSection(w, fmt.Sprintf("Trade %d", i+1), fields); err != nil {
			return err
		}
	}

	return nil
}

func renderSection(w io.Writer, title string, fields []Field) error {
	buffer := &strings.Builder{}
	table := tablewriter.NewWriter(buffer)
	table.SetHeader([]string{title, ""})
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, field := range fields {
		table.Append([]string{field.Label, field.Value})
	}
	table.Render()

	_, err := io.WriteString(w, buffer.String())
	return err
}
