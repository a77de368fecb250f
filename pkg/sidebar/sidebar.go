// Package sidebar builds the display-only fields shown next to the charts.
package sidebar

import (
	"github.com/raykavin/fvgview/pkg/core"
	"github.com/raykavin/fvgview/pkg/metric"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

const notAvailable = "N/A"

// Field is one labelled line of the sidebar
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Trade groups the recorded fields of one trade signal and its derived metrics
type Trade struct {
	Details []Field             `json:"details"`
	Metrics []Field             `json:"metrics"`
	Raw     metric.TradeMetrics `json:"raw"`
}

// Sidebar is the textual summary of an event
type Sidebar struct {
	EventID   string         `json:"event_id"`
	Summary   []Field        `json:"summary"`
	Hourly    []Field        `json:"hourly"`
	Direction core.Direction `json:"direction"`
	Arrow     string         `json:"arrow,omitempty"`
	Windows   []Field        `json:"windows"`
	Trades    []Trade        `json:"trades"`
}

// Build collects the sidebar fields of an event. Absent values read "N/A".
func Build(event *core.EventRecord) Sidebar {
	hourly := event.Hourly()

	s := Sidebar{
		EventID: event.EventID.String(),
		Summary: []Field{
			{"Event ID", event.EventID.String()},
			{"Status", orNA(event.Summary.Status)},
			{"5m FVGs", event.Summary.FVG5mCount.String()},
			{"5m BOS events", event.Summary.BOS5mCount.String()},
			{"Trade signals", event.Summary.SignalCount.String()},
		},
		Hourly: []Field{
			{"Hourly FVG ID", hourly.ID.String()},
			{"Hourly FVG start", rawOrNA(hourly.StartTime)},
			{"Hourly FVG end", rawOrNA(hourly.EndTime)},
			{"Hourly FVG direction", orNA(string(hourly.Direction))},
			{"Hourly FVG end_bound", priceOrNA(hourly.EndBound)},
		},
		Direction: hourly.Direction,
		Arrow:     arrow(hourly.Direction),
		Windows: []Field{
			{"Pre-touch window", rawOrNA(hourly.PretouchWindowStart) + " → " + rawOrNA(hourly.PretouchWindowEnd)},
			{"Post-touch window", rawOrNA(hourly.PosttouchWindowStart) + " → " + rawOrNA(hourly.PosttouchWindowEnd)},
		},
		Trades: lo.Map(event.TradeSignals, func(signal core.TradeSignal, _ int) Trade {
			return buildTrade(signal)
		}),
	}

	return s
}

func buildTrade(signal core.TradeSignal) Trade {
	metrics := metric.ComputeTradeMetrics(signal)

	trade := Trade{
		Details: []Field{
			{"Type", orNA(string(signal.Signal))},
			{"Entry Time", rawOrNA(signal.EntryTs)},
			{"Entry Price", priceOrNA(signal.EntryPrice)},
			{"Stop Loss", priceOrNA(signal.StopLoss)},
			{"Take Profit", priceOrNA(signal.TakeProfit)},
			{"Exit Type", orNA(signal.ExitSignal)},
			{"Exit Time", rawOrNA(signal.ExitTs)},
			{"Exit Price", priceOrNA(signal.ExitPrice)},
		},
		Metrics: make([]Field, 0, 3),
		Raw:     metrics,
	}

	// only metrics that could be computed are shown
	if metrics.RiskUnit != nil {
		trade.Metrics = append(trade.Metrics, Field{"R (risk per trade)", fixed2(*metrics.RiskUnit)})
	}
	if metrics.PnLPoints != nil {
		trade.Metrics = append(trade.Metrics, Field{"PnL (points)", fixed2(*metrics.PnLPoints)})
	}
	if metrics.PnLInRisk != nil {
		trade.Metrics = append(trade.Metrics, Field{"PnL (R)", fixed2(*metrics.PnLInRisk)})
	}

	return trade
}

func arrow(direction core.Direction) string {
	switch direction {
	case core.DirectionUp:
		return "▲"
	case core.DirectionDown:
		return "▼"
	default:
		return ""
	}
}

func fixed2(value float64) string {
	return decimal.NewFromFloat(value).StringFixed(2)
}

func orNA(value string) string {
	if value == "" {
		return notAvailable
	}
	return value
}

func rawOrNA(ts core.Timestamp) string {
	return orNA(ts.Raw())
}

func priceOrNA(value *float64) string {
	if value == nil {
		return notAvailable
	}
	return core.FormatPrice(*value)
}
