package chart

import (
	"fmt"
	"time"

	"github.com/raykavin/fvgview/pkg/core"
)

// AnchorMode selects what a view's time window follows
type AnchorMode int

const (
	// AnchorPattern follows the candidate window and the pattern's pre-touch context
	AnchorPattern AnchorMode = iota
	// AnchorTradeWide starts at the hourly pattern and ends after the trade,
	// keeping the axis unclamped past the last candle
	AnchorTradeWide
	// AnchorTradeNarrow frames the trade execution only
	AnchorTradeNarrow
)

func (m AnchorMode) String() string {
	switch m {
	case AnchorPattern:
		return "pattern"
	case AnchorTradeWide:
		return "trade-wide"
	case AnchorTradeNarrow:
		return "trade-narrow"
	default:
		return fmt.Sprintf("anchor(%d)", int(m))
	}
}

// Layer is a set of annotation kinds drawn on a view
type Layer uint8

const (
	LayerHourlyBand Layer = 1 << iota
	LayerHourlyTouch
	LayerPatterns
	LayerBOS
	LayerTrades
	LayerRiskLevels
)

// Has reports whether all kinds in other are enabled
func (l Layer) Has(other Layer) bool { return l&other == other }

// Policy parameterizes the clamper and the mapper for one timeframe
type Policy struct {
	Anchor        AnchorMode
	PadBefore     time.Duration // before the entry, narrow anchor only
	PadAfterExit  time.Duration
	PadAfterEntry time.Duration // used when the trade has no exit yet
	AxisPad       time.Duration // wide anchor only
	Layers        Layer
	Height        int
}

// RequiresTrade reports whether the view needs a trade signal to render
func (p Policy) RequiresTrade() bool { return p.Anchor != AnchorPattern }

// DefaultPolicies holds the per-timeframe behaviour of the three views
var DefaultPolicies = map[core.Timeframe]Policy{
	core.Timeframe5m: {
		Anchor: AnchorPattern,
		Layers: LayerHourlyBand | LayerHourlyTouch | LayerPatterns | LayerBOS | LayerTrades,
		Height: 900,
	},
	core.Timeframe1h: {
		Anchor:        AnchorTradeWide,
		PadAfterExit:  2 * time.Hour,
		PadAfterEntry: 6 * time.Hour,
		AxisPad:       30 * time.Minute,
		Layers:        LayerHourlyBand | LayerTrades,
		Height:        450,
	},
	core.Timeframe1m: {
		Anchor:        AnchorTradeNarrow,
		PadBefore:     15 * time.Minute,
		PadAfterExit:  15 * time.Minute,
		PadAfterEntry: 2 * time.Hour,
		Layers:        LayerTrades | LayerRiskLevels,
		Height:        450,
	},
}
