package chart

import (
	"time"

	"github.com/raykavin/fvgview/pkg/core"
)

// Range is a closed time interval on the x axis
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t lies in the range, bounds included
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Rect is a filled rectangle, used for pattern zones
type Rect struct {
	StartX time.Time `json:"x0"`
	EndX   time.Time `json:"x1"`
	StartY float64   `json:"y0"`
	EndY   float64   `json:"y1"`
	Fill   string    `json:"fill"`
	Layer  string    `json:"layer"`
}

// VLine is a vertical marker spanning the full plot height
type VLine struct {
	X     time.Time `json:"x"`
	Dash  string    `json:"dash"`
	Label string    `json:"label,omitempty"`
}

// HLine is a horizontal price level spanning the full plot width
type HLine struct {
	Y     float64 `json:"y"`
	Dash  string  `json:"dash"`
	Label string  `json:"label,omitempty"`
}

// Point is one marker position with its text
type Point struct {
	X    time.Time `json:"x"`
	Y    float64   `json:"y"`
	Text string    `json:"text,omitempty"`
}

// MarkerGroup is a batch of points sharing one style, rendered as one legend entry
type MarkerGroup struct {
	Name         string  `json:"name"`
	Symbol       string  `json:"symbol"`
	Color        string  `json:"color,omitempty"`
	Size         int     `json:"size"`
	TextPosition string  `json:"text_position,omitempty"`
	Points       []Point `json:"points"`
}

// Annotations are the primitives the mapper produces for one view
type Annotations struct {
	Rects   []Rect        `json:"rects"`
	VLines  []VLine       `json:"vlines"`
	HLines  []HLine       `json:"hlines"`
	Markers []MarkerGroup `json:"markers"`
}

// Placeholder explains why a view carries no chart
type Placeholder string

const (
	PlaceholderNone    Placeholder = ""
	PlaceholderNoData  Placeholder = "no_data"
	PlaceholderNoTrade Placeholder = "no_trade_signal"
)

// View is the declarative chart description of one timeframe.
// XRange must be honored exactly by the renderer, it may extend past the candles.
type View struct {
	Timeframe   core.Timeframe `json:"timeframe"`
	Title       string         `json:"title"`
	Height      int            `json:"height"`
	Placeholder Placeholder    `json:"placeholder,omitempty"`
	Candles     []core.Candle  `json:"candles"`
	XRange      *Range         `json:"x_range,omitempty"`
	Annotations
}

// HasChart reports whether the view renders candles rather than a placeholder
func (v View) HasChart() bool { return v.Placeholder == PlaceholderNone }
