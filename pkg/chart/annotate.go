package chart

import (
	"fmt"

	"github.com/raykavin/fvgview/pkg/core"
)

const (
	hourlyBandFill  = "rgba(200,200,200,0.20)"
	patternZoneFill = "rgba(173,216,230,0.22)"
	layerBelow      = "below"

	dashEntry = "dash"
	dashExit  = "dot"
	dashLevel = "dot"
)

// MapAnnotations converts the event's sub-records into chart primitives.
// series is the full candle series of the view, used to resolve candle-aligned
// timestamps; visible is the horizontal extent of the shown candles.
// Timestamps without an exact candle match only drop their own marker.
func MapAnnotations(event *core.EventRecord, series core.CandleSeries, visible Range, layers Layer) Annotations {
	var a Annotations

	if layers.Has(LayerHourlyBand) {
		a.Rects = append(a.Rects, hourlyBand(event.HourlyFVG, visible)...)
	}

	if layers.Has(LayerHourlyTouch) {
		vlines, markers := hourlyTouch(event.HourlyFVG)
		a.VLines = append(a.VLines, vlines...)
		a.Markers = append(a.Markers, markers...)
	}

	if layers.Has(LayerPatterns) {
		rects, markers := patterns(event.FVG5m, series, visible)
		a.Rects = append(a.Rects, rects...)
		a.Markers = append(a.Markers, markers...)
	}

	if layers.Has(LayerBOS) {
		a.Markers = append(a.Markers, breaksOfStructure(event.BOS5m)...)
	}

	if layers.Has(LayerTrades) {
		vlines, markers := trades(event.TradeSignals)
		a.VLines = append(a.VLines, vlines...)
		a.Markers = append(a.Markers, markers...)
	}

	if layers.Has(LayerRiskLevels) {
		a.HLines = append(a.HLines, riskLevels(event.TradeSignals)...)
	}

	return a
}

// hourlyBand spans the whole visible range at the hourly zone's price bounds
func hourlyBand(hourly *core.HourlyFVG, visible Range) []Rect {
	low, high, ok := hourly.Bounds()
	if !ok {
		return nil
	}

	return []Rect{{
		StartX: visible.Start,
		EndX:   visible.End,
		StartY: low,
		EndY:   high,
		Fill:   hourlyBandFill,
		Layer:  layerBelow,
	}}
}

func hourlyTouch(hourly *core.HourlyFVG) ([]VLine, []MarkerGroup) {
	if hourly == nil || hourly.TouchPrice == nil {
		return nil, nil
	}

	t, ok := hourly.TouchTs.Time()
	if !ok {
		return nil, nil
	}

	price := *hourly.TouchPrice
	marker := MarkerGroup{
		Name:         "HTF touch",
		Symbol:       "x",
		Size:         10,
		TextPosition: "top center",
		Points: []Point{{
			X:    t,
			Y:    price,
			Text: "HTF touch @ " + core.FormatPrice(price),
		}},
	}

	return []VLine{{X: t, Dash: dashEntry}}, []MarkerGroup{marker}
}

// patterns draws each 5 minute zone from its creation to the right edge, with a
// label at its creation and first-touch / valid-close markers on the matching candles
func patterns(fvgs []core.FVG5m, series core.CandleSeries, visible Range) ([]Rect, []MarkerGroup) {
	var (
		rects  []Rect
		labels = MarkerGroup{
			Name: "FVG5m", Symbol: "square", Color: "blue", Size: 8, TextPosition: "bottom center",
		}
		firstTouch = MarkerGroup{
			Name: "First Touch", Symbol: "diamond", Color: "#FFA500", Size: 10, TextPosition: "bottom center",
		}
		validClose = MarkerGroup{
			Name: "Valid Close", Symbol: "diamond-open", Color: "#008000", Size: 10, TextPosition: "top center",
		}
	)

	for _, f := range fvgs {
		start, ok := f.StartTime.Time()
		if !ok {
			continue
		}

		low, high, ok := f.Bounds()
		if !ok {
			continue
		}

		rects = append(rects, Rect{
			StartX: start,
			EndX:   visible.End,
			StartY: low,
			EndY:   high,
			Fill:   patternZoneFill,
			Layer:  layerBelow,
		})

		labels.Points = append(labels.Points, Point{
			X:    start,
			Y:    (low + high) / 2.0,
			Text: "FVG" + string(f.ID),
		})

		if candle, ok := series.LookupTimestamp(f.TouchTs); ok {
			firstTouch.Points = append(firstTouch.Points, Point{
				X:    candle.Time,
				Y:    candle.Mid(),
				Text: indexLabel("FT", f.IndexFirstTouch),
			})
		}

		if candle, ok := series.LookupTimestamp(f.EntryTs); ok {
			validClose.Points = append(validClose.Points, Point{
				X:    candle.Time,
				Y:    candle.Mid(),
				Text: indexLabel("VC", f.IndexValidCloseAfterTouch),
			})
		}
	}

	return rects, nonEmpty(labels, firstTouch, validClose)
}

// breaksOfStructure batches every break into a single marker group
func breaksOfStructure(events []core.BOS) []MarkerGroup {
	group := MarkerGroup{Name: "BOS", Symbol: "triangle-up", Size: 10, TextPosition: "top center"}

	for _, b := range events {
		t, ok := b.TsEvent.Time()
		if !ok || b.TriggerClose == nil {
			continue
		}
		group.Points = append(group.Points, Point{X: t, Y: *b.TriggerClose, Text: b.Direction})
	}

	return nonEmpty(group)
}

func trades(signals []core.TradeSignal) ([]VLine, []MarkerGroup) {
	var (
		vlines []VLine
		entry  = MarkerGroup{
			Name: "Entry", Symbol: "triangle-up", Color: "#FF00FF", Size: 12, TextPosition: "top center",
		}
		exit = MarkerGroup{
			Name: "Exit", Symbol: "triangle-down", Color: "#FF0000", Size: 12, TextPosition: "bottom center",
		}
	)

	for _, s := range signals {
		if t, ok := s.EntryTs.Time(); ok && s.EntryPrice != nil {
			vlines = append(vlines, VLine{X: t, Dash: dashEntry, Label: orDefault(string(s.Signal), "entry")})
			entry.Points = append(entry.Points, Point{X: t, Y: *s.EntryPrice, Text: string(s.Signal)})
		}

		if t, ok := s.ExitTs.Time(); ok && s.ExitPrice != nil {
			vlines = append(vlines, VLine{X: t, Dash: dashExit, Label: orDefault(s.ExitSignal, "exit")})
			exit.Points = append(exit.Points, Point{X: t, Y: *s.ExitPrice, Text: s.ExitSignal})
		}
	}

	return vlines, nonEmpty(entry, exit)
}

// riskLevels draws the stop loss and take profit of each trade
func riskLevels(signals []core.TradeSignal) []HLine {
	var lines []HLine
	for _, s := range signals {
		if s.StopLoss != nil {
			lines = append(lines, HLine{Y: *s.StopLoss, Dash: dashLevel, Label: "SL"})
		}
		if s.TakeProfit != nil {
			lines = append(lines, HLine{Y: *s.TakeProfit, Dash: dashLevel, Label: "TP"})
		}
	}
	return lines
}

func nonEmpty(groups ...MarkerGroup) []MarkerGroup {
	var result []MarkerGroup
	for _, g := range groups {
		if len(g.Points) > 0 {
			result = append(result, g)
		}
	}
	return result
}

func indexLabel(prefix string, index core.Count) string {
	if !index.Valid() {
		return prefix
	}
	return fmt.Sprintf("%s (%s)", prefix, index)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
