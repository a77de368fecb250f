package chart

import (
	"time"

	"github.com/raykavin/fvgview/pkg/core"
)

// Frame is a clamped window fitted to the candle data of one timeframe
type Frame struct {
	// Window is the clamped interval. With AnchorTradeWide its end may lie past the data.
	Window Range
	// Candles is the slice shown, never empty when the series is not
	Candles core.CandleSeries
	// Visible spans the first to the last shown candle
	Visible Range
	// Axis is the x-axis range the renderer must honor
	Axis Range
	// Fallback is set when the window matched no candles and the full series is shown
	Fallback bool
}

// ClampWindow reconciles a candidate window with the span of the candle series
// according to the policy's anchor mode. ok is false for an empty series.
func ClampWindow(candidate Window, hasCandidate bool, series core.CandleSeries,
	event *core.EventRecord, policy Policy) (Frame, bool) {

	dataMin, dataMax, ok := series.Span()
	if !ok {
		return Frame{}, false
	}

	trade, _ := event.PrimaryTrade()

	var window Range
	switch policy.Anchor {
	case AnchorTradeWide:
		window = tradeWideWindow(event.Hourly(), trade, dataMin, dataMax, policy)
	case AnchorTradeNarrow:
		window = tradeNarrowWindow(trade, dataMin, dataMax, policy)
	default:
		window = patternWindow(candidate, hasCandidate, event.Hourly(), dataMin, dataMax)
	}

	frame := Frame{
		Window:  window,
		Candles: series.Slice(window.Start, minTime(window.End, dataMax)),
	}

	if frame.Candles.Empty() {
		frame.Candles = series
		frame.Fallback = true
	}

	first, last, _ := frame.Candles.Span()
	frame.Visible = Range{Start: first, End: last}
	frame.Axis = frame.Visible

	if policy.Anchor == AnchorTradeWide {
		frame.Axis = wideAxis(frame.Visible, window, trade, policy.AxisPad)
	}

	return frame, true
}

// patternWindow clamps the candidate into the data span, falling back to the full
// span when it is missing or disjoint, then anchors the start to the pre-touch window.
func patternWindow(candidate Window, hasCandidate bool, hourly core.HourlyFVG,
	dataMin, dataMax time.Time) Range {

	window := Range{Start: dataMin, End: dataMax}

	if hasCandidate && !candidate.End.Before(dataMin) && !candidate.Start.After(dataMax) {
		window.Start = maxTime(candidate.Start, dataMin)
		window.End = minTime(candidate.End, dataMax)
	}

	if pre, ok := hourly.PretouchWindowStart.Time(); ok {
		window.Start = maxTime(pre, dataMin)
	}

	// a pre-touch start past the data leaves nothing to show
	if window.Start.After(window.End) {
		window = Range{Start: dataMin, End: dataMax}
	}

	return window
}

// tradeWideWindow starts at the hourly pattern and ends after the exit, or after
// the entry while the trade is open. The end is left unclamped.
func tradeWideWindow(hourly core.HourlyFVG, trade core.TradeSignal,
	dataMin, dataMax time.Time, policy Policy) Range {

	window := Range{Start: dataMin, End: dataMax}

	if start, ok := hourly.StartTime.Time(); ok {
		window.Start = maxTime(start, dataMin)
	}

	if exit, ok := trade.ExitTs.Time(); ok {
		window.End = exit.Add(policy.PadAfterExit)
	} else if entry, ok := trade.EntryTs.Time(); ok {
		window.End = entry.Add(policy.PadAfterEntry)
	}

	return window
}

// tradeNarrowWindow frames entry to exit with padding, clamped to the data
func tradeNarrowWindow(trade core.TradeSignal, dataMin, dataMax time.Time, policy Policy) Range {
	window := Range{Start: dataMin, End: dataMax}

	entry, hasEntry := trade.EntryTs.Time()
	if hasEntry {
		window.Start = maxTime(entry.Add(-policy.PadBefore), dataMin)
	}

	if exit, ok := trade.ExitTs.Time(); ok {
		window.End = minTime(exit.Add(policy.PadAfterExit), dataMax)
	} else if hasEntry {
		window.End = minTime(entry.Add(policy.PadAfterEntry), dataMax)
	}

	return window
}

// wideAxis widens the visible span so entry, exit and the unclamped window end
// stay on screen even past the last candle
func wideAxis(visible, window Range, trade core.TradeSignal, pad time.Duration) Range {
	axis := visible
	axis.End = maxTime(axis.End, window.End)

	for _, ts := range []core.Timestamp{trade.EntryTs, trade.ExitTs} {
		if t, ok := ts.Time(); ok {
			axis.Start = minTime(axis.Start, t)
			axis.End = maxTime(axis.End, t)
		}
	}

	return Range{Start: axis.Start.Add(-pad), End: axis.End.Add(pad)}
}

func minTime(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func maxTime(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}
