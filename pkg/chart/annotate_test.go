package chart

import (
	"testing"

	"github.com/raykavin/fvgview/pkg/core"
	"github.com/stretchr/testify/require"
)

func markerGroup(t *testing.T, annotations Annotations, name string) (MarkerGroup, bool) {
	t.Helper()
	for _, group := range annotations.Markers {
		if group.Name == name {
			return group, true
		}
	}
	return MarkerGroup{}, false
}

func TestMapAnnotations_PriceBoundsNormalized(t *testing.T) {
	event := &core.EventRecord{
		HourlyFVG: &core.HourlyFVG{BeginBound: price(10), EndBound: price(5)},
		FVG5m: []core.FVG5m{{
			ID:         "1",
			StartTime:  ts("2024-01-01T10:05:00"),
			BeginBound: price(10),
			EndBound:   price(5),
		}},
	}
	visible := Range{Start: at(9, 0), End: at(12, 0)}

	annotations := MapAnnotations(event, nil, visible, LayerHourlyBand|LayerPatterns)
	require.Len(t, annotations.Rects, 2)

	for _, rect := range annotations.Rects {
		require.Equal(t, 5.0, rect.StartY)
		require.Equal(t, 10.0, rect.EndY)
		require.Equal(t, visible.End, rect.EndX)
	}

	require.Equal(t, visible.Start, annotations.Rects[0].StartX)
	require.Equal(t, hourlyBandFill, annotations.Rects[0].Fill)
	require.Equal(t, at(10, 5), annotations.Rects[1].StartX)
}

func TestMapAnnotations_PatternMarkers(t *testing.T) {
	series := core.NewCandleSeries([]core.Candle{
		{Time: at(10, 5), High: 104, Low: 100},
		{Time: at(10, 10), High: 98, Low: 96},
		{Time: at(10, 15), High: 97, Low: 95},
	})
	visible := Range{Start: at(10, 5), End: at(10, 15)}

	t.Run("touch and entry on candles", func(t *testing.T) {
		event := &core.EventRecord{
			FVG5m: []core.FVG5m{{
				ID:                        "7",
				StartTime:                 ts("2024-01-01T10:05:00"),
				BeginBound:                price(90),
				EndBound:                  price(100),
				TouchTs:                   ts("2024-01-01T10:10:00"),
				EntryTs:                   ts("2024-01-01T10:15:00"),
				IndexFirstTouch:           core.NewCount(1),
				IndexValidCloseAfterTouch: core.NewCount(2),
			}},
		}

		annotations := MapAnnotations(event, series, visible, LayerPatterns)

		label, ok := markerGroup(t, annotations, "FVG5m")
		require.True(t, ok)
		require.Equal(t, []Point{{X: at(10, 5), Y: 95, Text: "FVG7"}}, label.Points)

		touch, ok := markerGroup(t, annotations, "First Touch")
		require.True(t, ok)
		require.Equal(t, []Point{{X: at(10, 10), Y: 97, Text: "FT (1)"}}, touch.Points)

		valid, ok := markerGroup(t, annotations, "Valid Close")
		require.True(t, ok)
		require.Equal(t, []Point{{X: at(10, 15), Y: 96, Text: "VC (2)"}}, valid.Points)
	})

	t.Run("touch between candles", func(t *testing.T) {
		event := &core.EventRecord{
			FVG5m: []core.FVG5m{{
				ID:         "8",
				StartTime:  ts("2024-01-01T10:05:00"),
				BeginBound: price(100),
				EndBound:   price(90),
				TouchTs:    ts("2024-01-01T10:07:00"),
			}},
		}

		annotations := MapAnnotations(event, series, visible, LayerPatterns)
		require.Len(t, annotations.Rects, 1)
		require.Equal(t, 90.0, annotations.Rects[0].StartY)
		require.Equal(t, 100.0, annotations.Rects[0].EndY)

		_, ok := markerGroup(t, annotations, "FVG5m")
		require.True(t, ok)
		_, ok = markerGroup(t, annotations, "First Touch")
		require.False(t, ok)
		_, ok = markerGroup(t, annotations, "Valid Close")
		require.False(t, ok)
	})

	t.Run("incomplete pattern skipped", func(t *testing.T) {
		event := &core.EventRecord{
			FVG5m: []core.FVG5m{
				{ID: "1", StartTime: core.Absent, BeginBound: price(1), EndBound: price(2)},
				{ID: "2", StartTime: ts("2024-01-01T10:05:00"), BeginBound: price(1)},
			},
		}

		annotations := MapAnnotations(event, series, visible, LayerPatterns)
		require.Empty(t, annotations.Rects)
		require.Empty(t, annotations.Markers)
	})
}

func TestMapAnnotations_HourlyTouch(t *testing.T) {
	event := &core.EventRecord{
		HourlyFVG: &core.HourlyFVG{
			TouchTs:    ts("2024-01-01 11:00:00"),
			TouchPrice: price(101.5),
		},
	}

	annotations := MapAnnotations(event, nil, Range{}, LayerHourlyTouch)
	require.Equal(t, []VLine{{X: at(11, 0), Dash: dashEntry}}, annotations.VLines)

	touch, ok := markerGroup(t, annotations, "HTF touch")
	require.True(t, ok)
	require.Equal(t, "HTF touch @ 101.5", touch.Points[0].Text)

	event.HourlyFVG.TouchPrice = price(100)
	annotations = MapAnnotations(event, nil, Range{}, LayerHourlyTouch)
	touch, ok = markerGroup(t, annotations, "HTF touch")
	require.True(t, ok)
	require.Equal(t, "HTF touch @ 100.0", touch.Points[0].Text)

	event.HourlyFVG.TouchPrice = nil
	annotations = MapAnnotations(event, nil, Range{}, LayerHourlyTouch)
	require.Empty(t, annotations.VLines)
	require.Empty(t, annotations.Markers)
}

func TestMapAnnotations_BreaksOfStructure(t *testing.T) {
	event := &core.EventRecord{
		BOS5m: []core.BOS{
			{TsEvent: ts("2024-01-01 10:20:00"), TriggerClose: price(99), Direction: "up"},
			{TsEvent: ts("garbage"), TriggerClose: price(98), Direction: "down"},
			{TsEvent: ts("2024-01-01 10:40:00"), Direction: "down"},
			{TsEvent: ts("2024-01-01 10:50:00"), TriggerClose: price(97), Direction: "down"},
		},
	}

	annotations := MapAnnotations(event, nil, Range{}, LayerBOS)
	require.Len(t, annotations.Markers, 1)
	require.Equal(t, []Point{
		{X: at(10, 20), Y: 99, Text: "up"},
		{X: at(10, 50), Y: 97, Text: "down"},
	}, annotations.Markers[0].Points)
}

func TestMapAnnotations_Trades(t *testing.T) {
	event := &core.EventRecord{
		TradeSignals: []core.TradeSignal{
			{
				Signal:     core.SignalBuyLong,
				EntryTs:    ts("2024-01-01 10:30:00"),
				EntryPrice: price(100),
				StopLoss:   price(95),
				TakeProfit: price(110),
				ExitSignal: "take_profit",
				ExitTs:     ts("2024-01-01 11:00:00"),
				ExitPrice:  price(110),
			},
			{
				Signal:  core.SignalSellShort,
				EntryTs: ts("2024-01-01 12:00:00"),
			},
		},
	}

	annotations := MapAnnotations(event, nil, Range{}, LayerTrades)
	require.Equal(t, []VLine{
		{X: at(10, 30), Dash: dashEntry, Label: "buy_long"},
		{X: at(11, 0), Dash: dashExit, Label: "take_profit"},
	}, annotations.VLines)

	entry, ok := markerGroup(t, annotations, "Entry")
	require.True(t, ok)
	require.Len(t, entry.Points, 1)

	exit, ok := markerGroup(t, annotations, "Exit")
	require.True(t, ok)
	require.NotEqual(t, entry.Symbol, exit.Symbol)
	require.NotEqual(t, entry.Color, exit.Color)
	require.Equal(t, Point{X: at(11, 0), Y: 110, Text: "take_profit"}, exit.Points[0])

	require.Empty(t, annotations.HLines)

	annotations = MapAnnotations(event, nil, Range{}, LayerRiskLevels)
	require.Equal(t, []HLine{
		{Y: 95, Dash: dashLevel, Label: "SL"},
		{Y: 110, Dash: dashLevel, Label: "TP"},
	}, annotations.HLines)
}

func TestMapAnnotations_LayersDisabled(t *testing.T) {
	event := &core.EventRecord{
		HourlyFVG: &core.HourlyFVG{BeginBound: price(1), EndBound: price(2)},
		TradeSignals: []core.TradeSignal{{
			EntryTs:    ts("2024-01-01 10:30:00"),
			EntryPrice: price(100),
		}},
	}

	annotations := MapAnnotations(event, nil, Range{Start: at(10, 0), End: at(11, 0)}, LayerRiskLevels)
	require.Empty(t, annotations.Rects)
	require.Empty(t, annotations.VLines)
	require.Empty(t, annotations.Markers)
	require.Empty(t, annotations.HLines)
}
