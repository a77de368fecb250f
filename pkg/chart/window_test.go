package chart

import (
	"testing"
	"time"

	"github.com/raykavin/fvgview/pkg/core"
	"github.com/stretchr/testify/require"
)

func ts(raw string) core.Timestamp { return core.ParseTimestamp(raw) }

func at(hour, minute int) time.Time {
	return time.Date(2024, 1, 1, hour, minute, 0, 0, time.UTC)
}

func price(v float64) *float64 { return &v }

// candlesEvery builds a flat series from start to end, both inclusive
func candlesEvery(start, end time.Time, step time.Duration) []core.Candle {
	var candles []core.Candle
	for t := start; !t.After(end); t = t.Add(step) {
		candles = append(candles, core.Candle{Time: t, Open: 100, High: 102, Low: 98, Close: 101})
	}
	return candles
}

func TestSelectWindow_Instants(t *testing.T) {
	event := &core.EventRecord{
		HourlyFVG: &core.HourlyFVG{StartTime: ts("2024-01-01T10:00:00")},
		FVG5m:     []core.FVG5m{{StartTime: ts("2024-01-01T10:05:00")}},
	}

	window, ok := SelectWindow(event, DefaultWindowPad)
	require.True(t, ok)
	require.Equal(t, at(9, 0), window.Start)
	require.Equal(t, at(11, 5), window.End)
}

func TestSelectWindow_PatternOnly(t *testing.T) {
	event := &core.EventRecord{
		FVG5m: []core.FVG5m{{StartTime: ts("2024-01-01T10:05:00")}},
	}

	window, ok := SelectWindow(event, DefaultWindowPad)
	require.True(t, ok)
	require.Equal(t, at(9, 5), window.Start)
	require.Equal(t, at(11, 5), window.End)
	require.Equal(t, 2*time.Hour, window.End.Sub(window.Start))
}

func TestSelectWindow_EveryRecordContributes(t *testing.T) {
	event := &core.EventRecord{
		HourlyFVG: &core.HourlyFVG{
			PretouchWindowStart:  ts("2024-01-01 08:00:00"),
			PretouchWindowEnd:    ts("2024-01-01 09:00:00"),
			PosttouchWindowStart: ts("2024-01-01 09:00:00"),
			PosttouchWindowEnd:   ts("2024-01-01 10:00:00"),
		},
		BOS5m: []core.BOS{{TsEvent: ts("2024-01-01 10:30:00")}},
		TradeSignals: []core.TradeSignal{
			{EntryTs: ts("2024-01-01 11:00:00"), ExitTs: ts("2024-01-01 16:00:00")},
		},
	}

	window, ok := SelectWindow(event, DefaultWindowPad)
	require.True(t, ok)
	require.Equal(t, at(7, 0), window.Start)
	require.Equal(t, at(17, 0), window.End)
}

func TestSelectWindow_SkipsAbsent(t *testing.T) {
	event := &core.EventRecord{
		FVG5m: []core.FVG5m{{
			StartTime: ts("garbage"),
			TouchTs:   ts("2024-01-01T10:30:00"),
			EntryTs:   core.Absent,
		}},
		TradeSignals: []core.TradeSignal{{EntryTs: ts("")}},
	}

	window, ok := SelectWindow(event, 30*time.Minute)
	require.True(t, ok)
	require.Equal(t, at(10, 0), window.Start)
	require.Equal(t, at(11, 0), window.End)
}

func TestSelectWindow_Absent(t *testing.T) {
	t.Run("no timestamps", func(t *testing.T) {
		_, ok := SelectWindow(&core.EventRecord{}, DefaultWindowPad)
		require.False(t, ok)
	})

	t.Run("starts only", func(t *testing.T) {
		event := &core.EventRecord{
			HourlyFVG: &core.HourlyFVG{PretouchWindowStart: ts("2024-01-01 08:00:00")},
		}
		_, ok := SelectWindow(event, DefaultWindowPad)
		require.False(t, ok)
	})

	t.Run("ends only", func(t *testing.T) {
		event := &core.EventRecord{
			HourlyFVG: &core.HourlyFVG{PosttouchWindowEnd: ts("2024-01-01 12:00:00")},
		}
		_, ok := SelectWindow(event, DefaultWindowPad)
		require.False(t, ok)
	})
}

func TestSelectWindow_InvertedBounds(t *testing.T) {
	event := &core.EventRecord{
		HourlyFVG: &core.HourlyFVG{
			PretouchWindowStart: ts("2024-01-01 13:00:00"),
			PretouchWindowEnd:   ts("2024-01-01 10:00:00"),
		},
	}

	window, ok := SelectWindow(event, DefaultWindowPad)
	require.True(t, ok)
	require.Equal(t, at(11, 0), window.Start)
	require.Equal(t, at(12, 0), window.End)
	require.False(t, window.Start.After(window.End))
}
