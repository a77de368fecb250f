package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const eventJSON = `{
	"event_id": 17,
	"summary": {"status": "traded", "fvg_5m_count": 1, "bos_5m_count": null},
	"hourly_fvg": {
		"fvg_hour_id": "H1",
		"start_time": "2024-01-01T10:00:00",
		"direction": "up",
		"begin_bound": 100,
		"end_bound": 90,
		"touch_ts": "2024-01-01 11:00:00",
		"touch_price": null
	},
	"fvg_5m": [{"fvg_5m_id": 3, "start_time": "2024-01-01T10:05:00", "begin_bound": 95, "end_bound": 97}],
	"bos_5m": [{"ts_event": "not a time", "trigger_close": 99.5, "bos_direction": "up"}],
	"trade_signals": [
		{"signal": "buy_long", "entry_ts": "2024-01-01T11:30:00", "entry_price": 100, "stop_loss": 95},
		{"signal": "sell_short", "entry_ts": "2024-01-01T12:30:00"}
	],
	"ohlc_5m": [
		{"ts_event": "2024-01-01 10:05:00", "open": 1, "high": 2, "low": 0, "close": 2},
		{"ts_event": "2024-01-01 10:00:00", "open": 1, "high": 2, "low": 0, "close": 1},
		{"ts_event": null, "open": 1, "high": 2, "low": 0, "close": 9}
	]
}`

func TestDecodeEvent(t *testing.T) {
	event, err := DecodeEvent([]byte(eventJSON))
	require.NoError(t, err)

	require.Equal(t, ID("17"), event.EventID)
	require.Equal(t, "traded", event.Summary.Status)
	require.Equal(t, "1", event.Summary.FVG5mCount.String())
	require.False(t, event.Summary.BOS5mCount.Valid())

	low, high, ok := event.HourlyFVG.Bounds()
	require.True(t, ok)
	require.Equal(t, 90.0, low)
	require.Equal(t, 100.0, high)
	require.Equal(t, DirectionUp, event.Hourly().Direction)
	require.Nil(t, event.HourlyFVG.TouchPrice)

	require.Len(t, event.FVG5m, 1)
	require.Equal(t, ID("3"), event.FVG5m[0].ID)
	require.False(t, event.BOS5m[0].TsEvent.Valid())

	trade, ok := event.PrimaryTrade()
	require.True(t, ok)
	require.Equal(t, SignalBuyLong, trade.Signal)
	require.Nil(t, trade.ExitPrice)

	series := event.Candles(Timeframe5m)
	require.Equal(t, []float64{1, 2}, series.Closes())
	require.True(t, event.Candles(Timeframe1m).Empty())
	require.True(t, event.Candles(Timeframe1h).Empty())
}

func TestDecodeEvent_Empty(t *testing.T) {
	event, err := DecodeEvent([]byte(`{}`))
	require.NoError(t, err)

	require.Nil(t, event.HourlyFVG)
	require.False(t, event.Hourly().StartTime.Valid())
	_, _, ok := event.HourlyFVG.Bounds()
	require.False(t, ok)

	_, ok = event.PrimaryTrade()
	require.False(t, ok)
	require.Equal(t, "N/A", event.EventID.String())
}

func TestDecodeEvent_Malformed(t *testing.T) {
	for _, content := range []string{
		`{"event_id": 1,`,
		`[]`,
		`{"fvg_5m": "nope"}`,
	} {
		_, err := DecodeEvent([]byte(content))
		require.ErrorIs(t, err, ErrMalformedEvent)
	}
}

func TestEventRecord_SetCandles(t *testing.T) {
	var event EventRecord
	event.SetCandles(Timeframe1m, []Candle{
		{Time: time.Date(2024, 1, 1, 10, 1, 0, 0, time.UTC), Close: 2},
		{Time: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), Close: 1},
	})
	require.Equal(t, []float64{1, 2}, event.Candles(Timeframe1m).Closes())
}

func TestTimeframe(t *testing.T) {
	tf, err := ParseTimeframe("5m")
	require.NoError(t, err)
	require.Equal(t, Timeframe5m, tf)

	_, err = ParseTimeframe("15m")
	require.ErrorIs(t, err, ErrUnknownTimeframe)

	d, err := Timeframe1h.Duration()
	require.NoError(t, err)
	require.Equal(t, time.Hour, d)
}

func TestPriceRange(t *testing.T) {
	begin, end := 10.0, 5.0

	low, high, ok := PriceRange(&begin, &end)
	require.True(t, ok)
	require.Equal(t, 5.0, low)
	require.Equal(t, 10.0, high)

	_, _, ok = PriceRange(&begin, nil)
	require.False(t, ok)

	a, b := Ordered(3, 1)
	require.Equal(t, 1, a)
	require.Equal(t, 3, b)
}

func TestDecodeEvent_FloatCounts(t *testing.T) {
	event, err := DecodeEvent([]byte(`{
		"summary": {"fvg_5m_count": 2.0, "bos_5m_count": "3", "signal_count": {"n": 1}},
		"fvg_5m": [{
			"fvg_5m_id": 4,
			"start_time": "2024-01-01T10:05:00",
			"index_first_touch": 12.0,
			"index_valid_close_after_touch": null
		}]
	}`))
	require.NoError(t, err)

	require.Equal(t, "2", event.Summary.FVG5mCount.String())
	require.Equal(t, "3", event.Summary.BOS5mCount.String())
	require.False(t, event.Summary.SignalCount.Valid())
	require.Equal(t, "N/A", event.Summary.SignalCount.String())

	require.Len(t, event.FVG5m, 1)
	value, ok := event.FVG5m[0].IndexFirstTouch.Value()
	require.True(t, ok)
	require.Equal(t, 12.0, value)
	require.Equal(t, "12", event.FVG5m[0].IndexFirstTouch.String())
	require.False(t, event.FVG5m[0].IndexValidCloseAfterTouch.Valid())
}

func TestCount_JSON(t *testing.T) {
	var counts []Count
	require.NoError(t, json.Unmarshal([]byte(`[1, 2.5, null, "x", true]`), &counts))
	require.Len(t, counts, 5)
	require.Equal(t, "1", counts[0].String())
	require.Equal(t, "2.5", counts[1].String())
	for _, c := range counts[2:] {
		require.False(t, c.Valid())
	}

	content, err := json.Marshal([]Count{NewCount(7), counts[1], {}})
	require.NoError(t, err)
	require.JSONEq(t, `[7, 2.5, null]`, string(content))
}

func TestFormatPrice(t *testing.T) {
	require.Equal(t, "100.0", FormatPrice(100))
	require.Equal(t, "101.5", FormatPrice(101.5))
	require.Equal(t, "-3.0", FormatPrice(-3))
	require.Equal(t, "0.00012", FormatPrice(0.00012))
}
