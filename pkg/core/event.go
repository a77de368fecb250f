package core

import (
	"encoding/json"
	"fmt"
)

// Direction of a pattern or break of structure
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// SignalType names the side of a trade signal
type SignalType string

const (
	SignalBuyLong   SignalType = "buy_long"
	SignalSellShort SignalType = "sell_short"
)

// Summary holds display-only status and counters
type Summary struct {
	Status      string `json:"status"`
	FVG5mCount  Count  `json:"fvg_5m_count"`
	BOS5mCount  Count  `json:"bos_5m_count"`
	SignalCount Count  `json:"signal_count"`
}

// HourlyFVG is the higher-timeframe fair value gap an event is built around
type HourlyFVG struct {
	ID                   ID        `json:"fvg_hour_id"`
	StartTime            Timestamp `json:"start_time"`
	EndTime              Timestamp `json:"end_time"`
	Direction            Direction `json:"direction"`
	BeginBound           *float64  `json:"begin_bound"`
	EndBound             *float64  `json:"end_bound"`
	TouchTs              Timestamp `json:"touch_ts"`
	TouchPrice           *float64  `json:"touch_price"`
	PretouchWindowStart  Timestamp `json:"pretouch_window_start"`
	PretouchWindowEnd    Timestamp `json:"pretouch_window_end"`
	PosttouchWindowStart Timestamp `json:"posttouch_window_start"`
	PosttouchWindowEnd   Timestamp `json:"posttouch_window_end"`
}

// Bounds returns the zone as (low, high); ok is false when either bound is missing
func (h *HourlyFVG) Bounds() (low, high float64, ok bool) {
	if h == nil {
		return 0, 0, false
	}
	return PriceRange(h.BeginBound, h.EndBound)
}

// FVG5m is a lower-timeframe fair value gap instance
type FVG5m struct {
	ID                        ID        `json:"fvg_5m_id"`
	StartTime                 Timestamp `json:"start_time"`
	BeginBound                *float64  `json:"begin_bound"`
	EndBound                  *float64  `json:"end_bound"`
	TouchTs                   Timestamp `json:"touch_ts"`
	EntryTs                   Timestamp `json:"entry_ts"`
	IndexFirstTouch           Count     `json:"index_first_touch"`
	IndexValidCloseAfterTouch Count     `json:"index_valid_close_after_touch"`
}

// Bounds returns the zone as (low, high)
func (f FVG5m) Bounds() (low, high float64, ok bool) {
	return PriceRange(f.BeginBound, f.EndBound)
}

// BOS is a break-of-structure event on the 5 minute series
type BOS struct {
	TsEvent      Timestamp `json:"ts_event"`
	TriggerClose *float64  `json:"trigger_close"`
	Direction    string    `json:"bos_direction"`
}

// TradeSignal is a trade taken against the event. Exit fields stay empty while
// the trade is open.
type TradeSignal struct {
	Signal     SignalType `json:"signal"`
	EntryTs    Timestamp  `json:"entry_ts"`
	EntryPrice *float64   `json:"entry_price"`
	StopLoss   *float64   `json:"stop_loss"`
	TakeProfit *float64   `json:"take_profit"`
	ExitSignal string     `json:"exit_signal"`
	ExitTs     Timestamp  `json:"exit_ts"`
	ExitPrice  *float64   `json:"exit_price"`
}

// EventRecord is the read-only input of one rendering pass
type EventRecord struct {
	EventID      ID
	Summary      Summary
	HourlyFVG    *HourlyFVG
	FVG5m        []FVG5m
	BOS5m        []BOS
	TradeSignals []TradeSignal

	candles map[Timeframe]CandleSeries
}

// eventDocument mirrors the JSON layout produced upstream
type eventDocument struct {
	EventID      ID            `json:"event_id"`
	Summary      *Summary      `json:"summary"`
	HourlyFVG    *HourlyFVG    `json:"hourly_fvg"`
	FVG5m        []FVG5m       `json:"fvg_5m"`
	BOS5m        []BOS         `json:"bos_5m"`
	TradeSignals []TradeSignal `json:"trade_signals"`
	OHLC1m       []rawCandle   `json:"ohlc_1m"`
	OHLC5m       []rawCandle   `json:"ohlc_5m"`
	OHLC1h       []rawCandle   `json:"ohlc_1h"`
}

// DecodeEvent parses one event document. Every top-level key is optional; the
// candle series are sorted once here.
func DecodeEvent(data []byte) (*EventRecord, error) {
	var doc eventDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	record := &EventRecord{
		EventID:      doc.EventID,
		HourlyFVG:    doc.HourlyFVG,
		FVG5m:        doc.FVG5m,
		BOS5m:        doc.BOS5m,
		TradeSignals: doc.TradeSignals,
		candles: map[Timeframe]CandleSeries{
			Timeframe1m: seriesFromRaw(doc.OHLC1m),
			Timeframe5m: seriesFromRaw(doc.OHLC5m),
			Timeframe1h: seriesFromRaw(doc.OHLC1h),
		},
	}

	if doc.Summary != nil {
		record.Summary = *doc.Summary
	}

	return record, nil
}

// Candles returns the sorted series for a timeframe, empty when not provided
func (e *EventRecord) Candles(tf Timeframe) CandleSeries {
	return e.candles[tf]
}

// SetCandles replaces the series of a timeframe, sorting it
func (e *EventRecord) SetCandles(tf Timeframe, candles []Candle) {
	if e.candles == nil {
		e.candles = make(map[Timeframe]CandleSeries)
	}
	e.candles[tf] = NewCandleSeries(candles)
}

// Hourly returns the hourly pattern or an empty one, so field access never needs a nil check
func (e *EventRecord) Hourly() HourlyFVG {
	if e.HourlyFVG == nil {
		return HourlyFVG{}
	}
	return *e.HourlyFVG
}

// PrimaryTrade returns the first trade signal. Trade-anchored views use it for windowing.
func (e *EventRecord) PrimaryTrade() (TradeSignal, bool) {
	if len(e.TradeSignals) == 0 {
		return TradeSignal{}, false
	}
	return e.TradeSignals[0], true
}
