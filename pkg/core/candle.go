package core

import (
	"slices"
	"time"

	"github.com/samber/lo"
)

// Candle represents a single OHLC bar keyed by its opening time
type Candle struct {
	Time  time.Time `json:"time"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// Mid returns the midpoint between high and low
func (c Candle) Mid() float64 { return (c.High + c.Low) / 2.0 }

// rawCandle is the wire form of a candle inside an event document
type rawCandle struct {
	TsEvent Timestamp `json:"ts_event"`
	Open    float64   `json:"open"`
	High    float64   `json:"high"`
	Low     float64   `json:"low"`
	Close   float64   `json:"close"`
}

// CandleSeries is a time-ordered sequence of candles
type CandleSeries []Candle

// NewCandleSeries drops candles without a usable timestamp and sorts the rest by time.
// Upstream order is never trusted.
func NewCandleSeries(candles []Candle) CandleSeries {
	series := lo.Filter(candles, func(c Candle, _ int) bool {
		return !c.Time.IsZero()
	})

	slices.SortStableFunc(series, func(a, b Candle) int {
		return a.Time.Compare(b.Time)
	})

	return series
}

func seriesFromRaw(raw []rawCandle) CandleSeries {
	candles := make([]Candle, 0, len(raw))
	for _, r := range raw {
		t, ok := r.TsEvent.Time()
		if !ok {
			continue
		}
		candles = append(candles, Candle{
			Time:  t,
			Open:  r.Open,
			High:  r.High,
			Low:   r.Low,
			Close: r.Close,
		})
	}
	return NewCandleSeries(candles)
}

// Empty reports whether the series holds no candles
func (s CandleSeries) Empty() bool { return len(s) == 0 }

// Span returns the first and last candle times
func (s CandleSeries) Span() (start, end time.Time, ok bool) {
	if len(s) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s[0].Time, s[len(s)-1].Time, true
}

// Slice returns the candles whose time lies in [start, end], both inclusive
func (s CandleSeries) Slice(start, end time.Time) CandleSeries {
	from, _ := slices.BinarySearchFunc(s, start, func(c Candle, t time.Time) int {
		return c.Time.Compare(t)
	})

	to := from
	for to < len(s) && !s[to].Time.After(end) {
		to++
	}

	return s[from:to]
}

// Lookup finds the candle whose time matches t exactly
func (s CandleSeries) Lookup(t time.Time) (Candle, bool) {
	i, found := slices.BinarySearchFunc(s, t, func(c Candle, t time.Time) int {
		return c.Time.Compare(t)
	})
	if !found {
		return Candle{}, false
	}
	return s[i], true
}

// LookupTimestamp is Lookup for an optional timestamp; absent never matches
func (s CandleSeries) LookupTimestamp(ts Timestamp) (Candle, bool) {
	t, ok := ts.Time()
	if !ok {
		return Candle{}, false
	}
	return s.Lookup(t)
}

// Closes returns the close prices in series order
func (s CandleSeries) Closes() []float64 {
	return lo.Map(s, func(c Candle, _ int) float64 { return c.Close })
}
