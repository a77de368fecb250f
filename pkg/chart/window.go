package chart

import (
	"time"

	"github.com/raykavin/fvgview/pkg/core"
	"github.com/samber/lo"
)

// DefaultWindowPad is added on both sides of the candidate window
const DefaultWindowPad = time.Hour

// Window is a candidate display interval
type Window struct {
	Start time.Time
	End   time.Time
}

// candidates collects instants that may bound the window. Absent timestamps are skipped.
type candidates struct {
	starts []time.Time
	ends   []time.Time
}

func (c *candidates) start(ts core.Timestamp) {
	if t, ok := ts.Time(); ok {
		c.starts = append(c.starts, t)
	}
}

func (c *candidates) end(ts core.Timestamp) {
	if t, ok := ts.Time(); ok {
		c.ends = append(c.ends, t)
	}
}

// instant counts a zero-width timestamp as both a start and an end candidate
func (c *candidates) instant(ts core.Timestamp) {
	c.start(ts)
	c.end(ts)
}

// SelectWindow scans every timestamp-bearing sub-record of the event and returns
// [min(starts)-pad, max(ends)+pad], bounds swapped if inverted. ok is false when
// either candidate set is empty.
func SelectWindow(event *core.EventRecord, pad time.Duration) (Window, bool) {
	var c candidates

	if h := event.HourlyFVG; h != nil {
		c.start(h.PretouchWindowStart)
		c.start(h.PosttouchWindowStart)
		c.end(h.PretouchWindowEnd)
		c.end(h.PosttouchWindowEnd)
		c.instant(h.StartTime)
	}

	for _, f := range event.FVG5m {
		c.instant(f.StartTime)
		c.instant(f.TouchTs)
		c.instant(f.EntryTs)
	}

	for _, b := range event.BOS5m {
		c.instant(b.TsEvent)
	}

	for _, s := range event.TradeSignals {
		c.instant(s.EntryTs)
		c.instant(s.ExitTs)
	}

	if len(c.starts) == 0 || len(c.ends) == 0 {
		return Window{}, false
	}

	start := lo.MinBy(c.starts, func(a, b time.Time) bool { return a.Before(b) }).Add(-pad)
	end := lo.MaxBy(c.ends, func(a, b time.Time) bool { return a.After(b) }).Add(pad)

	// a window start recorded after every end candidate still yields an ordered window
	if start.After(end) {
		start, end = end, start
	}

	return Window{Start: start, End: end}, true
}
