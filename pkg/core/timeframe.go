package core

import (
	"fmt"
	"time"

	"github.com/xhit/go-str2duration/v2"
)

// Timeframe identifies one of the candle resolutions carried by an event
type Timeframe string

const (
	Timeframe1m Timeframe = "1m"
	Timeframe5m Timeframe = "5m"
	Timeframe1h Timeframe = "1h"
)

// Timeframes lists the views in display order, detailed view first
var Timeframes = []Timeframe{Timeframe5m, Timeframe1h, Timeframe1m}

// ParseTimeframe validates a timeframe string such as "5m"
func ParseTimeframe(value string) (Timeframe, error) {
	tf := Timeframe(value)
	switch tf {
	case Timeframe1m, Timeframe5m, Timeframe1h:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeframe, value)
	}
}

// Duration returns the candle length of the timeframe
func (tf Timeframe) Duration() (time.Duration, error) {
	d, err := str2duration.ParseDuration(string(tf))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTimeframe, tf)
	}
	return d, nil
}

func (tf Timeframe) String() string { return string(tf) }
