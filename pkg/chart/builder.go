package chart

import (
	"fmt"
	"time"

	"github.com/raykavin/fvgview/pkg/core"
	"github.com/raykavin/fvgview/pkg/logger"
)

const placeholderHeight = 450

// Builder turns an event record into one chart description per timeframe
type Builder struct {
	pad      time.Duration
	policies map[core.Timeframe]Policy
	log      logger.Logger
}

// Option defines a function type for configuring a Builder instance
type Option func(*Builder)

// WithWindowPad overrides the padding applied around the candidate window
func WithWindowPad(pad time.Duration) Option {
	return func(b *Builder) {
		b.pad = pad
	}
}

// WithPolicy overrides the policy of one timeframe
func WithPolicy(tf core.Timeframe, policy Policy) Option {
	return func(b *Builder) {
		b.policies[tf] = policy
	}
}

// NewBuilder creates a builder with the default per-timeframe policies
func NewBuilder(log logger.Logger, options ...Option) *Builder {
	b := &Builder{
		pad:      DefaultWindowPad,
		policies: make(map[core.Timeframe]Policy, len(DefaultPolicies)),
		log:      log,
	}

	for tf, policy := range DefaultPolicies {
		b.policies[tf] = policy
	}

	for _, option := range options {
		option(b)
	}

	return b
}

// Build computes the view of one timeframe. Missing data and missing trades
// produce a placeholder view, never an error; only an unknown timeframe fails.
func (b *Builder) Build(event *core.EventRecord, tf core.Timeframe) (View, error) {
	policy, ok := b.policies[tf]
	if !ok {
		return View{}, fmt.Errorf("%w: %q", core.ErrUnknownTimeframe, tf)
	}

	log := b.log.WithFields(map[string]any{
		"event":     event.EventID,
		"timeframe": tf,
	})

	series := event.Candles(tf)
	if series.Empty() {
		log.Debug("no candles, rendering placeholder")
		return placeholder(tf, PlaceholderNoData, "no OHLC data"), nil
	}

	if policy.RequiresTrade() {
		if _, ok := event.PrimaryTrade(); !ok {
			log.Debug("no trade signal, rendering placeholder")
			return placeholder(tf, PlaceholderNoTrade, "no trade_signals in event"), nil
		}
	}

	candidate, hasCandidate := SelectWindow(event, b.pad)
	frame, _ := ClampWindow(candidate, hasCandidate, series, event, policy)
	if frame.Fallback {
		log.WithField("window", fmt.Sprintf("%s..%s", frame.Window.Start, frame.Window.End)).
			Debug("window matched no candles, showing full series")
	}

	axis := frame.Axis
	return View{
		Timeframe:   tf,
		Title:       fmt.Sprintf("Event %s – %s Chart", event.EventID, tf),
		Height:      policy.Height,
		Candles:     frame.Candles,
		XRange:      &axis,
		Annotations: MapAnnotations(event, series, frame.Visible, policy.Layers),
	}, nil
}

// BuildAll computes the 5m, 1h and 1m views in display order
func (b *Builder) BuildAll(event *core.EventRecord) []View {
	views := make([]View, 0, len(core.Timeframes))
	for _, tf := range core.Timeframes {
		view, err := b.Build(event, tf)
		if err != nil {
			b.log.WithError(err).Warn("skipping view")
			continue
		}
		views = append(views, view)
	}
	return views
}

func placeholder(tf core.Timeframe, kind Placeholder, reason string) View {
	return View{
		Timeframe:   tf,
		Title:       fmt.Sprintf("%s – %s", tf, reason),
		Height:      placeholderHeight,
		Placeholder: kind,
		Candles:     []core.Candle{},
	}
}
