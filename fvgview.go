// Package fvgview renders fair value gap trading events as multi-timeframe
// chart descriptions: candles restricted to a computed window plus pattern
// zones, touch points, breaks of structure and trade markers.
package fvgview

import (
	"fmt"

	"github.com/raykavin/fvgview/pkg/chart"
	"github.com/raykavin/fvgview/pkg/core"
	"github.com/raykavin/fvgview/pkg/logger"
	"github.com/raykavin/fvgview/pkg/sidebar"
	"github.com/raykavin/fvgview/pkg/store"
)

// DefaultLog is the default logger instance
var DefaultLog logger.Logger

// Page is everything shown for one event: the sidebar and the three chart views
type Page struct {
	Key     string          `json:"key"`
	Sidebar sidebar.Sidebar `json:"sidebar"`
	Views   []chart.View    `json:"views"`

	Event *core.EventRecord `json:"-"`
}

// View returns the page's view of a timeframe
func (p *Page) View(tf core.Timeframe) (chart.View, bool) {
	for _, view := range p.Views {
		if view.Timeframe == tf {
			return view, true
		}
	}
	return chart.View{}, false
}

// Viewer loads events from a store and computes their pages. It holds no state
// between calls, so concurrent Page calls are independent.
type Viewer struct {
	store   store.Store
	builder *chart.Builder
	log     logger.Logger
}

// Option defines a function type for configuring a Viewer instance
type Option func(*Viewer)

// WithLogger replaces DefaultLog
func WithLogger(log logger.Logger) Option {
	return func(v *Viewer) {
		v.log = log
	}
}

// WithBuilder replaces the default chart builder
func WithBuilder(builder *chart.Builder) Option {
	return func(v *Viewer) {
		v.builder = builder
	}
}

// NewViewer creates a viewer over the given store
func NewViewer(events store.Store, options ...Option) *Viewer {
	v := &Viewer{
		store: events,
		log:   DefaultLog,
	}

	for _, option := range options {
		option(v)
	}

	if v.builder == nil {
		v.builder = chart.NewBuilder(v.log)
	}

	return v
}

// Events lists the available events
func (v *Viewer) Events(filters ...store.EntryFilter) ([]store.Entry, error) {
	return v.store.List(filters...)
}

// Page loads one event and renders it. Only a load failure is returned as an
// error; missing data in any view becomes a placeholder.
func (v *Viewer) Page(id string) (*Page, error) {
	event, err := v.store.Get(id)
	if err != nil {
		v.log.WithError(err).WithField("event", id).Error("failed to load event")
		return nil, fmt.Errorf("load event: %w", err)
	}

	return &Page{
		Key:     id,
		Sidebar: sidebar.Build(event),
		Views:   v.builder.BuildAll(event),
		Event:   event,
	}, nil
}
