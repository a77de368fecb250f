package store

import (
	"slices"

	"github.com/raykavin/fvgview/pkg/core"
)

// Store is the read-only source of event documents
type Store interface {
	// Get loads and decodes one event. It returns core.ErrEventNotFound for an
	// unknown identifier and core.ErrMalformedEvent for an unreadable document.
	Get(id string) (*core.EventRecord, error)

	// List enumerates the available events ordered by key
	List(filters ...EntryFilter) ([]Entry, error)
}

// Entry describes one available event without decoding it
type Entry struct {
	Key     string `json:"key"`
	File    string `json:"file"`
	EventID string `json:"event_id"`
	Status  string `json:"status"`
	Signals int    `json:"signals"`
	Valid   bool   `json:"valid"`
}

// EntryFilter selects catalog entries
type EntryFilter func(entry Entry) bool

func WithStatusIn(status ...string) EntryFilter {
	return func(entry Entry) bool {
		return slices.Contains(status, entry.Status)
	}
}

func WithTrades() EntryFilter {
	return func(entry Entry) bool {
		return entry.Signals > 0
	}
}

func WithValidOnly() EntryFilter {
	return func(entry Entry) bool {
		return entry.Valid
	}
}
