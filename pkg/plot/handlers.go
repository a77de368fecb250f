package plot

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/raykavin/fvgview/pkg/core"
	"github.com/raykavin/fvgview/pkg/metric"
	"github.com/raykavin/fvgview/pkg/store"
)

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startedAt).Round(time.Second).String(),
	})
}

// handleIndex handles the main page request
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	log := s.requestLog(r)

	entries, err := s.source.Events()
	if err != nil {
		log.WithError(err).Error("Failed to list events")
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	// Get requested event or redirect to the first available one
	event := r.URL.Query().Get("event")
	if event == "" && len(entries) > 0 {
		http.Redirect(w, r, "/?event="+url.QueryEscape(entries[0].Key), http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	err = s.indexHTML.Execute(w, map[string]any{
		"event":  event,
		"events": entries,
	})
	if err != nil {
		log.WithError(err).Error("Template execution failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleEvents lists the available events, optionally only those with trades
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	var filters []store.EntryFilter
	if status := r.URL.Query().Get("status"); status != "" {
		filters = append(filters, store.WithStatusIn(status))
	}
	if traded, _ := strconv.ParseBool(r.URL.Query().Get("traded")); traded {
		filters = append(filters, store.WithTrades())
	}

	entries, err := s.source.Events(filters...)
	if err != nil {
		s.requestLog(r).WithError(err).Error("Failed to list events")
		http.Error(w, "Failed to list events", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// handleData returns the sidebar and the chart descriptions of one event
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("event")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	page, err := s.source.Page(id)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// handleTrades exports the trade signals of one event with their metrics as CSV
func (s *Server) handleTrades(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("event")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	page, err := s.source.Page(id)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}

	log := s.requestLog(r)
	buffer := bytes.NewBuffer(nil)
	csvWriter := csv.NewWriter(buffer)

	if err := csvWriter.Write([]string{
		"signal", "entry_ts", "entry_price", "stop_loss", "take_profit",
		"exit_signal", "exit_ts", "exit_price", "risk_unit", "pnl_points", "pnl_r",
	}); err != nil {
		log.WithError(err).Error("Failed writing CSV header")
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}

	for _, signal := range page.Event.TradeSignals {
		metrics := metric.ComputeTradeMetrics(signal)
		if err := csvWriter.Write([]string{
			string(signal.Signal),
			signal.EntryTs.Raw(),
			formatOptional(signal.EntryPrice),
			formatOptional(signal.StopLoss),
			formatOptional(signal.TakeProfit),
			signal.ExitSignal,
			signal.ExitTs.Raw(),
			formatOptional(signal.ExitPrice),
			formatOptional(metrics.RiskUnit),
			formatOptional(metrics.PnLPoints),
			formatOptional(metrics.PnLInRisk),
		}); err != nil {
			log.WithError(err).Error("Failed writing CSV data")
			http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
			return
		}
	}
	csvWriter.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment;filename=trades_%s.csv", page.Key))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buffer.Bytes()); err != nil {
		log.WithError(err).Error("Failed writing CSV response")
	}
}

// writeLoadError maps a document load failure to an HTTP status
func (s *Server) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrEventNotFound), errors.Is(err, core.ErrInvalidEventID):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrMalformedEvent):
		status = http.StatusUnprocessableEntity
	}

	s.requestLog(r).WithError(err).Warn("Failed to load event")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func formatOptional(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
