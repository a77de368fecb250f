package metric

import (
	"math"

	"github.com/raykavin/fvgview/pkg/core"
	"github.com/samber/lo"
)

// TradeMetrics are derived from a trade signal's recorded prices.
// Each field is nil when it could not be computed.
type TradeMetrics struct {
	RiskUnit  *float64 `json:"risk_unit,omitempty"`  // |entry - stop loss|, the "R"
	PnLPoints *float64 `json:"pnl_points,omitempty"` // signed by trade side
	PnLInRisk *float64 `json:"pnl_r,omitempty"`      // PnLPoints / RiskUnit
}

// ComputeTradeMetrics derives risk unit, point PnL and PnL in risk units.
// An unrecognized signal side yields no PnL, and a zero risk unit yields no PnL in R.
func ComputeTradeMetrics(signal core.TradeSignal) TradeMetrics {
	var m TradeMetrics

	if signal.EntryPrice != nil && signal.StopLoss != nil {
		m.RiskUnit = lo.ToPtr(math.Abs(*signal.EntryPrice - *signal.StopLoss))
	}

	if signal.EntryPrice != nil && signal.ExitPrice != nil {
		entry, exit := *signal.EntryPrice, *signal.ExitPrice
		switch signal.Signal {
		case core.SignalBuyLong:
			m.PnLPoints = lo.ToPtr(exit - entry)
		case core.SignalSellShort:
			m.PnLPoints = lo.ToPtr(entry - exit)
		}
	}

	if m.RiskUnit != nil && *m.RiskUnit != 0 && m.PnLPoints != nil {
		m.PnLInRisk = lo.ToPtr(*m.PnLPoints / *m.RiskUnit)
	}

	return m
}

// Computed reports whether at least one metric is available
func (m TradeMetrics) Computed() bool {
	return m.RiskUnit != nil || m.PnLPoints != nil || m.PnLInRisk != nil
}
