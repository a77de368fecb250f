package metric

import (
	"math"
	"testing"

	"github.com/raykavin/fvgview/pkg/core"
	"github.com/stretchr/testify/require"
)

func price(v float64) *float64 { return &v }

func TestComputeTradeMetrics(t *testing.T) {
	testCases := []struct {
		name      string
		signal    core.TradeSignal
		riskUnit  *float64
		pnlPoints *float64
		pnlInRisk *float64
	}{
		{
			name: "long winner",
			signal: core.TradeSignal{
				Signal: core.SignalBuyLong, EntryPrice: price(100), StopLoss: price(95), ExitPrice: price(108),
			},
			riskUnit:  price(5),
			pnlPoints: price(8),
			pnlInRisk: price(1.6),
		},
		{
			name: "short winner",
			signal: core.TradeSignal{
				Signal: core.SignalSellShort, EntryPrice: price(100), StopLoss: price(105), ExitPrice: price(90),
			},
			riskUnit:  price(5),
			pnlPoints: price(10),
			pnlInRisk: price(2),
		},
		{
			name: "long loser",
			signal: core.TradeSignal{
				Signal: core.SignalBuyLong, EntryPrice: price(100), StopLoss: price(96), ExitPrice: price(96),
			},
			riskUnit:  price(4),
			pnlPoints: price(-4),
			pnlInRisk: price(-1),
		},
		{
			name: "zero risk unit",
			signal: core.TradeSignal{
				Signal: core.SignalBuyLong, EntryPrice: price(100), StopLoss: price(100), ExitPrice: price(110),
			},
			riskUnit:  price(0),
			pnlPoints: price(10),
		},
		{
			name: "unknown side",
			signal: core.TradeSignal{
				Signal: "hold", EntryPrice: price(100), StopLoss: price(95), ExitPrice: price(110),
			},
			riskUnit: price(5),
		},
		{
			name: "open trade",
			signal: core.TradeSignal{
				Signal: core.SignalSellShort, EntryPrice: price(100), StopLoss: price(103),
			},
			riskUnit: price(3),
		},
		{
			name: "no stop loss",
			signal: core.TradeSignal{
				Signal: core.SignalBuyLong, EntryPrice: price(100), ExitPrice: price(101),
			},
			pnlPoints: price(1),
		},
		{
			name:   "no prices",
			signal: core.TradeSignal{Signal: core.SignalBuyLong},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			metrics := ComputeTradeMetrics(tc.signal)
			requireOptional(t, tc.riskUnit, metrics.RiskUnit)
			requireOptional(t, tc.pnlPoints, metrics.PnLPoints)
			requireOptional(t, tc.pnlInRisk, metrics.PnLInRisk)

			computed := tc.riskUnit != nil || tc.pnlPoints != nil || tc.pnlInRisk != nil
			require.Equal(t, computed, metrics.Computed())
		})
	}
}

func requireOptional(t *testing.T, expected, actual *float64) {
	t.Helper()
	if expected == nil {
		require.Nil(t, actual)
		return
	}
	require.NotNil(t, actual)
	require.False(t, math.IsNaN(*actual) || math.IsInf(*actual, 0))
	require.InDelta(t, *expected, *actual, 1e-9)
}
