package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/engine"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

// buyOnceStrategy enters on the first bar and holds.
type buyOnceStrategy struct {
	entered bool
}

func (s *buyOnceStrategy) OnBar(broker *engine.Broker, security *securities.Security, bar *data.TradeBar) {
	if s.entered {
		return
	}
	broker.Submit(orders.NewSubmitOrderRequest(security.Symbol, orders.Market, d(10), bar.EndTime(), ""))
	s.entered = true
}

func TestBacktestRun(t *testing.T) {
	assert := assert.New(t)
	broker, security := newTestBroker(t)

	var bars []*data.TradeBar
	closes := []float64{400, 402, 405, 403, 410}
	for i, closePrice := range closes {
		day := monday.Add(time.Duration(i) * 24 * time.Hour)
		bars = append(bars, dailyBar(day, closePrice-1, closePrice+2, closePrice-3, closePrice))
	}

	backtest := engine.NewBacktest(broker, security, bars, &buyOnceStrategy{})
	equity, events := backtest.Run()

	fills := 0
	for _, event := range events {
		if event.IsFill() {
			fills++
		}
	}
	assert.Equal(1, fills)
	// bought 10 on the second bar at its close of 402
	assert.True(broker.Portfolio().Holding("SPY").Quantity.Equal(d(10)))
	assert.True(equity.Equal(d(100000-10*402+10*410)), "got %v", equity)
}
