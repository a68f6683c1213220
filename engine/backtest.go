package engine

import (
	"github.com/oarkflow/log"
	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
)

// Strategy reacts to each completed bar, typically by submitting order
// requests against the broker.
type Strategy interface {
	OnBar(broker *Broker, security *securities.Security, bar *data.TradeBar)
}

// Backtest replays a bar series through the broker for one security and
// collects the resulting order events.
type Backtest struct {
	broker   *Broker
	security *securities.Security
	bars     []*data.TradeBar
	strategy Strategy
}

// NewBacktest wires a backtest run. The security must already be
// registered with the broker.
func NewBacktest(broker *Broker, security *securities.Security, bars []*data.TradeBar, strategy Strategy) *Backtest {
	if broker == nil || security == nil || strategy == nil {
		panic("engine: nil backtest collaborator")
	}
	return &Backtest{broker: broker, security: security, bars: bars, strategy: strategy}
}

// Run replays the bars in order and returns the ending equity along with
// every event the broker produced.
func (b *Backtest) Run() (decimal.Decimal, []*orders.OrderEvent) {
	log.Info().Str("symbol", b.security.Symbol).Int("bars", len(b.bars)).Msg("backtest start")

	var events []*orders.OrderEvent
	previous := b.broker.handler
	b.broker.SetEventHandler(func(event *orders.OrderEvent) {
		events = append(events, event)
		if previous != nil {
			previous(event)
		}
	})

	for _, bar := range b.bars {
		b.broker.OnData(bar)
		b.strategy.OnBar(b.broker, b.security, bar)
	}

	equity := b.broker.Portfolio().TotalValue(func(symbol string) decimal.Decimal {
		if security := b.broker.Security(symbol); security != nil {
			return security.Price()
		}
		return decimal.Zero
	})
	log.Info().Str("symbol", b.security.Symbol).Str("equity", equity.String()).Msg("backtest done")
	return equity, events
}
