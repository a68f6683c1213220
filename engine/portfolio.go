package engine

import (
	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/orders"
)

// Holding is the position in one instrument.
type Holding struct {
	Quantity     decimal.Decimal
	AveragePrice decimal.Decimal
}

// Portfolio consumes order events: fills move quantity into holdings and
// fees are debited from cash.
type Portfolio struct {
	Cash     decimal.Decimal
	holdings map[string]*Holding
}

// NewPortfolio returns a portfolio with starting cash.
func NewPortfolio(cash decimal.Decimal) *Portfolio {
	return &Portfolio{Cash: cash, holdings: map[string]*Holding{}}
}

// ApplyFill updates cash and holdings from a fill event. Non-fill events
// are ignored.
func (p *Portfolio) ApplyFill(event *orders.OrderEvent) {
	if event == nil || !event.IsFill() {
		return
	}

	p.Cash = p.Cash.Sub(event.FillQuantity.Mul(event.FillPrice)).Sub(event.OrderFee)

	holding, ok := p.holdings[event.Symbol]
	if !ok {
		holding = &Holding{}
		p.holdings[event.Symbol] = holding
	}
	previous := holding.Quantity
	holding.Quantity = holding.Quantity.Add(event.FillQuantity)

	switch {
	case holding.Quantity.IsZero():
		holding.AveragePrice = decimal.Zero
	case previous.IsZero() || previous.Sign() != holding.Quantity.Sign():
		holding.AveragePrice = event.FillPrice
	case event.FillQuantity.Sign() == previous.Sign():
		// position increased, blend the cost basis
		total := previous.Mul(holding.AveragePrice).Add(event.FillQuantity.Mul(event.FillPrice))
		holding.AveragePrice = total.Div(holding.Quantity)
	}
}

// Holding returns the position for symbol, or a zero holding.
func (p *Portfolio) Holding(symbol string) Holding {
	if holding, ok := p.holdings[symbol]; ok {
		return *holding
	}
	return Holding{}
}

// TotalValue returns cash plus holdings marked at the supplied prices.
func (p *Portfolio) TotalValue(priceOf func(symbol string) decimal.Decimal) decimal.Decimal {
	total := p.Cash
	for symbol, holding := range p.holdings {
		total = total.Add(holding.Quantity.Mul(priceOf(symbol)))
	}
	return total
}
