package main

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/oarkflow/tradesim/app/models"
	"github.com/oarkflow/tradesim/config"
	"github.com/oarkflow/tradesim/data"
	"github.com/oarkflow/tradesim/engine"
	"github.com/oarkflow/tradesim/indicators"
	"github.com/oarkflow/tradesim/log"
	"github.com/oarkflow/tradesim/orders"
	"github.com/oarkflow/tradesim/securities"
	"github.com/oarkflow/tradesim/stock"
	"github.com/oarkflow/tradesim/transaction"
)

// smaCrossStrategy buys when the fast average crosses over the slow one
// and liquidates on the opposite cross.
type smaCrossStrategy struct {
	fast, slow int
	invested   bool
}

func (s *smaCrossStrategy) OnBar(broker *engine.Broker, security *securities.Security, bar *data.TradeBar) {
	fast, ok := indicators.SMA(security.History, s.fast)
	if !ok {
		return
	}
	slow, ok := indicators.SMA(security.History, s.slow)
	if !ok {
		return
	}

	switch {
	case fast > slow && !s.invested:
		quantity := broker.Portfolio().Cash.Div(security.Price()).Floor()
		if !quantity.IsPositive() {
			return
		}
		broker.Submit(orders.NewSubmitOrderRequest(security.Symbol, orders.Market, quantity, bar.EndTime(), "sma cross entry"))
		s.invested = true
	case fast < slow && s.invested:
		held := broker.Portfolio().Holding(security.Symbol).Quantity
		if !held.IsPositive() {
			return
		}
		broker.Submit(orders.NewSubmitOrderRequest(security.Symbol, orders.Market, held.Neg(), bar.EndTime(), "sma cross exit"))
		s.invested = false
	}
}

func main() {
	config.InitConfig()
	log.SetLogging()
	models.InitDB()

	conf := config.Config

	q, err := stock.GetStockData(conf.Symbol, conf.StartDate, conf.EndDate)
	if err != nil {
		logrus.Fatalf("stock download error: %v", err)
	}
	models.AllDeleteCandles()
	models.NewCandlesFromQuote(conf.Symbol, q).CreateCandles()
	bars := stock.TradeBars(q)

	security := securities.NewSecurity(conf.Symbol, securities.Equity, "USD", securities.NewEquityExchange(nil))
	model := transaction.ForSecurityType(
		securities.Equity,
		decimal.NewFromFloat(conf.EquityFeeRate),
		decimal.NewFromFloat(conf.EquityFeeMin),
		decimal.NewFromFloat(conf.EquityFeeMax),
		decimal.NewFromFloat(conf.MonthlyFxVolume),
	)
	model.Attach(security)

	broker := engine.NewBroker(decimal.NewFromFloat(conf.StartCash))
	broker.AddSecurity(security, model)
	broker.SetEventHandler(func(event *orders.OrderEvent) {
		if event.IsFill() {
			models.SaveFillEvent(event)
		}
	})

	backtest := engine.NewBacktest(broker, security, bars, &smaCrossStrategy{fast: 10, slow: 30})

	models.AllDeleteFills()
	equity, events := backtest.Run()

	fillCount := 0
	for _, event := range events {
		if event.IsFill() {
			fillCount++
		}
	}
	models.SaveBacktestResult(conf.Symbol, conf.StartCash, equity.InexactFloat64(), fillCount)
	logrus.Infof("backtest finished: %v fills, ending equity %v", fillCount, equity)
}
