// Package stock downloads historical candles and converts them into the
// trade bars the engine consumes.
package stock

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/markcheno/go-quote"
	"github.com/oarkflow/errors"
	"github.com/shopspring/decimal"

	"github.com/oarkflow/tradesim/data"
)

const timeFormat = "2006-01-02"

// GetStockData dawnloads daily stockdata for symbol(GOOGL, FB...etc)
// between start and end. Dates are accepted in any common format.
func GetStockData(symbol, start, end string) (*quote.Quote, error) {
	startDay, err := dateparse.ParseAny(start)
	if err != nil {
		return nil, errors.Wrap(err, "bad start date", "")
	}
	endDay := time.Now()
	if end != "" {
		endDay, err = dateparse.ParseAny(end)
		if err != nil {
			return nil, errors.Wrap(err, "bad end date", "")
		}
	}

	q, err := quote.NewQuoteFromYahoo(symbol, startDay.Format(timeFormat), endDay.Format(timeFormat), quote.Daily, true)
	if err != nil {
		return nil, errors.Wrap(err, "stock download failed", "")
	}
	return &q, nil
}

// TradeBars converts a downloaded quote into daily trade bars, in date
// order.
func TradeBars(q *quote.Quote) []*data.TradeBar {
	bars := make([]*data.TradeBar, 0, len(q.Date))
	for i := range q.Date {
		bars = append(bars, data.NewTradeBar(
			q.Symbol,
			q.Date[i],
			24*time.Hour,
			decimal.NewFromFloat(q.Open[i]),
			decimal.NewFromFloat(q.High[i]),
			decimal.NewFromFloat(q.Low[i]),
			decimal.NewFromFloat(q.Close[i]),
			decimal.NewFromFloat(q.Volume[i]),
		))
	}
	return bars
}
