package models

import (
	"math"
	"sort"
	"time"

	"github.com/markcheno/go-quote"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/oarkflow/tradesim/data"
)

// Candles is slice of Candle
// Using this, create candle data in database
type Candles []Candle

// NewCandlesFromQuote converts Quote to slice of Candle due to creating in database,
// ex) [Date[1, 2, 3...], Open[1, 2, 3...]...] → [[Date[1], Open[1]...], [Date[2], Open[2]...]...]
// and return pointer of Candles(used as constructor)
func NewCandlesFromQuote(symbol string, q *quote.Quote) *Candles {
	candles := Candles{}
	for i := 0; i < len(q.Date); i++ {
		candles = append(candles, Candle{
			Symbol: symbol,
			Time:   q.Date[i].Unix() * 1000,
			Open:   (math.Round(q.Open[i]*100) / 100),
			High:   (math.Round(q.High[i]*100) / 100),
			Low:    (math.Round(q.Low[i]*100) / 100),
			Close:  (math.Round(q.Close[i]*100) / 100),
			Volume: (math.Round(q.Volume[i]*100) / 100),
		})
	}

	return &candles
}

// GetCandles gets candle data for limit by descending,
// returned in ascending time order
func GetCandles(symbol string, limit int) Candles {
	var candles Candles
	DB.Where("Symbol = ?", symbol).Order("time desc").Limit(limit).Find(&candles)
	sort.Slice(candles, func(i, j int) bool { return candles[i].Time < candles[j].Time })
	return candles
}

// AllDeleteCandles deletes all data of "candles" table
func AllDeleteCandles() {
	DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Candle{})
}

// CreateCandles creates candle data
func (cs *Candles) CreateCandles() {
	DB.Create(cs)
}

// TradeBars converts stored candles into daily trade bars for the engine.
func (cs Candles) TradeBars() []*data.TradeBar {
	bars := make([]*data.TradeBar, 0, len(cs))
	for _, c := range cs {
		bars = append(bars, data.NewTradeBar(
			c.Symbol,
			time.UnixMilli(c.Time).UTC(),
			24*time.Hour,
			decimal.NewFromFloat(c.Open),
			decimal.NewFromFloat(c.High),
			decimal.NewFromFloat(c.Low),
			decimal.NewFromFloat(c.Close),
			decimal.NewFromFloat(c.Volume),
		))
	}
	return bars
}

// Candle is daily stock candledata, also used as json
type Candle struct {
	ID     int     `json:"-"`
	Symbol string  `json:"symbol"`
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// LastCandleTime returns a time of last candle
func LastCandleTime() (int64, error) {
	var candle Candle
	if err := DB.Last(&candle).Error; err != nil {
		return 0, err
	}
	return candle.Time, nil
}
