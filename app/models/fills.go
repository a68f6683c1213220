package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/oarkflow/tradesim/orders"
)

// FillRecord is one persisted order event row
type FillRecord struct {
	ID        int    `gorm:"primary_key" json:"-"`
	EventID   string `json:"event_id"`
	OrderID   int64  `json:"order_id"`
	Symbol    string `json:"symbol"`
	Timestamp int64  `json:"timestamp"`
	Status    string `json:"status"`
	Direction string `json:"direction"`
	// Prices and quantities are stored as strings to keep the decimal
	// representation exact across the round trip.
	FillPrice    string `json:"fill_price"`
	FillCurrency string `json:"fill_currency"`
	FillQuantity string `json:"fill_quantity"`
	OrderFee     string `json:"order_fee"`
	FeeCurrency  string `json:"fee_currency"`
	Message      string `json:"message,omitempty"`
}

// NewFillRecord converts an order event for persistence
func NewFillRecord(event *orders.OrderEvent) *FillRecord {
	return &FillRecord{
		EventID:      event.ID,
		OrderID:      event.OrderID,
		Symbol:       event.Symbol,
		Timestamp:    event.UTCTime.UnixMilli(),
		Status:       event.Status.String(),
		Direction:    event.Direction.String(),
		FillPrice:    event.FillPrice.String(),
		FillCurrency: event.FillPriceCurrency,
		FillQuantity: event.FillQuantity.String(),
		OrderFee:     event.OrderFee.String(),
		FeeCurrency:  event.FeeCurrency,
		Message:      event.Message,
	}
}

// SaveFillEvent persists an order event
func SaveFillEvent(event *orders.OrderEvent) {
	DB.Create(NewFillRecord(event))
}

// GetFillRecords returns fills for symbol in time order
func GetFillRecords(symbol string) []FillRecord {
	var records []FillRecord
	DB.Where("Symbol = ?", symbol).Order("timestamp asc").Find(&records)
	return records
}

// AllDeleteFills deletes all data of "fill_records" table
func AllDeleteFills() {
	DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&FillRecord{})
}

// BacktestResult is the summary row of one backtest run
type BacktestResult struct {
	ID           int     `gorm:"primary_key" json:"-"`
	Timestamp    int64   `json:"timestamp"`
	Symbol       string  `json:"symbol"`
	StartCash    float64 `json:"start_cash"`
	EndingEquity float64 `json:"ending_equity"`
	FillCount    int     `json:"fill_count"`
}

// SaveBacktestResult persists a run summary
func SaveBacktestResult(symbol string, startCash, endingEquity float64, fillCount int) {
	DB.Create(&BacktestResult{
		Timestamp:    time.Now().Unix() * 1000,
		Symbol:       symbol,
		StartCash:    startCash,
		EndingEquity: endingEquity,
		FillCount:    fillCount,
	})
}
