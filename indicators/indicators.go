package indicators

import (
	talib "github.com/markcheno/go-talib"

	"github.com/oarkflow/tradesim/data"
)

// Closes extracts close prices from a window of trade bars, oldest first,
// in the float64 form talib expects.
func Closes(window *RollingWindow[*data.TradeBar]) []float64 {
	count := window.Count()
	closes := make([]float64, count)
	for i := 0; i < count; i++ {
		closes[count-1-i] = window.Get(i).Close.InexactFloat64()
	}
	return closes
}

// SMA returns the latest simple moving average over period bars, and false
// while the window holds fewer bars than the period.
func SMA(window *RollingWindow[*data.TradeBar], period int) (float64, bool) {
	closes := Closes(window)
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	values := talib.Sma(closes, period)
	return values[len(values)-1], true
}

// EMA returns the latest exponential moving average over period bars.
func EMA(window *RollingWindow[*data.TradeBar], period int) (float64, bool) {
	closes := Closes(window)
	if period <= 0 || len(closes) < period {
		return 0, false
	}
	values := talib.Ema(closes, period)
	return values[len(values)-1], true
}

// RSI returns the latest relative strength index over period bars. talib
// needs period+1 samples before the first RSI value exists.
func RSI(window *RollingWindow[*data.TradeBar], period int) (float64, bool) {
	closes := Closes(window)
	if period <= 0 || len(closes) < period+1 {
		return 0, false
	}
	values := talib.Rsi(closes, period)
	return values[len(values)-1], true
}
