package securities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/oarkflow/tradesim/securities"
)

func TestEquityExchangeIsOpen(t *testing.T) {
	assert := assert.New(t)
	exchange := securities.NewEquityExchange(nil)

	// Monday 2024-03-04
	assert.True(exchange.IsOpen(time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)))
	assert.False(exchange.IsOpen(time.Date(2024, 3, 4, 9, 29, 0, 0, time.UTC)))
	assert.False(exchange.IsOpen(time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)))
	// Saturday
	assert.False(exchange.IsOpen(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)))
}

func TestEquityExchangeIsOpenBetween(t *testing.T) {
	assert := assert.New(t)
	exchange := securities.NewEquityExchange(nil)

	// a daily bar spanning a trading Monday overlaps the session
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	assert.True(exchange.IsOpenBetween(start, start.Add(24*time.Hour)))

	// a Saturday bar does not
	saturday := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.False(exchange.IsOpenBetween(saturday, saturday.Add(24*time.Hour)))

	// an hourly bar entirely outside the session does not
	night := time.Date(2024, 3, 4, 2, 0, 0, 0, time.UTC)
	assert.False(exchange.IsOpenBetween(night, night.Add(time.Hour)))
}

func TestNextMarketClose(t *testing.T) {
	assert := assert.New(t)
	exchange := securities.NewEquityExchange(nil)

	// before Monday's close
	monday := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	assert.Equal(time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC), exchange.NextMarketClose(monday))

	// after Friday's close the next close is Monday's
	friday := time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC)
	assert.Equal(time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC), exchange.NextMarketClose(friday))
}

func TestForexExchangeWeek(t *testing.T) {
	assert := assert.New(t)
	exchange := securities.NewForexExchange(nil)

	// Wednesday midnight is open, Saturday is not
	assert.True(exchange.IsOpen(time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))
	assert.False(exchange.IsOpen(time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC)))
	// Sunday opens at 17:00
	assert.False(exchange.IsOpen(time.Date(2024, 3, 3, 16, 59, 0, 0, time.UTC)))
	assert.True(exchange.IsOpen(time.Date(2024, 3, 3, 17, 0, 0, 0, time.UTC)))

	// the week's close is Friday 17:00, not an intermediate midnight
	wednesday := time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)
	assert.Equal(time.Date(2024, 3, 8, 17, 0, 0, 0, time.UTC), exchange.NextMarketClose(wednesday))
}
