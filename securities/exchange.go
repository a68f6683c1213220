package securities

import (
	"time"
)

// MarketHours is one open segment of a trading day, as offsets from local
// midnight. Close may be 24h for sessions running to the end of the day.
type MarketHours struct {
	Open  time.Duration
	Close time.Duration
}

// Exchange is the market-hours calendar a security trades against. All
// checks run in the exchange's local time zone.
type Exchange struct {
	loc   *time.Location
	hours map[time.Weekday][]MarketHours
}

// NewExchange returns an exchange calendar with the given per-weekday open
// segments. A nil location means UTC.
func NewExchange(loc *time.Location, hours map[time.Weekday][]MarketHours) *Exchange {
	if loc == nil {
		loc = time.UTC
	}
	return &Exchange{loc: loc, hours: hours}
}

// NewEquityExchange returns a 09:30-16:00 Monday-Friday calendar.
func NewEquityExchange(loc *time.Location) *Exchange {
	session := []MarketHours{{Open: 9*time.Hour + 30*time.Minute, Close: 16 * time.Hour}}
	hours := map[time.Weekday][]MarketHours{}
	for day := time.Monday; day <= time.Friday; day++ {
		hours[day] = session
	}
	return NewExchange(loc, hours)
}

// NewForexExchange returns a calendar open continuously from Sunday 17:00
// until Friday 17:00 local time.
func NewForexExchange(loc *time.Location) *Exchange {
	full := []MarketHours{{Open: 0, Close: 24 * time.Hour}}
	hours := map[time.Weekday][]MarketHours{
		time.Sunday: {{Open: 17 * time.Hour, Close: 24 * time.Hour}},
		time.Friday: {{Open: 0, Close: 17 * time.Hour}},
	}
	for day := time.Monday; day <= time.Thursday; day++ {
		hours[day] = full
	}
	return NewExchange(loc, hours)
}

// NewAlwaysOpenExchange returns a 24/7 calendar.
func NewAlwaysOpenExchange(loc *time.Location) *Exchange {
	full := []MarketHours{{Open: 0, Close: 24 * time.Hour}}
	hours := map[time.Weekday][]MarketHours{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		hours[day] = full
	}
	return NewExchange(loc, hours)
}

// Location returns the exchange time zone.
func (e *Exchange) Location() *time.Location { return e.loc }

// LocalTime converts t into the exchange time zone.
func (e *Exchange) LocalTime(t time.Time) time.Time { return t.In(e.loc) }

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsOpen reports whether the exchange is open at the given local time.
func (e *Exchange) IsOpen(localTime time.Time) bool {
	localTime = localTime.In(e.loc)
	offset := localTime.Sub(midnight(localTime))
	for _, segment := range e.hours[localTime.Weekday()] {
		if offset >= segment.Open && offset < segment.Close {
			return true
		}
	}
	return false
}

// IsOpenBetween reports whether any open segment on start's calendar date
// overlaps the half-open interval [start, end).
func (e *Exchange) IsOpenBetween(start, end time.Time) bool {
	start = start.In(e.loc)
	end = end.In(e.loc)
	day := midnight(start)
	for _, segment := range e.hours[start.Weekday()] {
		segStart := day.Add(segment.Open)
		segEnd := day.Add(segment.Close)
		if start.Before(segEnd) && segStart.Before(end) {
			return true
		}
	}
	return false
}

// NextMarketClose returns the first scheduled close strictly after t,
// searching up to two weeks ahead.
func (e *Exchange) NextMarketClose(t time.Time) time.Time {
	localTime := t.In(e.loc)
	day := midnight(localTime)
	for i := 0; i < 14; i++ {
		for _, segment := range e.hours[day.Weekday()] {
			// A close at 24:00 continuing into a full next day is not a
			// real session close.
			if segment.Close == 24*time.Hour && e.opensAtMidnight(day.AddDate(0, 0, 1)) {
				continue
			}
			closeTime := day.Add(segment.Close)
			if closeTime.After(localTime) {
				return closeTime
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return time.Time{}
}

func (e *Exchange) opensAtMidnight(day time.Time) bool {
	for _, segment := range e.hours[day.Weekday()] {
		if segment.Open == 0 {
			return true
		}
	}
	return false
}
