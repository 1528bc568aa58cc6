package markethours

import (
	"time"
	_ "time/tzdata"

	"MarketPulse/internal/domain/models"
)

const Timezone = "America/New_York"

const (
	preMarketOpen   = 4 * 60
	marketOpen      = 9*60 + 30
	marketClose     = 16 * 60
	afterHoursClose = 20 * 60
)

var newYork = mustLoad(Timezone)

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// Session classifies t as OPEN, PRE_MARKET, AFTER_HOURS or CLOSED in New York time.
// Weekends are always CLOSED; exchange holidays are not modeled.
func Session(t time.Time) string {
	local := t.In(newYork)
	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return models.SessionClosed
	}
	minutes := local.Hour()*60 + local.Minute()
	switch {
	case minutes >= marketOpen && minutes < marketClose:
		return models.SessionOpen
	case minutes >= preMarketOpen && minutes < marketOpen:
		return models.SessionPreMarket
	case minutes >= marketClose && minutes < afterHoursClose:
		return models.SessionAfterHours
	default:
		return models.SessionClosed
	}
}

func Status(t time.Time) models.MarketStatus {
	s := Session(t)
	return models.MarketStatus{
		Status:    s,
		IsOpen:    s == models.SessionOpen,
		LocalTime: t.In(newYork).Format("15:04"),
		Timezone:  Timezone,
		Timestamp: t.UTC(),
	}
}
