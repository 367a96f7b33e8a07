// Package timeutil implements timezone-aware "today" resolution, date-key
// arithmetic and week-window construction.
package timeutil

import (
	"strings"
	"time"

	"github.com/alignai/alignai/internal/model"
)

// DateKeyLayout is the YYYY-MM-DD layout used for date keys.
const DateKeyLayout = "2006-01-02"

// NowContext captures "today" resolved in a specific timezone.
type NowContext struct {
	Now          time.Time
	TodayDateKey string
	WeekdayName  string
	Location     *time.Location
}

// LoadLocation resolves an IANA timezone name, falling back to UTC when the
// name is unknown or empty.
func LoadLocation(timezone string) *time.Location {
	if timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ResolveNow computes wall-clock "today" strictly within the given timezone,
// independent of the host's local zone.
func ResolveNow(timezone string) NowContext {
	return ResolveNowAt(time.Now(), timezone)
}

// ResolveNowAt is ResolveNow anchored at an explicit instant.
func ResolveNowAt(now time.Time, timezone string) NowContext {
	loc := LoadLocation(timezone)
	local := now.In(loc)
	return NowContext{
		Now:          local,
		TodayDateKey: DateKeyOf(local),
		WeekdayName:  local.Weekday().String(),
		Location:     loc,
	}
}

// DateKeyOf renders the calendar date of t in its own location.
func DateKeyOf(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ShiftDateKey performs pure calendar arithmetic on a date-only key. It
// operates in a date-only calendar, never an instant timeline, so DST is
// irrelevant. Returns empty string on malformed input.
func ShiftDateKey(dateKey string, deltaDays int) string {
	t, err := time.Parse(DateKeyLayout, dateKey)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, deltaDays).Format(DateKeyLayout)
}

// WeekdayIndex resolves a weekday name (case-insensitive, full English name)
// to its time.Weekday value.
func WeekdayIndex(name string) (time.Weekday, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sunday":
		return time.Sunday, true
	case "monday":
		return time.Monday, true
	case "tuesday":
		return time.Tuesday, true
	case "wednesday":
		return time.Wednesday, true
	case "thursday":
		return time.Thursday, true
	case "friday":
		return time.Friday, true
	case "saturday":
		return time.Saturday, true
	}
	return time.Sunday, false
}

// ComputeWeekWindow builds the week window containing now, shifted by whole
// weeks. Monday of the current week is today minus (weekday+6)%7 days; the
// window ends on Friday (5-day mode) or Sunday (7-day mode) at 23:59:59.999
// local time.
func ComputeWeekWindow(now time.Time, weekOffset, weekLengthDays int) model.WeekWindow {
	if weekLengthDays != 7 {
		weekLengthDays = 5
	}

	loc := now.Location()
	back := (int(now.Weekday()) + 6) % 7
	anchor := now.AddDate(0, 0, -back+weekOffset*7)
	monday := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, loc)

	last := monday.AddDate(0, 0, weekLengthDays-1)
	end := time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, int(999*time.Millisecond), loc)

	days := make([]model.WeekDay, 0, weekLengthDays)
	for i := 0; i < weekLengthDays; i++ {
		d := monday.AddDate(0, 0, i)
		days = append(days, model.WeekDay{
			Index:   i,
			Name:    d.Weekday().String(),
			DateKey: DateKeyOf(d),
			ISO:     d.Format(time.RFC3339),
		})
	}

	return model.WeekWindow{Start: monday, End: end, Days: days}
}
