package planner

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/alignai/alignai/internal/model"
	"github.com/alignai/alignai/internal/timeutil"
)

// maxScheduleLines caps how many events a lookup reply renders before
// collapsing the rest into an overflow line.
const maxScheduleLines = 8

var dayRefRx = regexp.MustCompile(`(?i)\b(?:(next|last)\s+)?(today|tomorrow|yesterday|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)

// TargetDate is a resolved day reference from a chat message.
type TargetDate struct {
	DateKey string
	Label   string
}

// ResolveTargetDate resolves the first day reference in the message.
// Relative words resolve by date-key arithmetic from today. A bare weekday
// name first checks the supplied week's day list, then falls back to
// weekday-index arithmetic. "next <day>" forces forward (+7 when the naive
// delta is <= 0); "last <day>" forces backward (-7 when it is >= 0).
func ResolveTargetDate(message string, days []model.WeekDay, now timeutil.NowContext) (TargetDate, bool) {
	m := dayRefRx.FindStringSubmatch(message)
	if m == nil {
		return TargetDate{}, false
	}
	qualifier := strings.ToLower(m[1])
	word := strings.ToLower(m[2])

	switch word {
	case "today":
		return TargetDate{DateKey: now.TodayDateKey, Label: "today"}, true
	case "tomorrow":
		return shiftedTarget(now.TodayDateKey, 1, "tomorrow")
	case "yesterday":
		return shiftedTarget(now.TodayDateKey, -1, "yesterday")
	}

	target, ok := timeutil.WeekdayIndex(word)
	if !ok {
		return TargetDate{}, false
	}
	label := target.String()
	naive := int(target) - int(now.Now.Weekday())

	switch qualifier {
	case "next":
		if naive <= 0 {
			naive += 7
		}
		return shiftedTarget(now.TodayDateKey, naive, label)
	case "last":
		if naive >= 0 {
			naive -= 7
		}
		return shiftedTarget(now.TodayDateKey, naive, label)
	}

	for _, d := range days {
		if strings.EqualFold(d.Name, word) {
			return TargetDate{DateKey: d.DateKey, Label: d.Name}, true
		}
	}
	// Outside the visible week: the nearest such weekday at or after today.
	return shiftedTarget(now.TodayDateKey, (naive+7)%7, label)
}

func shiftedTarget(todayKey string, delta int, label string) (TargetDate, bool) {
	key := timeutil.ShiftDateKey(todayKey, delta)
	if key == "" {
		return TargetDate{}, false
	}
	return TargetDate{DateKey: key, Label: label}, true
}

// ScheduleLookup answers "what's on my schedule for <day>" style messages
// directly from already-fetched events, bypassing the model entirely.
// Returns false when the message is not a resolvable lookup.
func ScheduleLookup(message string, events []model.CalendarEvent, week model.WeekWindow, now timeutil.NowContext) (string, bool) {
	if Classify(message) != IntentLookup {
		return "", false
	}
	target, ok := ResolveTargetDate(message, week.Days, now)
	if !ok {
		return "", false
	}
	return BuildScheduleReply(events, target, now.Location), true
}

// BuildScheduleReply renders the events on the target date, sorted by start
// time with unparseable starts last.
func BuildScheduleReply(events []model.CalendarEvent, target TargetDate, loc *time.Location) string {
	var matched []model.CalendarEvent
	for _, ev := range events {
		if ev.DateKey == target.DateKey {
			matched = append(matched, ev)
		}
	}
	if len(matched) == 0 {
		return fmt.Sprintf("You have nothing scheduled for %s (%s). Enjoy the open time!", target.Label, target.DateKey)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ti, iok := parseInstant(matched[i].Start)
		tj, jok := parseInstant(matched[j].Start)
		if iok != jok {
			return iok
		}
		return ti.Before(tj)
	})

	lines := make([]string, 0, maxScheduleLines+1)
	for i, ev := range matched {
		if i == maxScheduleLines {
			lines = append(lines, fmt.Sprintf("- +%d more", len(matched)-maxScheduleLines))
			break
		}
		title := ev.Summary
		if title == "" {
			title = "(no title)"
		}
		detail := eventTimeRange(ev, loc)
		if ev.Location != "" {
			detail += ", " + ev.Location
		}
		lines = append(lines, fmt.Sprintf("- %s (%s)", title, detail))
	}

	return fmt.Sprintf("Here's your schedule for %s (%s):\n%s",
		target.Label, target.DateKey, strings.Join(lines, "\n"))
}

func parseInstant(iso string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339, iso)
	return t, err == nil
}

func eventTimeRange(ev model.CalendarEvent, loc *time.Location) string {
	if ev.AllDay {
		return "all day"
	}
	start, sok := parseInstant(ev.Start)
	end, eok := parseInstant(ev.End)
	if !sok || !eok {
		return "time unknown"
	}
	return start.In(loc).Format("15:04") + " - " + end.In(loc).Format("15:04")
}
